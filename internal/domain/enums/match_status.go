package enums

import (
	"fmt"
	"strings"
)

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusMatched   MatchStatus = "matched"
	MatchStatusUnmatched MatchStatus = "unmatched"
	MatchStatusBlocked   MatchStatus = "blocked"
)

func ParseMatchStatus(input string) (MatchStatus, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	switch MatchStatus(value) {
	case MatchStatusPending, MatchStatusMatched, MatchStatusUnmatched, MatchStatusBlocked:
		return MatchStatus(value), nil
	default:
		return "", fmt.Errorf("unknown match status %q", input)
	}
}

// Terminal reports whether no further action may regress the status.
// Blocked is sticky; matched can still be unmatched or blocked.
func (s MatchStatus) Terminal() bool {
	return s == MatchStatusBlocked
}
