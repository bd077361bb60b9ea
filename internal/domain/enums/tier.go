package enums

import (
	"fmt"
	"strings"
)

type Tier string

const (
	TierFree     Tier = "free"
	TierPlus     Tier = "plus"
	TierPlatinum Tier = "platinum"
)

func ParseTier(input string) (Tier, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	if value == "" {
		return TierFree, nil
	}
	switch Tier(value) {
	case TierFree, TierPlus, TierPlatinum:
		return Tier(value), nil
	default:
		return "", fmt.Errorf("unknown subscription tier %q", input)
	}
}

// IsFree reports the lowest tier. Matches created by free-tier users carry a
// 24h conversation TTL.
func (t Tier) IsFree() bool {
	return t == TierFree || t == ""
}
