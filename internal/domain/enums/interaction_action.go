package enums

import (
	"fmt"
	"strings"
)

type InteractionAction string

const (
	ActionLike      InteractionAction = "like"
	ActionSuperLike InteractionAction = "super_like"
	ActionPass      InteractionAction = "pass"
	ActionUnmatch   InteractionAction = "unmatch"
	ActionBlock     InteractionAction = "block"
	ActionReport    InteractionAction = "report"
)

// ParseInteractionAction rejects unknown actions at the data-model boundary
// so the state machine only ever sees closed variants.
func ParseInteractionAction(input string) (InteractionAction, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	value = strings.ReplaceAll(value, "-", "_")
	switch InteractionAction(value) {
	case ActionLike, ActionSuperLike, ActionPass, ActionUnmatch, ActionBlock, ActionReport:
		return InteractionAction(value), nil
	default:
		return "", fmt.Errorf("unknown interaction action %q", input)
	}
}

// IsPositive reports whether the action can participate in a reciprocal match.
func (a InteractionAction) IsPositive() bool {
	return a == ActionLike || a == ActionSuperLike
}
