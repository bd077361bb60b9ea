package enums

import (
	"fmt"
	"strings"
)

type RelationshipGoal string

const (
	GoalSerious    RelationshipGoal = "serious"
	GoalCasual     RelationshipGoal = "casual"
	GoalFriendship RelationshipGoal = "friendship"
	GoalMarriage   RelationshipGoal = "marriage"
	GoalUnsure     RelationshipGoal = "unsure"
)

func ParseRelationshipGoal(input string) (RelationshipGoal, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	switch RelationshipGoal(value) {
	case GoalSerious, GoalCasual, GoalFriendship, GoalMarriage, GoalUnsure:
		return RelationshipGoal(value), nil
	default:
		return "", fmt.Errorf("unknown relationship goal %q", input)
	}
}
