package model

import (
	"time"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
)

// Profile is the read-only scoring input. Languages carry proficiency but
// scoring compares by language name only.
type Profile struct {
	UserID    int64                  `json:"user_id"`
	Interests []string               `json:"interests"`
	Lifestyle Lifestyle              `json:"lifestyle"`
	Education Education              `json:"education"`
	Goal      enums.RelationshipGoal `json:"goal"`
	Languages []Language             `json:"languages"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type Lifestyle struct {
	Smoking  enums.Smoking  `json:"smoking"`
	Drinking enums.Drinking `json:"drinking"`
	Exercise enums.Exercise `json:"exercise"`
	Diet     enums.Diet     `json:"diet"`
}

type Education struct {
	School      string `json:"school"`
	DegreeLevel string `json:"degree_level"`
}

type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}
