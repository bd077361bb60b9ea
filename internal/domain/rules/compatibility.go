package rules

import (
	"math"
	"strings"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
)

// Category caps. The final score divides by the fixed total (100) even when a
// category has no data on one or both sides, so sparse profiles score lower
// than fully populated ones.
const (
	interestsCap      = 30
	pointsPerInterest = 5

	lifestyleSmokingPoints  = 8
	lifestyleDrinkingPoints = 8
	lifestyleExercisePoints = 5
	lifestyleDietPoints     = 4

	// A school match fills the whole education category so that two
	// identical fully-populated profiles reach exactly 100 raw points.
	educationSchoolPoints = 15
	educationDegreePoints = 5

	goalPoints = 20

	languagesCap      = 10
	pointsPerLanguage = 3

	maxRawScore = 100
)

// CompatibilityScore computes the 0-100 pairwise score. Pure and symmetric;
// returns 0 when either profile is absent.
func CompatibilityScore(a, b *model.Profile) int {
	if a == nil || b == nil {
		return 0
	}

	raw := sharedInterestsScore(a.Interests, b.Interests)
	raw += lifestyleScore(a.Lifestyle, b.Lifestyle)
	raw += educationScore(a.Education, b.Education)
	raw += goalScore(a, b)
	raw += sharedLanguagesScore(a.Languages, b.Languages)

	score := int(math.Round(float64(raw) / float64(maxRawScore) * 100))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func sharedInterestsScore(a, b []string) int {
	shared := intersectFold(a, b)
	points := shared * pointsPerInterest
	if points > interestsCap {
		points = interestsCap
	}
	return points
}

func lifestyleScore(a, b model.Lifestyle) int {
	points := 0
	if a.Smoking != "" && b.Smoking != "" && a.Smoking == b.Smoking {
		points += lifestyleSmokingPoints
	}
	if a.Drinking != "" && b.Drinking != "" && a.Drinking == b.Drinking {
		points += lifestyleDrinkingPoints
	}
	if a.Exercise != "" && b.Exercise != "" && a.Exercise == b.Exercise {
		points += lifestyleExercisePoints
	}
	if a.Diet != "" && b.Diet != "" && a.Diet == b.Diet {
		points += lifestyleDietPoints
	}
	return points
}

// Same school takes priority over same degree level; the two are mutually
// exclusive.
func educationScore(a, b model.Education) int {
	school1 := strings.ToLower(strings.TrimSpace(a.School))
	school2 := strings.ToLower(strings.TrimSpace(b.School))
	if school1 != "" && school1 == school2 {
		return educationSchoolPoints
	}

	degree1 := strings.ToLower(strings.TrimSpace(a.DegreeLevel))
	degree2 := strings.ToLower(strings.TrimSpace(b.DegreeLevel))
	if degree1 != "" && degree1 == degree2 {
		return educationDegreePoints
	}
	return 0
}

func goalScore(a, b *model.Profile) int {
	if a.Goal != "" && a.Goal == b.Goal {
		return goalPoints
	}
	return 0
}

// Languages match by name only; proficiency is ignored.
func sharedLanguagesScore(a, b []model.Language) int {
	namesA := make([]string, 0, len(a))
	for _, lang := range a {
		namesA = append(namesA, lang.Name)
	}
	namesB := make([]string, 0, len(b))
	for _, lang := range b {
		namesB = append(namesB, lang.Name)
	}

	points := intersectFold(namesA, namesB) * pointsPerLanguage
	if points > languagesCap {
		points = languagesCap
	}
	return points
}

func intersectFold(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}

	seen := make(map[string]struct{}, len(b))
	shared := 0
	for _, v := range b {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := set[key]; ok {
			shared++
		}
	}
	return shared
}
