package rules

import (
	"testing"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
)

func fullProfile(userID int64) *model.Profile {
	return &model.Profile{
		UserID:    userID,
		Interests: []string{"hiking", "reading", "coffee", "chess", "cooking", "travel"},
		Lifestyle: model.Lifestyle{
			Smoking:  enums.SmokingNever,
			Drinking: enums.DrinkingSocially,
			Exercise: enums.ExerciseOften,
			Diet:     enums.DietVegetarian,
		},
		Education: model.Education{School: "MIT", DegreeLevel: "masters"},
		Goal:      enums.GoalSerious,
		Languages: []model.Language{
			{Name: "english", Proficiency: "native"},
			{Name: "spanish", Proficiency: "fluent"},
			{Name: "french", Proficiency: "basic"},
			{Name: "german", Proficiency: "basic"},
		},
	}
}

func TestScoreIdenticalFullProfilesIs100(t *testing.T) {
	a := fullProfile(1)
	b := fullProfile(2)

	got := CompatibilityScore(a, b)
	if got != 100 {
		t.Fatalf("identical fully-populated profiles: got %d, want 100", got)
	}
}

func TestCategoryCapsSumToDenominator(t *testing.T) {
	total := interestsCap +
		lifestyleSmokingPoints + lifestyleDrinkingPoints + lifestyleExercisePoints + lifestyleDietPoints +
		educationSchoolPoints +
		goalPoints +
		languagesCap
	if total != maxRawScore {
		t.Fatalf("category caps sum to %d, want %d", total, maxRawScore)
	}
}

func TestScoreIsSymmetric(t *testing.T) {
	a := fullProfile(1)
	b := fullProfile(2)
	b.Interests = []string{"hiking", "surfing"}
	b.Lifestyle.Diet = enums.DietVegan
	b.Education.School = "Stanford"
	b.Languages = []model.Language{{Name: "english"}}

	ab := CompatibilityScore(a, b)
	ba := CompatibilityScore(b, a)
	if ab != ba {
		t.Fatalf("score is not symmetric: score(a,b)=%d score(b,a)=%d", ab, ba)
	}
}

func TestScoreNilProfileIsZero(t *testing.T) {
	if got := CompatibilityScore(nil, fullProfile(1)); got != 0 {
		t.Fatalf("nil first profile: got %d, want 0", got)
	}
	if got := CompatibilityScore(fullProfile(1), nil); got != 0 {
		t.Fatalf("nil second profile: got %d, want 0", got)
	}
}

// Worked example: two shared interests (10), smoking+drinking match (16),
// goal match (20); education and languages unpopulated. Fixed denominator
// keeps the final at 46.
func TestScoreSparseProfilesUseFixedDenominator(t *testing.T) {
	a := &model.Profile{
		Interests: []string{"hiking", "reading", "coffee"},
		Lifestyle: model.Lifestyle{Smoking: enums.SmokingNever, Drinking: enums.DrinkingSocially},
		Goal:      enums.GoalSerious,
	}
	b := &model.Profile{
		Interests: []string{"hiking", "coffee", "chess"},
		Lifestyle: model.Lifestyle{Smoking: enums.SmokingNever, Drinking: enums.DrinkingSocially},
		Goal:      enums.GoalSerious,
	}

	if got := CompatibilityScore(a, b); got != 46 {
		t.Fatalf("sparse profile score: got %d, want 46", got)
	}
}

func TestSharedInterestsCappedAt30(t *testing.T) {
	many := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	a := &model.Profile{Interests: many}
	b := &model.Profile{Interests: many}

	// 8 shared interests would be 40 raw without the cap.
	if got := sharedInterestsScore(a.Interests, b.Interests); got != 30 {
		t.Fatalf("interest cap: got %d, want 30", got)
	}
}

func TestSharedLanguagesCappedAt10AndIgnoreProficiency(t *testing.T) {
	a := []model.Language{
		{Name: "english", Proficiency: "native"},
		{Name: "spanish", Proficiency: "basic"},
		{Name: "french", Proficiency: "basic"},
		{Name: "german", Proficiency: "basic"},
		{Name: "italian", Proficiency: "basic"},
	}
	b := []model.Language{
		{Name: "english", Proficiency: "basic"},
		{Name: "spanish", Proficiency: "native"},
		{Name: "french", Proficiency: "fluent"},
		{Name: "german", Proficiency: "fluent"},
		{Name: "italian", Proficiency: "fluent"},
	}

	if got := sharedLanguagesScore(a, b); got != 10 {
		t.Fatalf("language cap: got %d, want 10", got)
	}
}

func TestEducationSchoolTakesPriorityOverDegree(t *testing.T) {
	sameSchool := educationScore(
		model.Education{School: "MIT", DegreeLevel: "bachelors"},
		model.Education{School: "mit", DegreeLevel: "masters"},
	)
	if sameSchool != 15 {
		t.Fatalf("same school must fill the education category: got %d, want 15", sameSchool)
	}

	sameDegree := educationScore(
		model.Education{School: "MIT", DegreeLevel: "masters"},
		model.Education{School: "Stanford", DegreeLevel: "masters"},
	)
	if sameDegree != 5 {
		t.Fatalf("same degree level: got %d, want 5", sameDegree)
	}

	neither := educationScore(
		model.Education{School: "MIT", DegreeLevel: "masters"},
		model.Education{},
	)
	if neither != 0 {
		t.Fatalf("no education overlap: got %d, want 0", neither)
	}
}

func TestLifestyleOnlyCountsWhenBothSidesSet(t *testing.T) {
	a := model.Lifestyle{Smoking: enums.SmokingNever, Drinking: enums.DrinkingNever}
	b := model.Lifestyle{Smoking: enums.SmokingNever}

	if got := lifestyleScore(a, b); got != 8 {
		t.Fatalf("half-set lifestyle: got %d, want 8 (smoking only)", got)
	}
}

func TestIntersectFoldDeduplicatesAndFoldsCase(t *testing.T) {
	a := []string{"Hiking", "hiking", "Coffee"}
	b := []string{"HIKING", "coffee", "coffee", "chess"}

	if got := intersectFold(a, b); got != 2 {
		t.Fatalf("intersect: got %d, want 2", got)
	}
}
