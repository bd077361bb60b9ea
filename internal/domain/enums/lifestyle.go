package enums

import (
	"fmt"
	"strings"
)

// Lifestyle attributes are closed enums with an explicit unset zero value.
// Scoring only counts a category when both sides have it set.

type Smoking string

const (
	SmokingUnset     Smoking = ""
	SmokingNever     Smoking = "never"
	SmokingSocially  Smoking = "socially"
	SmokingRegularly Smoking = "regularly"
	SmokingQuitting  Smoking = "quitting"
)

type Drinking string

const (
	DrinkingUnset     Drinking = ""
	DrinkingNever     Drinking = "never"
	DrinkingSocially  Drinking = "socially"
	DrinkingRegularly Drinking = "regularly"
	DrinkingSober     Drinking = "sober"
)

type Exercise string

const (
	ExerciseUnset     Exercise = ""
	ExerciseNever     Exercise = "never"
	ExerciseSometimes Exercise = "sometimes"
	ExerciseOften     Exercise = "often"
	ExerciseDaily     Exercise = "daily"
)

type Diet string

const (
	DietUnset      Diet = ""
	DietOmnivore   Diet = "omnivore"
	DietVegetarian Diet = "vegetarian"
	DietVegan      Diet = "vegan"
	DietKosher     Diet = "kosher"
	DietHalal      Diet = "halal"
)

func ParseSmoking(input string) (Smoking, error) {
	value := normalizeLifestyle(input)
	switch Smoking(value) {
	case SmokingUnset, SmokingNever, SmokingSocially, SmokingRegularly, SmokingQuitting:
		return Smoking(value), nil
	default:
		return "", fmt.Errorf("unknown smoking value %q", input)
	}
}

func ParseDrinking(input string) (Drinking, error) {
	value := normalizeLifestyle(input)
	switch Drinking(value) {
	case DrinkingUnset, DrinkingNever, DrinkingSocially, DrinkingRegularly, DrinkingSober:
		return Drinking(value), nil
	default:
		return "", fmt.Errorf("unknown drinking value %q", input)
	}
}

func ParseExercise(input string) (Exercise, error) {
	value := normalizeLifestyle(input)
	switch Exercise(value) {
	case ExerciseUnset, ExerciseNever, ExerciseSometimes, ExerciseOften, ExerciseDaily:
		return Exercise(value), nil
	default:
		return "", fmt.Errorf("unknown exercise value %q", input)
	}
}

func ParseDiet(input string) (Diet, error) {
	value := normalizeLifestyle(input)
	switch Diet(value) {
	case DietUnset, DietOmnivore, DietVegetarian, DietVegan, DietKosher, DietHalal:
		return Diet(value), nil
	default:
		return "", fmt.Errorf("unknown diet value %q", input)
	}
}

func normalizeLifestyle(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
