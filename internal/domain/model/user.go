package model

import (
	"time"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
)

// User carries the account attributes the matching engine reads. Account and
// profile CRUD are owned by external collaborators; the engine never writes
// back except through the message-stats hook on Match.
type User struct {
	ID           int64       `json:"id"`
	Gender       string      `json:"gender"`
	InterestedIn []string    `json:"interested_in"`
	Birthdate    *time.Time  `json:"birthdate"`
	LastLat      *float64    `json:"last_lat"`
	LastLon      *float64    `json:"last_lon"`
	Preferences  Preferences `json:"preferences"`
	Tier         enums.Tier  `json:"tier"`
	IsActive     bool        `json:"is_active"`
	IsVerified   bool        `json:"is_verified"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type Preferences struct {
	AgeMin        int  `json:"age_min"`
	AgeMax        int  `json:"age_max"`
	MaxDistanceKM int  `json:"max_distance_km"`
	VerifiedOnly  bool `json:"verified_only"`
}

// Coordinates reports the last known location, or ok=false when the account
// has never shared one.
func (u User) Coordinates() (lat, lon float64, ok bool) {
	if u.LastLat == nil || u.LastLon == nil {
		return 0, 0, false
	}
	return *u.LastLat, *u.LastLon, true
}

// Age computes full years at the given instant; zero when birthdate is unset.
func (u User) Age(at time.Time) int {
	if u.Birthdate == nil {
		return 0
	}
	b := u.Birthdate.UTC()
	years := at.Year() - b.Year()
	anniversary := time.Date(at.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	if at.Before(anniversary) {
		years--
	}
	return years
}
