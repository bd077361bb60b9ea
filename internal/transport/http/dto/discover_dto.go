package dto

type DiscoverCard struct {
	UserID          int64    `json:"user_id"`
	Age             int      `json:"age"`
	Gender          string   `json:"gender"`
	Score           int      `json:"score"`
	DistanceKM      *int     `json:"distance_km,omitempty"`
	Goal            string   `json:"goal,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	IsVerified      bool     `json:"is_verified"`
	PrimaryPhotoURL *string  `json:"primary_photo_url,omitempty"`
}

type DiscoverResponse struct {
	Cards   []DiscoverCard `json:"cards"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	HasMore bool           `json:"has_more"`
}

type CandidateProfileResponse struct {
	DiscoverCard
	Languages   []string `json:"languages,omitempty"`
	School      string   `json:"school,omitempty"`
	DegreeLevel string   `json:"degree_level,omitempty"`
}
