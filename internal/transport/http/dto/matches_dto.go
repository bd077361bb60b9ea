package dto

import "time"

type MatchPayload struct {
	ID            int64      `json:"id"`
	OtherUserID   int64      `json:"other_user_id"`
	Status        string     `json:"status"`
	MatchType     string     `json:"match_type"`
	Score         int        `json:"score"`
	MessageCount  int        `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type MatchesResponse struct {
	Matches []MatchPayload `json:"matches"`
}

type MessageHookRequest struct {
	At *time.Time `json:"at,omitempty"`
}

type MessageHookResponse struct {
	OK            bool       `json:"ok"`
	MessageCount  int        `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
}
