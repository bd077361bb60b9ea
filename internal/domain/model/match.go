package model

import (
	"time"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
)

// Match is the canonical record for an unordered user pair. UserAID < UserBID
// always; the pair is unique in storage. LastActionA/LastActionB mirror the
// newest ledger entry per member so transitions avoid a history scan.
type Match struct {
	ID            int64                    `json:"id"`
	UserAID       int64                    `json:"user_a_id"`
	UserBID       int64                    `json:"user_b_id"`
	Status        enums.MatchStatus        `json:"status"`
	InitiatorID   int64                    `json:"initiator_id"`
	MatchType     enums.InteractionAction  `json:"match_type"`
	MatchScore    int                      `json:"match_score"`
	LastActionA   *enums.InteractionAction `json:"last_action_a"`
	LastActionB   *enums.InteractionAction `json:"last_action_b"`
	LastMessageAt *time.Time               `json:"last_message_at"`
	MessageCount  int                      `json:"message_count"`
	IsActive      bool                     `json:"is_active"`
	ExpiresAt     *time.Time               `json:"expires_at"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// OtherMember returns the member of the pair that is not userID.
func (m Match) OtherMember(userID int64) int64 {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}

// HasMember reports whether userID belongs to the pair.
func (m Match) HasMember(userID int64) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// LastActionOf returns the derived last action for the given member.
func (m Match) LastActionOf(userID int64) *enums.InteractionAction {
	if m.UserAID == userID {
		return m.LastActionA
	}
	if m.UserBID == userID {
		return m.LastActionB
	}
	return nil
}
