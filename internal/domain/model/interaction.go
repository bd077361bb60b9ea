package model

import (
	"time"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
)

// Interaction is one immutable ledger entry. Entries are append-ordered,
// which is also chronological; they are never reordered and only removed by
// the full-record rewind path.
type Interaction struct {
	ID          int64                   `json:"id"`
	MatchID     int64                   `json:"match_id"`
	ActorUserID int64                   `json:"actor_user_id"`
	Action      enums.InteractionAction `json:"action"`
	CreatedAt   time.Time               `json:"created_at"`
}
