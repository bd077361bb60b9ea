package matching

import (
	"time"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
)

// resolveTransition applies one ledger action to the pair state machine and
// returns the updated record plus whether this action completed a match.
//
// The rules, in precedence order:
//   - block always wins and is sticky
//   - a blocked pair never changes again
//   - unmatch and pass retire anything that is not already retired, except
//     pass on a matched pair, which stays matched
//   - a positive action answered by the other member's standing positive
//     action completes the match; the completing actor's tier decides the
//     conversation TTL
//   - everything else only refreshes the actor's last-action index
func resolveTransition(m model.Match, actorID int64, action enums.InteractionAction, actorTier enums.Tier, now time.Time, ttl time.Duration) (model.Match, bool) {
	otherLast := m.LastActionOf(m.OtherMember(actorID))

	if m.UserAID == actorID {
		recorded := action
		m.LastActionA = &recorded
	} else {
		recorded := action
		m.LastActionB = &recorded
	}

	if action == enums.ActionBlock {
		m.Status = enums.MatchStatusBlocked
		m.IsActive = false
		m.ExpiresAt = nil
		return m, false
	}

	if m.Status.Terminal() {
		return m, false
	}

	switch action {
	case enums.ActionUnmatch:
		if m.Status == enums.MatchStatusMatched || m.Status == enums.MatchStatusPending {
			m.Status = enums.MatchStatusUnmatched
			m.IsActive = false
			m.ExpiresAt = nil
		}
	case enums.ActionPass:
		if m.Status != enums.MatchStatusMatched {
			m.Status = enums.MatchStatusUnmatched
			m.IsActive = false
			m.ExpiresAt = nil
		}
	case enums.ActionLike, enums.ActionSuperLike:
		if m.Status == enums.MatchStatusPending && otherLast != nil && otherLast.IsPositive() {
			m.Status = enums.MatchStatusMatched
			m.IsActive = true
			if actorTier.IsFree() {
				expires := now.Add(ttl)
				m.ExpiresAt = &expires
			} else {
				m.ExpiresAt = nil
			}
			return m, true
		}
	}

	return m, false
}
