package rules

import "fmt"

// PairKey canonicalizes an unordered user pair: the lower id always comes
// first, so (A,B) and (B,A) resolve to the same key. Storage keeps a unique
// constraint on the ordered pair.
func PairKey(userID, targetID int64) (int64, int64) {
	if userID > targetID {
		return targetID, userID
	}
	return userID, targetID
}

// PairKeyString renders the canonical key for cache/log usage.
func PairKeyString(userID, targetID int64) string {
	a, b := PairKey(userID, targetID)
	return fmt.Sprintf("%d:%d", a, b)
}
