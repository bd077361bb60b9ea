package entitlements

import (
	"context"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
)

// Feature is a premium capability gated by subscription tier. Billing owns
// tier assignment; the engine only answers yes or no.
type Feature string

const (
	FeatureUnlimitedSuperLikes Feature = "unlimited_super_likes"
	FeatureSeeWhoLikedYou      Feature = "see_who_liked_you"
)

var tierFeatures = map[enums.Tier]map[Feature]struct{}{
	enums.TierPlus: {
		FeatureSeeWhoLikedYou: {},
	},
	enums.TierPlatinum: {
		FeatureSeeWhoLikedYou:      {},
		FeatureUnlimitedSuperLikes: {},
	},
}

// TierHasFeature is the pure lookup behind HasFeature. Tiers missing from the
// map, the free tier included, have no premium features.
func TierHasFeature(tier enums.Tier, feature Feature) bool {
	features, ok := tierFeatures[tier]
	if !ok {
		return false
	}
	_, ok = features[feature]
	return ok
}

func (s *Service) HasFeature(ctx context.Context, userID int64, feature Feature) (bool, error) {
	tier, err := s.TierFor(ctx, userID)
	if err != nil {
		return false, err
	}
	return TierHasFeature(tier, feature), nil
}
