package entitlements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
	pgrepo "github.com/acurldiem/INCLOVE-BACKEND/internal/repo/postgres"
)

var ErrValidation = errors.New("validation error")

type UserStore interface {
	GetByID(ctx context.Context, userID int64) (*model.User, error)
}

type Config struct {
	DefaultTier enums.Tier
}

// Service resolves subscription tiers. Unknown or missing users fall back to
// the configured default instead of failing the calling flow.
type Service struct {
	store UserStore
	cfg   Config
	now   func() time.Time
}

type Snapshot struct {
	UserID     int64
	Tier       enums.Tier
	IsFree     bool
	IsVerified bool
}

func NewService(store UserStore, cfg Config) *Service {
	if cfg.DefaultTier == "" {
		cfg.DefaultTier = enums.TierFree
	}

	return &Service{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

func (s *Service) TierFor(ctx context.Context, userID int64) (enums.Tier, error) {
	snapshot, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return snapshot.Tier, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (Snapshot, error) {
	if userID <= 0 {
		return Snapshot{}, ErrValidation
	}
	if s.store == nil {
		return Snapshot{}, fmt.Errorf("entitlement store is nil")
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return Snapshot{
				UserID: userID,
				Tier:   s.cfg.DefaultTier,
				IsFree: s.cfg.DefaultTier.IsFree(),
			}, nil
		}
		return Snapshot{}, err
	}

	tier := user.Tier
	if tier == "" {
		tier = s.cfg.DefaultTier
	}

	return Snapshot{
		UserID:     userID,
		Tier:       tier,
		IsFree:     tier.IsFree(),
		IsVerified: user.IsVerified,
	}, nil
}
