package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/rules"
	pgrepo "github.com/acurldiem/INCLOVE-BACKEND/internal/repo/postgres"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/services/entitlements"
)

type MatchStore interface {
	CreateOrGet(ctx context.Context, tx pgx.Tx, userID, targetID, initiatorID int64, matchType enums.InteractionAction, score int, now time.Time) (model.Match, bool, error)
	GetByPairForUpdate(ctx context.Context, tx pgx.Tx, userID, targetID int64) (model.Match, error)
	GetByID(ctx context.Context, matchID int64) (model.Match, error)
	GetLatestInitiatedBy(ctx context.Context, tx pgx.Tx, userID int64) (model.Match, error)
	ApplyTransition(ctx context.Context, tx pgx.Tx, m model.Match) error
	UpdateScore(ctx context.Context, matchID int64, score int) error
	RecordMessage(ctx context.Context, matchID int64, at time.Time) (bool, error)
	ListActiveForUser(ctx context.Context, userID int64, limit int) ([]model.Match, error)
	DeleteByID(ctx context.Context, tx pgx.Tx, matchID int64) error
}

type InteractionStore interface {
	Append(ctx context.Context, tx pgx.Tx, matchID, actorUserID int64, action enums.InteractionAction, now time.Time) (model.Interaction, error)
	DeleteByMatch(ctx context.Context, tx pgx.Tx, matchID int64) error
}

type QuotaStore interface {
	Consume(ctx context.Context, tx pgx.Tx, userID int64, dayKey string, limit int) (int, error)
	Refund(ctx context.Context, tx pgx.Tx, userID int64, dayKey string) error
	GetUsed(ctx context.Context, userID int64, dayKey string) (int, error)
}

type BlockStore interface {
	Upsert(ctx context.Context, tx pgx.Tx, blockerID, blockedID int64, now time.Time) error
}

type ReportStore interface {
	Create(ctx context.Context, tx pgx.Tx, reporterID, reportedID int64, reason enums.ReportReason, comment, reference string, now time.Time) (int64, error)
}

type ProfileStore interface {
	GetByUsers(ctx context.Context, userIDs []int64) (map[int64]*model.Profile, error)
}

type TierProvider interface {
	TierFor(ctx context.Context, userID int64) (enums.Tier, error)
}

type RateLimiter interface {
	AllowAction(ctx context.Context, userID int64) (int64, bool, error)
}

type Config struct {
	FreeSuperLikesPerDay int
	PlusSuperLikesPerDay int
	MatchTTL             time.Duration
	RewindWindow         time.Duration
	DefaultTimezone      string
}

type ActionResult struct {
	Match        model.Match
	PairCreated  bool
	Matched      bool
	SuperLikes   QuotaSnapshot
	QuotaTouched bool
}

type RewindResult struct {
	UndoneAction   enums.InteractionAction
	UndoneTargetID int64
	MatchID        int64
}

// ReportResult identifies a filed report both internally and by the opaque
// reference exposed to the reporter.
type ReportResult struct {
	ID        int64
	Reference string
}

// QuotaSnapshot is the super-like budget as seen by the user.
type QuotaSnapshot struct {
	Used      int
	Limit     int
	Unlimited bool
	ResetAt   time.Time
}

type Service struct {
	pool         *pgxpool.Pool
	runTx        func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
	matchStore   MatchStore
	ledger       InteractionStore
	quotaStore   QuotaStore
	blockStore   BlockStore
	reportStore  ReportStore
	profileStore ProfileStore
	tiers        TierProvider
	rateLimiter  RateLimiter
	cfg          Config
	now          func() time.Time
}

type Dependencies struct {
	Pool         *pgxpool.Pool
	MatchStore   MatchStore
	Ledger       InteractionStore
	QuotaStore   QuotaStore
	BlockStore   BlockStore
	ReportStore  ReportStore
	ProfileStore ProfileStore
	Tiers        TierProvider
	RateLimiter  RateLimiter
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.FreeSuperLikesPerDay <= 0 {
		cfg.FreeSuperLikesPerDay = rules.FreeSuperLikesPerDay
	}
	if cfg.PlusSuperLikesPerDay <= 0 {
		cfg.PlusSuperLikesPerDay = rules.PlusSuperLikesPerDay
	}
	if cfg.MatchTTL <= 0 {
		cfg.MatchTTL = rules.MatchTTL
	}
	if cfg.RewindWindow <= 0 {
		cfg.RewindWindow = rules.RewindWindow
	}
	if strings.TrimSpace(cfg.DefaultTimezone) == "" {
		cfg.DefaultTimezone = "UTC"
	}

	s := &Service{
		pool:         deps.Pool,
		matchStore:   deps.MatchStore,
		ledger:       deps.Ledger,
		quotaStore:   deps.QuotaStore,
		blockStore:   deps.BlockStore,
		reportStore:  deps.ReportStore,
		profileStore: deps.ProfileStore,
		tiers:        deps.Tiers,
		rateLimiter:  deps.RateLimiter,
		cfg:          cfg,
		now:          time.Now,
	}
	s.runTx = func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
		return pgrepo.WithTxRetry(ctx, s.pool, 2, fn)
	}
	return s
}

// ApplyAction runs one actor action through the pair state machine. Unknown
// actions and report are rejected here; reports have their own entry point
// because they leave the pair state untouched.
func (s *Service) ApplyAction(ctx context.Context, userID, targetID int64, action enums.InteractionAction, timezone string) (ActionResult, error) {
	if userID <= 0 || targetID <= 0 {
		return ActionResult{}, ErrValidation
	}
	if userID == targetID {
		return ActionResult{}, ErrSelfAction
	}
	switch action {
	case enums.ActionLike, enums.ActionSuperLike, enums.ActionPass, enums.ActionUnmatch, enums.ActionBlock:
	default:
		return ActionResult{}, ErrUnsupportedAction
	}
	if s.matchStore == nil || s.ledger == nil {
		return ActionResult{}, fmt.Errorf("matching dependencies are not configured")
	}

	now := s.now().UTC()
	loc, _ := s.resolveTimezone(timezone)
	dayKey := rules.DayKey(now, loc)

	tier, err := s.resolveTier(ctx, userID)
	if err != nil {
		return ActionResult{}, err
	}

	if action.IsPositive() && s.rateLimiter != nil {
		retryAfter, allowed, err := s.rateLimiter.AllowAction(ctx, userID)
		if err != nil {
			return ActionResult{}, fmt.Errorf("apply action rate limiter: %w", err)
		}
		if !allowed {
			return ActionResult{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	score, err := s.compatScore(ctx, userID, targetID)
	if err != nil {
		return ActionResult{}, err
	}

	result := ActionResult{}
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		if action == enums.ActionSuperLike {
			limit, unlimited := s.superLikeLimit(tier)
			if !unlimited {
				if _, err := s.quotaStore.Consume(txCtx, tx, userID, dayKey, limit); err != nil {
					if errors.Is(err, pgrepo.ErrQuotaExceeded) {
						return ErrSuperLikeLimit
					}
					return err
				}
				result.QuotaTouched = true
			}
		}

		var (
			match   model.Match
			created bool
			err     error
		)
		if action == enums.ActionUnmatch {
			match, err = s.matchStore.GetByPairForUpdate(txCtx, tx, userID, targetID)
			if err != nil {
				if errors.Is(err, pgrepo.ErrMatchNotFound) {
					return ErrNotFound
				}
				return err
			}
		} else {
			match, created, err = s.matchStore.CreateOrGet(txCtx, tx, userID, targetID, userID, action, score, now)
			if err != nil {
				return err
			}
		}

		if _, err := s.ledger.Append(txCtx, tx, match.ID, userID, action, now); err != nil {
			return err
		}

		updated, matched := resolveTransition(match, userID, action, tier, now, s.cfg.MatchTTL)
		if err := s.matchStore.ApplyTransition(txCtx, tx, updated); err != nil {
			return err
		}

		if action == enums.ActionBlock && s.blockStore != nil {
			if err := s.blockStore.Upsert(txCtx, tx, userID, targetID, now); err != nil {
				return err
			}
		}

		result.Match = updated
		result.PairCreated = created
		result.Matched = matched
		return nil
	}); err != nil {
		return ActionResult{}, err
	}

	snapshot, err := s.SuperLikeStatus(ctx, userID, timezone)
	if err != nil {
		return ActionResult{}, err
	}
	result.SuperLikes = snapshot

	return result, nil
}

// Rewind hard-deletes the caller's newest pair record, ledger included, when
// it is still a one-sided pending like inside the grace window. A consumed
// super like is refunded against the day it was spent.
func (s *Service) Rewind(ctx context.Context, userID int64, timezone string) (RewindResult, error) {
	if userID <= 0 {
		return RewindResult{}, ErrValidation
	}
	if s.matchStore == nil || s.ledger == nil {
		return RewindResult{}, fmt.Errorf("matching dependencies are not configured")
	}

	now := s.now().UTC()
	loc, _ := s.resolveTimezone(timezone)

	tier, err := s.resolveTier(ctx, userID)
	if err != nil {
		return RewindResult{}, err
	}

	result := RewindResult{}
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		match, err := s.matchStore.GetLatestInitiatedBy(txCtx, tx, userID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrMatchNotFound) {
				return ErrNoActionsToRewind
			}
			return err
		}
		if match.InitiatorID != userID {
			return ErrRewindForbidden
		}
		if match.Status != enums.MatchStatusPending {
			return ErrRewindForbidden
		}
		if other := match.LastActionOf(match.OtherMember(userID)); other != nil {
			return ErrRewindForbidden
		}
		if now.Sub(match.CreatedAt.UTC()) > s.cfg.RewindWindow {
			return ErrRewindExpired
		}

		if match.MatchType == enums.ActionSuperLike && s.quotaStore != nil {
			if _, unlimited := s.superLikeLimit(tier); !unlimited {
				actionDayKey := rules.DayKey(match.CreatedAt.UTC(), loc)
				if err := s.quotaStore.Refund(txCtx, tx, userID, actionDayKey); err != nil {
					return err
				}
			}
		}

		if err := s.ledger.DeleteByMatch(txCtx, tx, match.ID); err != nil {
			return err
		}
		if err := s.matchStore.DeleteByID(txCtx, tx, match.ID); err != nil {
			return err
		}

		result = RewindResult{
			UndoneAction:   match.MatchType,
			UndoneTargetID: match.OtherMember(userID),
			MatchID:        match.ID,
		}
		return nil
	}); err != nil {
		return RewindResult{}, err
	}

	return result, nil
}

// Report files a complaint without moving the pair state machine. When a pair
// record exists the report still lands in its ledger for audit. The returned
// reference is what support hands back to the reporter.
func (s *Service) Report(ctx context.Context, reporterID, targetID int64, reason enums.ReportReason, comment string) (ReportResult, error) {
	if reporterID <= 0 || targetID <= 0 {
		return ReportResult{}, ErrValidation
	}
	if reporterID == targetID {
		return ReportResult{}, ErrSelfAction
	}
	if s.reportStore == nil {
		return ReportResult{}, fmt.Errorf("report store is not configured")
	}

	now := s.now().UTC()
	reference := uuid.NewString()

	result := ReportResult{Reference: reference}
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		id, err := s.reportStore.Create(txCtx, tx, reporterID, targetID, reason, comment, reference, now)
		if err != nil {
			return err
		}
		result.ID = id

		match, err := s.matchStore.GetByPairForUpdate(txCtx, tx, reporterID, targetID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrMatchNotFound) {
				return nil
			}
			return err
		}
		if _, err := s.ledger.Append(txCtx, tx, match.ID, reporterID, enums.ActionReport, now); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return ReportResult{}, err
	}

	return result, nil
}

// RecordMessage is the hook for the messaging collaborator. The first message
// clears the conversation TTL.
func (s *Service) RecordMessage(ctx context.Context, matchID int64, at time.Time) (model.Match, error) {
	if matchID <= 0 {
		return model.Match{}, ErrValidation
	}
	if s.matchStore == nil {
		return model.Match{}, fmt.Errorf("match store is not configured")
	}
	if at.IsZero() {
		at = s.now().UTC()
	}

	match, err := s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Match{}, ErrNotFound
		}
		return model.Match{}, err
	}
	if match.Status != enums.MatchStatusMatched {
		return model.Match{}, ErrInvalidTransition
	}

	updated, err := s.matchStore.RecordMessage(ctx, matchID, at)
	if err != nil {
		return model.Match{}, err
	}
	if !updated {
		return model.Match{}, ErrInvalidTransition
	}

	match, err = s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		return model.Match{}, err
	}
	return match, nil
}

// RefreshScore recomputes the cached compatibility score from the current
// profiles. Scores are otherwise frozen at pair creation.
func (s *Service) RefreshScore(ctx context.Context, matchID int64) (int, error) {
	if matchID <= 0 {
		return 0, ErrValidation
	}
	if s.matchStore == nil {
		return 0, fmt.Errorf("match store is not configured")
	}

	match, err := s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	score, err := s.compatScore(ctx, match.UserAID, match.UserBID)
	if err != nil {
		return 0, err
	}
	if err := s.matchStore.UpdateScore(ctx, matchID, score); err != nil {
		return 0, err
	}

	return score, nil
}

func (s *Service) ListMatches(ctx context.Context, userID int64, limit int) ([]model.Match, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.matchStore == nil {
		return nil, fmt.Errorf("match store is not configured")
	}

	return s.matchStore.ListActiveForUser(ctx, userID, limit)
}

func (s *Service) GetMatch(ctx context.Context, userID, matchID int64) (model.Match, error) {
	if userID <= 0 || matchID <= 0 {
		return model.Match{}, ErrValidation
	}

	match, err := s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Match{}, ErrNotFound
		}
		return model.Match{}, err
	}
	if !match.HasMember(userID) {
		return model.Match{}, ErrForbidden
	}

	return match, nil
}

// SuperLikeStatus reports the caller's remaining super-like budget for their
// local day.
func (s *Service) SuperLikeStatus(ctx context.Context, userID int64, timezone string) (QuotaSnapshot, error) {
	if userID <= 0 {
		return QuotaSnapshot{}, ErrValidation
	}

	tier, err := s.resolveTier(ctx, userID)
	if err != nil {
		return QuotaSnapshot{}, err
	}

	now := s.now().UTC()
	loc, _ := s.resolveTimezone(timezone)
	limit, unlimited := s.superLikeLimit(tier)

	snapshot := QuotaSnapshot{
		Limit:     limit,
		Unlimited: unlimited,
		ResetAt:   rules.NextResetAt(now, loc),
	}
	if unlimited || s.quotaStore == nil {
		return snapshot, nil
	}

	used, err := s.quotaStore.GetUsed(ctx, userID, rules.DayKey(now, loc))
	if err != nil {
		return QuotaSnapshot{}, fmt.Errorf("read super like usage: %w", err)
	}
	snapshot.Used = used

	return snapshot, nil
}

func (s *Service) superLikeLimit(tier enums.Tier) (int, bool) {
	if entitlements.TierHasFeature(tier, entitlements.FeatureUnlimitedSuperLikes) {
		return 0, true
	}
	if tier == enums.TierPlus {
		return s.cfg.PlusSuperLikesPerDay, false
	}
	return s.cfg.FreeSuperLikesPerDay, false
}

func (s *Service) resolveTier(ctx context.Context, userID int64) (enums.Tier, error) {
	if s.tiers == nil {
		return enums.TierFree, nil
	}
	tier, err := s.tiers.TierFor(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("resolve subscription tier: %w", err)
	}
	return tier, nil
}

func (s *Service) compatScore(ctx context.Context, userID, targetID int64) (int, error) {
	if s.profileStore == nil {
		return 0, nil
	}
	profiles, err := s.profileStore.GetByUsers(ctx, []int64{userID, targetID})
	if err != nil {
		return 0, fmt.Errorf("load profiles for scoring: %w", err)
	}
	return rules.CompatibilityScore(profiles[userID], profiles[targetID]), nil
}

func (s *Service) resolveTimezone(explicit string) (*time.Location, string) {
	candidate := strings.TrimSpace(explicit)
	if candidate == "" {
		candidate = strings.TrimSpace(s.cfg.DefaultTimezone)
	}
	if candidate == "" {
		candidate = "UTC"
	}

	loc, err := time.LoadLocation(candidate)
	if err != nil {
		return time.UTC, "UTC"
	}
	return loc, candidate
}
