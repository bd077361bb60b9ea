package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/rules"
	pgrepo "github.com/acurldiem/INCLOVE-BACKEND/internal/repo/postgres"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
	cardPhotoURLTTL = 5 * time.Minute
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type UserStore interface {
	GetByID(ctx context.Context, userID int64) (*model.User, error)
}

type CandidateStore interface {
	ListCandidates(ctx context.Context, viewer *model.User, now time.Time, fetchLimit int) ([]*model.User, error)
}

type ProfileStore interface {
	GetByUsers(ctx context.Context, userIDs []int64) (map[int64]*model.Profile, error)
}

type PhotoStore interface {
	GetPrimaryKeys(ctx context.Context, userIDs []int64) (map[int64]string, error)
}

type PhotoURLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Config struct {
	DefaultRadiusKM int
	MaxRadiusKM     int
	FetchLimit      int
}

// Card is one ranked discovery entry.
type Card struct {
	UserID          int64
	Age             int
	Gender          string
	Score           int
	DistanceKM      *int
	Goal            string
	Interests       []string
	IsVerified      bool
	PrimaryPhotoURL *string
}

type Result struct {
	Cards   []Card
	Page    int
	Limit   int
	HasMore bool
}

// CandidateView is the detailed profile card for a single candidate.
type CandidateView struct {
	Card
	Languages   []string
	School      string
	DegreeLevel string
}

type Service struct {
	users      UserStore
	candidates CandidateStore
	profiles   ProfileStore
	photos     PhotoStore
	photoSign  PhotoURLSigner
	cfg        Config
	now        func() time.Time
}

type Dependencies struct {
	Users      UserStore
	Candidates CandidateStore
	Profiles   ProfileStore
	Photos     PhotoStore
	PhotoSign  PhotoURLSigner
}

type rankedCandidate struct {
	user     *model.User
	score    int
	distance *int
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.DefaultRadiusKM <= 0 {
		cfg.DefaultRadiusKM = 100
	}
	if cfg.MaxRadiusKM <= 0 {
		cfg.MaxRadiusKM = 500
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = 500
	}

	return &Service{
		users:      deps.Users,
		candidates: deps.Candidates,
		profiles:   deps.Profiles,
		photos:     deps.Photos,
		photoSign:  deps.PhotoSign,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Discover returns one page of ranked candidate cards. Ranking is
// compatibility score descending with candidate id ascending as the
// tie-break, so pages stay stable between requests.
func (s *Service) Discover(ctx context.Context, userID int64, page, limit int) (Result, error) {
	if userID <= 0 {
		return Result{}, ErrValidation
	}
	if s.users == nil || s.candidates == nil {
		return Result{}, fmt.Errorf("discovery dependencies are not configured")
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	now := s.now().UTC()

	viewer, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return Result{Cards: []Card{}, Page: page, Limit: limit}, nil
		}
		return Result{}, err
	}
	if !viewer.IsActive {
		return Result{Cards: []Card{}, Page: page, Limit: limit}, nil
	}

	candidates, err := s.candidates.ListCandidates(ctx, viewer, now, s.cfg.FetchLimit)
	if err != nil {
		return Result{}, err
	}
	if len(candidates) == 0 {
		return Result{Cards: []Card{}, Page: page, Limit: limit}, nil
	}

	profiles, err := s.loadProfiles(ctx, viewer.ID, candidates)
	if err != nil {
		return Result{}, err
	}
	viewerProfile := profiles[viewer.ID]

	maxDistance := normalizeRadius(viewer.Preferences.MaxDistanceKM, s.cfg.DefaultRadiusKM, s.cfg.MaxRadiusKM)
	viewerLat, viewerLon, viewerHasCoords := locationOf(viewer)

	// The geo bound is a hard filter: a viewer with a known location never
	// sees candidates whose distance cannot be established. A viewer who has
	// not shared a location gets an undistanced feed instead of none at all.
	ranked := make([]rankedCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		entry := rankedCandidate{
			user:  candidate,
			score: rules.CompatibilityScore(viewerProfile, profiles[candidate.ID]),
		}

		if viewerHasCoords {
			candLat, candLon, ok := locationOf(candidate)
			if !ok {
				continue
			}
			km := rules.DistanceKM(viewerLat, viewerLon, candLat, candLon)
			if km > maxDistance {
				continue
			}
			entry.distance = &km
		}

		ranked = append(ranked, entry)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].user.ID < ranked[j].user.ID
	})

	skip := (page - 1) * limit
	if skip >= len(ranked) {
		return Result{Cards: []Card{}, Page: page, Limit: limit}, nil
	}
	end := skip + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	pageEntries := ranked[skip:end]

	photoKeys := s.loadPhotoKeys(ctx, pageEntries)

	cards := make([]Card, 0, len(pageEntries))
	for _, entry := range pageEntries {
		cards = append(cards, s.buildCard(ctx, entry, profiles[entry.user.ID], photoKeys[entry.user.ID], now))
	}

	return Result{
		Cards:   cards,
		Page:    page,
		Limit:   limit,
		HasMore: end < len(ranked),
	}, nil
}

// GetCandidateProfile is the detail view behind a discovery card.
func (s *Service) GetCandidateProfile(ctx context.Context, viewerID, candidateID int64) (CandidateView, error) {
	if viewerID <= 0 || candidateID <= 0 || viewerID == candidateID {
		return CandidateView{}, ErrValidation
	}
	if s.users == nil {
		return CandidateView{}, fmt.Errorf("discovery dependencies are not configured")
	}

	now := s.now().UTC()

	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return CandidateView{}, ErrNotFound
		}
		return CandidateView{}, err
	}

	candidate, err := s.users.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return CandidateView{}, ErrNotFound
		}
		return CandidateView{}, err
	}
	if !candidate.IsActive {
		return CandidateView{}, ErrNotFound
	}

	profiles, err := s.loadProfiles(ctx, viewerID, []*model.User{candidate})
	if err != nil {
		return CandidateView{}, err
	}

	entry := rankedCandidate{
		user:  candidate,
		score: rules.CompatibilityScore(profiles[viewerID], profiles[candidateID]),
	}
	if viewerLat, viewerLon, ok := locationOf(viewer); ok {
		if candLat, candLon, ok := locationOf(candidate); ok {
			km := rules.DistanceKM(viewerLat, viewerLon, candLat, candLon)
			entry.distance = &km
		}
	}

	photoKeys := s.loadPhotoKeys(ctx, []rankedCandidate{entry})

	view := CandidateView{
		Card: s.buildCard(ctx, entry, profiles[candidateID], photoKeys[candidateID], now),
	}
	if profile := profiles[candidateID]; profile != nil {
		view.School = profile.Education.School
		view.DegreeLevel = profile.Education.DegreeLevel
		view.Languages = make([]string, 0, len(profile.Languages))
		for _, lang := range profile.Languages {
			view.Languages = append(view.Languages, lang.Name)
		}
	}

	return view, nil
}

func (s *Service) buildCard(ctx context.Context, entry rankedCandidate, profile *model.Profile, photoKey string, now time.Time) Card {
	card := Card{
		UserID:          entry.user.ID,
		Age:             entry.user.Age(now),
		Gender:          entry.user.Gender,
		Score:           entry.score,
		DistanceKM:      entry.distance,
		IsVerified:      entry.user.IsVerified,
		PrimaryPhotoURL: s.buildPhotoURL(ctx, photoKey),
	}
	if profile != nil {
		card.Goal = string(profile.Goal)
		card.Interests = append([]string(nil), profile.Interests...)
	}
	return card
}

func (s *Service) loadProfiles(ctx context.Context, viewerID int64, candidates []*model.User) (map[int64]*model.Profile, error) {
	if s.profiles == nil {
		return map[int64]*model.Profile{}, nil
	}

	ids := make([]int64, 0, len(candidates)+1)
	ids = append(ids, viewerID)
	for _, candidate := range candidates {
		ids = append(ids, candidate.ID)
	}

	profiles, err := s.profiles.GetByUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load profiles for discovery: %w", err)
	}
	return profiles, nil
}

func (s *Service) loadPhotoKeys(ctx context.Context, entries []rankedCandidate) map[int64]string {
	if s.photos == nil || len(entries) == 0 {
		return map[int64]string{}
	}

	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.user.ID)
	}

	keys, err := s.photos.GetPrimaryKeys(ctx, ids)
	if err != nil {
		return map[int64]string{}
	}
	return keys
}

func (s *Service) buildPhotoURL(ctx context.Context, key string) *string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return &trimmed
	}
	if s.photoSign == nil {
		return nil
	}

	url, err := s.photoSign.PresignGet(ctx, trimmed, cardPhotoURLTTL)
	if err != nil {
		return nil
	}
	value := strings.TrimSpace(url)
	if value == "" {
		return nil
	}
	return &value
}

// locationOf narrows a user's last coordinates to a usable point; NaN, Inf
// and out-of-range values count as unknown.
func locationOf(u *model.User) (lat, lon float64, ok bool) {
	lat, lon, ok = u.Coordinates()
	if !ok || !rules.ValidCoordinates(lat, lon) {
		return 0, 0, false
	}
	return lat, lon, true
}

func normalizeRadius(radius, fallback, max int) int {
	if radius <= 0 {
		radius = fallback
	}
	if radius > max {
		radius = max
	}
	return radius
}
