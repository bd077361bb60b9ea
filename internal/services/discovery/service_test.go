package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
	pgrepo "github.com/acurldiem/INCLOVE-BACKEND/internal/repo/postgres"
)

type userStoreStub struct {
	users map[int64]*model.User
}

func (s *userStoreStub) GetByID(_ context.Context, userID int64) (*model.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, pgrepo.ErrUserNotFound
	}
	return user, nil
}

type candidateStoreStub struct {
	candidates []*model.User
	fetchLimit int
}

func (s *candidateStoreStub) ListCandidates(_ context.Context, _ *model.User, _ time.Time, fetchLimit int) ([]*model.User, error) {
	s.fetchLimit = fetchLimit
	return s.candidates, nil
}

type profileStoreStub struct {
	profiles map[int64]*model.Profile
}

func (s *profileStoreStub) GetByUsers(_ context.Context, userIDs []int64) (map[int64]*model.Profile, error) {
	out := make(map[int64]*model.Profile, len(userIDs))
	for _, id := range userIDs {
		if p, ok := s.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type photoStoreStub struct {
	keys map[int64]string
}

func (s *photoStoreStub) GetPrimaryKeys(_ context.Context, userIDs []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(userIDs))
	for _, id := range userIDs {
		if k, ok := s.keys[id]; ok {
			out[id] = k
		}
	}
	return out, nil
}

type signerStub struct {
	calls []string
}

func (s *signerStub) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	s.calls = append(s.calls, key)
	return "https://cdn.example.com/" + key, nil
}

func birthdate(year int) *time.Time {
	b := time.Date(year, 6, 15, 0, 0, 0, 0, time.UTC)
	return &b
}

func activeUser(id int64) *model.User {
	return &model.User{
		ID:        id,
		Gender:    "female",
		Birthdate: birthdate(1995),
		IsActive:  true,
	}
}

func locate(u *model.User, lat, lon float64) *model.User {
	u.LastLat = &lat
	u.LastLon = &lon
	return u
}

func sharedProfile(userID int64, interests ...string) *model.Profile {
	return &model.Profile{
		UserID:    userID,
		Interests: interests,
		Goal:      enums.GoalSerious,
	}
}

func newTestService(users *userStoreStub, candidates *candidateStoreStub, profiles *profileStoreStub, photos *photoStoreStub, signer *signerStub) *Service {
	deps := Dependencies{
		Users:      users,
		Candidates: candidates,
	}
	if profiles != nil {
		deps.Profiles = profiles
	}
	if photos != nil {
		deps.Photos = photos
	}
	if signer != nil {
		deps.PhotoSign = signer
	}
	return NewService(deps, Config{})
}

func TestDiscoverRanksByScoreThenID(t *testing.T) {
	viewer := activeUser(1)
	users := &userStoreStub{users: map[int64]*model.User{1: viewer}}
	candidates := &candidateStoreStub{candidates: []*model.User{activeUser(4), activeUser(2), activeUser(3)}}
	profiles := &profileStoreStub{profiles: map[int64]*model.Profile{
		1: sharedProfile(1, "hiking", "music", "film"),
		2: sharedProfile(2, "hiking"),
		3: sharedProfile(3, "hiking", "music"),
		4: sharedProfile(4, "hiking"),
	}}

	svc := newTestService(users, candidates, profiles, nil, nil)

	result, err := svc.Discover(context.Background(), 1, 1, 10)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(result.Cards) != 3 {
		t.Fatalf("unexpected card count: %d", len(result.Cards))
	}
	if result.Cards[0].UserID != 3 {
		t.Fatalf("highest score must come first, got user %d", result.Cards[0].UserID)
	}
	if result.Cards[1].UserID != 2 || result.Cards[2].UserID != 4 {
		t.Fatalf("score ties must break by ascending id: %d, %d", result.Cards[1].UserID, result.Cards[2].UserID)
	}
	if result.Cards[0].Score <= result.Cards[1].Score {
		t.Fatalf("scores not descending: %d then %d", result.Cards[0].Score, result.Cards[1].Score)
	}
}

func TestDiscoverPagination(t *testing.T) {
	viewer := activeUser(1)
	users := &userStoreStub{users: map[int64]*model.User{1: viewer}}

	var pool []*model.User
	for id := int64(2); id <= 6; id++ {
		pool = append(pool, activeUser(id))
	}
	candidates := &candidateStoreStub{candidates: pool}

	svc := newTestService(users, candidates, nil, nil, nil)

	first, err := svc.Discover(context.Background(), 1, 1, 2)
	if err != nil {
		t.Fatalf("discover page 1: %v", err)
	}
	if len(first.Cards) != 2 || !first.HasMore {
		t.Fatalf("unexpected first page: %d cards, hasMore=%v", len(first.Cards), first.HasMore)
	}
	if first.Cards[0].UserID != 2 || first.Cards[1].UserID != 3 {
		t.Fatalf("unexpected first page order: %d, %d", first.Cards[0].UserID, first.Cards[1].UserID)
	}

	third, err := svc.Discover(context.Background(), 1, 3, 2)
	if err != nil {
		t.Fatalf("discover page 3: %v", err)
	}
	if len(third.Cards) != 1 || third.HasMore {
		t.Fatalf("unexpected last page: %d cards, hasMore=%v", len(third.Cards), third.HasMore)
	}
	if third.Cards[0].UserID != 6 {
		t.Fatalf("unexpected last card: %d", third.Cards[0].UserID)
	}

	empty, err := svc.Discover(context.Background(), 1, 4, 2)
	if err != nil {
		t.Fatalf("discover page 4: %v", err)
	}
	if len(empty.Cards) != 0 {
		t.Fatalf("page past the end must be empty, got %d cards", len(empty.Cards))
	}
}

func TestDiscoverFiltersByDistance(t *testing.T) {
	viewer := locate(activeUser(1), 52.52, 13.405)
	viewer.Preferences.MaxDistanceKM = 50

	near := locate(activeUser(2), 52.5, 13.4)
	far := locate(activeUser(3), 48.8566, 2.3522)
	unlocated := activeUser(4)

	users := &userStoreStub{users: map[int64]*model.User{1: viewer}}
	candidates := &candidateStoreStub{candidates: []*model.User{near, far, unlocated}}

	svc := newTestService(users, candidates, nil, nil, nil)

	result, err := svc.Discover(context.Background(), 1, 1, 10)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(result.Cards) != 1 {
		t.Fatalf("unexpected card count: %d", len(result.Cards))
	}
	if result.Cards[0].UserID != 2 {
		t.Fatalf("only the nearby candidate may survive, got user %d", result.Cards[0].UserID)
	}
	if result.Cards[0].DistanceKM == nil {
		t.Fatalf("nearby candidate must carry a distance")
	}
	if *result.Cards[0].DistanceKM > 5 {
		t.Fatalf("unexpected distance: %d km", *result.Cards[0].DistanceKM)
	}
}

func TestDiscoverDropsUnlocatedCandidatesForLocatedViewer(t *testing.T) {
	viewer := locate(activeUser(1), 52.52, 13.405)
	users := &userStoreStub{users: map[int64]*model.User{1: viewer}}
	candidates := &candidateStoreStub{candidates: []*model.User{activeUser(2), locate(activeUser(3), 52.5, 13.4)}}

	svc := newTestService(users, candidates, nil, nil, nil)

	result, err := svc.Discover(context.Background(), 1, 1, 10)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(result.Cards) != 1 || result.Cards[0].UserID != 3 {
		t.Fatalf("candidate without a location must be dropped: %+v", result.Cards)
	}
}

func TestDiscoverViewerWithoutLocationGetsUndistancedFeed(t *testing.T) {
	viewer := activeUser(1)
	users := &userStoreStub{users: map[int64]*model.User{1: viewer}}
	candidates := &candidateStoreStub{candidates: []*model.User{activeUser(2), locate(activeUser(3), 52.5, 13.4)}}

	svc := newTestService(users, candidates, nil, nil, nil)

	result, err := svc.Discover(context.Background(), 1, 1, 10)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(result.Cards) != 2 {
		t.Fatalf("viewer without coordinates must skip distance filtering, got %d cards", len(result.Cards))
	}
	for _, card := range result.Cards {
		if card.DistanceKM != nil {
			t.Fatalf("distance must be unset when the viewer has no location")
		}
	}
}

func TestDiscoverUnknownViewerReturnsEmpty(t *testing.T) {
	users := &userStoreStub{users: map[int64]*model.User{}}
	candidates := &candidateStoreStub{}

	svc := newTestService(users, candidates, nil, nil, nil)

	result, err := svc.Discover(context.Background(), 99, 1, 10)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(result.Cards) != 0 {
		t.Fatalf("unknown viewer must get an empty feed")
	}
}

func TestDiscoverSignsPhotoKeysForPageOnly(t *testing.T) {
	viewer := activeUser(1)
	users := &userStoreStub{users: map[int64]*model.User{1: viewer}}
	candidates := &candidateStoreStub{candidates: []*model.User{activeUser(2), activeUser(3), activeUser(4)}}
	photos := &photoStoreStub{keys: map[int64]string{
		2: "photos/2/main.jpg",
		3: "photos/3/main.jpg",
		4: "photos/4/main.jpg",
	}}
	signer := &signerStub{}

	svc := newTestService(users, candidates, nil, photos, signer)

	result, err := svc.Discover(context.Background(), 1, 1, 2)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(result.Cards) != 2 {
		t.Fatalf("unexpected card count: %d", len(result.Cards))
	}
	if len(signer.calls) != 2 {
		t.Fatalf("only the requested page may be presigned, got %d calls", len(signer.calls))
	}
	if result.Cards[0].PrimaryPhotoURL == nil {
		t.Fatalf("card photo url missing")
	}
	if got := *result.Cards[0].PrimaryPhotoURL; got != "https://cdn.example.com/photos/2/main.jpg" {
		t.Fatalf("unexpected photo url: %s", got)
	}
}

func TestGetCandidateProfileRejectsSelf(t *testing.T) {
	users := &userStoreStub{users: map[int64]*model.User{1: activeUser(1)}}
	svc := newTestService(users, &candidateStoreStub{}, nil, nil, nil)

	if _, err := svc.GetCandidateProfile(context.Background(), 1, 1); err != ErrValidation {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGetCandidateProfileHidesInactive(t *testing.T) {
	inactive := activeUser(2)
	inactive.IsActive = false
	users := &userStoreStub{users: map[int64]*model.User{1: activeUser(1), 2: inactive}}
	svc := newTestService(users, &candidateStoreStub{}, nil, nil, nil)

	if _, err := svc.GetCandidateProfile(context.Background(), 1, 2); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetCandidateProfileExposesDetails(t *testing.T) {
	users := &userStoreStub{users: map[int64]*model.User{1: activeUser(1), 2: activeUser(2)}}
	profiles := &profileStoreStub{profiles: map[int64]*model.Profile{
		2: {
			UserID:    2,
			Interests: []string{"hiking"},
			Goal:      enums.GoalSerious,
			Education: model.Education{School: "TU Berlin", DegreeLevel: "masters"},
			Languages: []model.Language{{Name: "german", Proficiency: "native"}, {Name: "english", Proficiency: "fluent"}},
		},
	}}

	svc := newTestService(users, &candidateStoreStub{}, profiles, nil, nil)

	view, err := svc.GetCandidateProfile(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("candidate profile: %v", err)
	}
	if view.School != "TU Berlin" || view.DegreeLevel != "masters" {
		t.Fatalf("education not exposed: %+v", view)
	}
	if len(view.Languages) != 2 || view.Languages[0] != "german" {
		t.Fatalf("languages not exposed: %v", view.Languages)
	}
	if view.Card.UserID != 2 {
		t.Fatalf("unexpected card: %+v", view.Card)
	}
}
