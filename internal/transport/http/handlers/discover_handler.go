package handlers

import (
	"errors"
	"net/http"
	"strconv"

	authsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/auth"
	discoverysvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/discovery"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/dto"
	httperrors "github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/errors"
)

type DiscoverHandler struct {
	service *discoverysvc.Service
}

func NewDiscoverHandler(service *discoverysvc.Service) *DiscoverHandler {
	return &DiscoverHandler{service: service}
}

// Handle is GET /v1/discover?page=&limit=.
func (h *DiscoverHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "DISCOVERY_SERVICE_UNAVAILABLE", "discovery service is unavailable")
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 0)

	result, err := h.service.Discover(r.Context(), identity.UserID, page, limit)
	if err != nil {
		if errors.Is(err, discoverysvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid discovery request")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to build discovery feed")
		return
	}

	cards := make([]dto.DiscoverCard, 0, len(result.Cards))
	for _, card := range result.Cards {
		cards = append(cards, mapCard(card))
	}

	httperrors.Write(w, http.StatusOK, dto.DiscoverResponse{
		Cards:   cards,
		Page:    result.Page,
		Limit:   result.Limit,
		HasMore: result.HasMore,
	})
}

func mapCard(card discoverysvc.Card) dto.DiscoverCard {
	return dto.DiscoverCard{
		UserID:          card.UserID,
		Age:             card.Age,
		Gender:          card.Gender,
		Score:           card.Score,
		DistanceKM:      card.DistanceKM,
		Goal:            card.Goal,
		Interests:       card.Interests,
		IsVerified:      card.IsVerified,
		PrimaryPhotoURL: card.PrimaryPhotoURL,
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
