package handlers

import (
	"net/http"

	authsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/auth"
	matchingsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/matching"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/dto"
	httperrors "github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *matchingsvc.Service
}

func NewMatchesHandler(service *matchingsvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

// List is GET /v1/matches.
func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	limit := queryInt(r, "limit", 0)

	matches, err := h.service.ListMatches(r.Context(), identity.UserID, limit)
	if err != nil {
		writeMatchingError(w, err)
		return
	}

	payload := make([]dto.MatchPayload, 0, len(matches))
	for _, match := range matches {
		payload = append(payload, mapMatch(match, identity.UserID))
	}

	httperrors.Write(w, http.StatusOK, dto.MatchesResponse{Matches: payload})
}
