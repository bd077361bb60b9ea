package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/auth"
	discoverysvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/discovery"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/dto"
	httperrors "github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/errors"
)

type CandidateHandler struct {
	service *discoverysvc.Service
}

func NewCandidateHandler(service *discoverysvc.Service) *CandidateHandler {
	return &CandidateHandler{service: service}
}

// Profile is GET /v1/candidates/{user_id}/profile.
func (h *CandidateHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "DISCOVERY_SERVICE_UNAVAILABLE", "discovery service is unavailable")
		return
	}

	candidateID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil || candidateID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	view, err := h.service.GetCandidateProfile(r.Context(), identity.UserID, candidateID)
	if err != nil {
		switch {
		case errors.Is(err, discoverysvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid candidate request")
		case errors.Is(err, discoverysvc.ErrNotFound):
			writeNotFound(w, "CANDIDATE_NOT_FOUND", "candidate not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load candidate profile")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.CandidateProfileResponse{
		DiscoverCard: mapCard(view.Card),
		Languages:    view.Languages,
		School:       view.School,
		DegreeLevel:  view.DegreeLevel,
	})
}
