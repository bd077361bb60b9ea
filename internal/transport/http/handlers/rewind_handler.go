package handlers

import (
	"net/http"

	authsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/auth"
	matchingsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/matching"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/dto"
	httperrors "github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/errors"
)

type RewindHandler struct {
	service *matchingsvc.Service
}

func NewRewindHandler(service *matchingsvc.Service) *RewindHandler {
	return &RewindHandler{service: service}
}

func (h *RewindHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	result, err := h.service.Rewind(r.Context(), identity.UserID, timezoneFromRequest(r))
	if err != nil {
		writeMatchingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.RewindResponse{
		OK:             true,
		UndoneAction:   string(result.UndoneAction),
		UndoneTargetID: result.UndoneTargetID,
	})
}
