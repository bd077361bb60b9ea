package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	matchingsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/matching"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/dto"
	httperrors "github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/errors"
)

// MessageHandler serves the internal hook the messaging collaborator calls
// after delivering a message. It sits behind the internal router, not user
// auth.
type MessageHandler struct {
	service *matchingsvc.Service
}

func NewMessageHandler(service *matchingsvc.Service) *MessageHandler {
	return &MessageHandler{service: service}
}

// Record is POST /internal/matches/{id}/messages.
func (h *MessageHandler) Record(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	matchID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || matchID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match id")
		return
	}

	var req dto.MessageHookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	at := time.Time{}
	if req.At != nil {
		at = req.At.UTC()
	}

	match, err := h.service.RecordMessage(r.Context(), matchID, at)
	if err != nil {
		writeMatchingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MessageHookResponse{
		OK:            true,
		MessageCount:  match.MessageCount,
		LastMessageAt: match.LastMessageAt,
	})
}
