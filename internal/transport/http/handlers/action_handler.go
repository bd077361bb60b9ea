package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
	authsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/auth"
	matchingsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/matching"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/dto"
	httperrors "github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/errors"
)

type ActionHandler struct {
	service *matchingsvc.Service
}

func NewActionHandler(service *matchingsvc.Service) *ActionHandler {
	return &ActionHandler{service: service}
}

// Handle is POST /v1/actions, the single entry for like, super_like and pass.
func (h *ActionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	var req dto.ActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.TargetID <= 0 || strings.TrimSpace(req.Action) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id and action are required")
		return
	}

	action, err := enums.ParseInteractionAction(req.Action)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "unsupported action")
		return
	}

	result, err := h.service.ApplyAction(r.Context(), identity.UserID, req.TargetID, action, timezoneFromRequest(r))
	if err != nil {
		writeMatchingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ActionResponse{
		OK:         true,
		Match:      mapMatch(result.Match, identity.UserID),
		Matched:    result.Matched,
		SuperLikes: mapQuota(result.SuperLikes),
	})
}

// Unmatch is POST /v1/unmatch.
func (h *ActionHandler) Unmatch(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	var req dto.UnmatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.TargetID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id is required")
		return
	}

	result, err := h.service.ApplyAction(r.Context(), identity.UserID, req.TargetID, enums.ActionUnmatch, timezoneFromRequest(r))
	if err != nil {
		writeMatchingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ActionResponse{
		OK:         true,
		Match:      mapMatch(result.Match, identity.UserID),
		SuperLikes: mapQuota(result.SuperLikes),
	})
}

// Block is POST /v1/block.
func (h *ActionHandler) Block(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	var req dto.BlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.TargetID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id is required")
		return
	}

	result, err := h.service.ApplyAction(r.Context(), identity.UserID, req.TargetID, enums.ActionBlock, timezoneFromRequest(r))
	if err != nil {
		writeMatchingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ActionResponse{
		OK:         true,
		Match:      mapMatch(result.Match, identity.UserID),
		SuperLikes: mapQuota(result.SuperLikes),
	})
}

// Report is POST /v1/report.
func (h *ActionHandler) Report(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	var req dto.ReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.TargetID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id is required")
		return
	}

	reason, err := enums.ParseReportReason(req.Reason)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "unsupported report reason")
		return
	}

	report, err := h.service.Report(r.Context(), identity.UserID, req.TargetID, reason, req.Details)
	if err != nil {
		writeMatchingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ReportResponse{OK: true, ReportID: report.ID, Reference: report.Reference})
}

func writeMatchingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matchingsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request")
	case errors.Is(err, matchingsvc.ErrSelfAction):
		writeBadRequest(w, "SELF_ACTION", "cannot act on yourself")
	case errors.Is(err, matchingsvc.ErrUnsupportedAction):
		writeBadRequest(w, "VALIDATION_ERROR", "unsupported action")
	case errors.Is(err, matchingsvc.ErrNotFound):
		writeNotFound(w, "MATCH_NOT_FOUND", "match not found")
	case errors.Is(err, matchingsvc.ErrForbidden):
		httperrors.Write(w, http.StatusForbidden, httperrors.APIError{
			Code:    "FORBIDDEN",
			Message: "you are not a member of this match",
		})
	case errors.Is(err, matchingsvc.ErrInvalidTransition):
		writeConflict(w, "INVALID_TRANSITION", "match state does not allow this operation")
	case errors.Is(err, matchingsvc.ErrSuperLikeLimit):
		httperrors.Write(w, http.StatusTooManyRequests, httperrors.APIError{
			Code:    "SUPER_LIKE_LIMIT_REACHED",
			Message: "daily super like limit reached",
		})
	case errors.Is(err, matchingsvc.ErrNoActionsToRewind):
		writeNotFound(w, "NOTHING_TO_REWIND", "no actions to rewind")
	case errors.Is(err, matchingsvc.ErrRewindExpired):
		writeConflict(w, "REWIND_EXPIRED", "rewind window expired")
	case errors.Is(err, matchingsvc.ErrRewindForbidden):
		writeConflict(w, "REWIND_FORBIDDEN", "this match cannot be rewound")
	default:
		var tooFast matchingsvc.TooFastError
		if errors.As(err, &tooFast) {
			httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
				Code:          "TOO_FAST",
				Message:       "too many actions, slow down",
				RetryAfterSec: tooFast.RetryAfterSec,
			})
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to process request")
	}
}

func mapMatch(m model.Match, viewerID int64) dto.MatchPayload {
	return dto.MatchPayload{
		ID:            m.ID,
		OtherUserID:   m.OtherMember(viewerID),
		Status:        string(m.Status),
		MatchType:     string(m.MatchType),
		Score:         m.MatchScore,
		MessageCount:  m.MessageCount,
		LastMessageAt: m.LastMessageAt,
		ExpiresAt:     m.ExpiresAt,
		CreatedAt:     m.CreatedAt,
	}
}

func mapQuota(q matchingsvc.QuotaSnapshot) dto.QuotaPayload {
	return dto.QuotaPayload{
		Used:      q.Used,
		Limit:     q.Limit,
		Unlimited: q.Unlimited,
		ResetAt:   q.ResetAt,
	}
}
