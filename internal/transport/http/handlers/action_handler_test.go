package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/enums"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/domain/model"
	matchingsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/matching"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/dto"
)

func TestWriteMatchingErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: matchingsvc.ErrValidation, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "self action", err: matchingsvc.ErrSelfAction, wantStatus: http.StatusBadRequest, wantCode: "SELF_ACTION"},
		{name: "unsupported action", err: matchingsvc.ErrUnsupportedAction, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "not found", err: matchingsvc.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "MATCH_NOT_FOUND"},
		{name: "forbidden", err: matchingsvc.ErrForbidden, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "invalid transition", err: matchingsvc.ErrInvalidTransition, wantStatus: http.StatusConflict, wantCode: "INVALID_TRANSITION"},
		{name: "super like limit", err: matchingsvc.ErrSuperLikeLimit, wantStatus: http.StatusTooManyRequests, wantCode: "SUPER_LIKE_LIMIT_REACHED"},
		{name: "nothing to rewind", err: matchingsvc.ErrNoActionsToRewind, wantStatus: http.StatusNotFound, wantCode: "NOTHING_TO_REWIND"},
		{name: "rewind expired", err: matchingsvc.ErrRewindExpired, wantStatus: http.StatusConflict, wantCode: "REWIND_EXPIRED"},
		{name: "rewind forbidden", err: matchingsvc.ErrRewindForbidden, wantStatus: http.StatusConflict, wantCode: "REWIND_FORBIDDEN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeMatchingError(rr, tc.err)

			if rr.Code != tc.wantStatus {
				t.Fatalf("unexpected status: got %d want %d", rr.Code, tc.wantStatus)
			}

			var payload struct {
				Code string `json:"code"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if payload.Code != tc.wantCode {
				t.Fatalf("unexpected code: got %s want %s", payload.Code, tc.wantCode)
			}
		})
	}
}

func TestWriteMatchingErrorTooFastCarriesRetryAfter(t *testing.T) {
	rr := httptest.NewRecorder()
	writeMatchingError(rr, matchingsvc.TooFastError{RetryAfterSec: 17})

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var payload struct {
		Code          string `json:"code"`
		RetryAfterSec int64  `json:"retry_after_sec"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "TOO_FAST" || payload.RetryAfterSec != 17 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestMapMatchUsesViewerPerspective(t *testing.T) {
	expires := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	m := model.Match{
		ID:         3,
		UserAID:    1,
		UserBID:    2,
		Status:     enums.MatchStatusMatched,
		MatchType:  enums.ActionSuperLike,
		MatchScore: 71,
		ExpiresAt:  &expires,
	}

	fromA := mapMatch(m, 1)
	if fromA.OtherUserID != 2 {
		t.Fatalf("viewer A must see user 2, got %d", fromA.OtherUserID)
	}

	fromB := mapMatch(m, 2)
	if fromB.OtherUserID != 1 {
		t.Fatalf("viewer B must see user 1, got %d", fromB.OtherUserID)
	}

	if fromA.Status != "matched" || fromA.MatchType != "super_like" || fromA.Score != 71 {
		t.Fatalf("unexpected payload: %+v", fromA)
	}
	if fromA.ExpiresAt == nil || !fromA.ExpiresAt.Equal(expires) {
		t.Fatalf("expiry not mapped")
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/actions", strings.NewReader(`{"target_id":2,"action":"like","bogus":true}`))

	var payload dto.ActionRequest
	if err := decodeJSON(req, &payload); err == nil {
		t.Fatalf("unknown fields must be rejected")
	}
}

func TestTimezoneFromRequestPrefersHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/discover?tz=Europe/Paris", nil)
	req.Header.Set("X-Timezone", "Europe/Berlin")

	if got := timezoneFromRequest(req); got != "Europe/Berlin" {
		t.Fatalf("header must win: %s", got)
	}

	req.Header.Del("X-Timezone")
	if got := timezoneFromRequest(req); got != "Europe/Paris" {
		t.Fatalf("query fallback lost: %s", got)
	}
}
