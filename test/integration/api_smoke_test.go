package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/app/apiapp"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/config"
)

func newTestApp(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.HTTP.Addr = ":0"

	app, err := apiapp.New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	ts := httptest.NewServer(app.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestApp(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "ok" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	ts := newTestApp(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/v1/actions"},
		{http.MethodPost, "/v1/rewind"},
		{http.MethodGet, "/v1/discover"},
		{http.MethodGet, "/v1/matches"},
		{http.MethodPost, "/v1/unmatch"},
		{http.MethodPost, "/v1/block"},
		{http.MethodPost, "/v1/report"},
	}

	for _, tc := range cases {
		req, err := http.NewRequest(tc.method, ts.URL+tc.path, strings.NewReader("{}"))
		if err != nil {
			t.Fatalf("build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", tc.method, tc.path, err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: got %d want %d", tc.method, tc.path, resp.StatusCode, http.StatusUnauthorized)
		}
	}
}

func TestInternalHookRefusesWithoutConfiguredSecret(t *testing.T) {
	ts := newTestApp(t)

	resp, err := http.Post(ts.URL+"/internal/matches/1/messages", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("post internal hook: %v", err)
	}
	resp.Body.Close()

	// The default config ships without a gateway secret, so the internal
	// surface refuses to serve at all.
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusInternalServerError)
	}
}
