package postgres

import (
	"strings"
	"testing"
)

// The feed exclusion must fire on the bare canonical pair. Narrowing it with
// status or last-action conditions once leaked candidates who already shared
// a pending row with the viewer.
func TestListCandidatesQueryExcludesAnyPairRow(t *testing.T) {
	if !strings.Contains(listCandidatesQuery, "NOT EXISTS") {
		t.Fatalf("pair exclusion subquery missing")
	}
	for _, fragment := range []string{"m.user_a_id = LEAST($1, u.id)", "m.user_b_id = GREATEST($1, u.id)"} {
		if !strings.Contains(listCandidatesQuery, fragment) {
			t.Fatalf("canonical pair condition missing: %s", fragment)
		}
	}
	for _, fragment := range []string{"m.status", "m.last_action_a", "m.last_action_b"} {
		if strings.Contains(listCandidatesQuery, fragment) {
			t.Fatalf("pair exclusion must not be narrowed by %s", fragment)
		}
	}
}
