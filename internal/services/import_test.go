package services

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/skilltrace/skilltrace-backend/internal/types"
)

func TestObservationConverged(t *testing.T) {
	existing := &types.LeafObservation{GainedLevel: 4, Passed: true}

	if !ObservationConverged(existing, 4, true) {
		t.Fatalf("identical row must converge (skip, no writes)")
	}
	if ObservationConverged(existing, 3, true) {
		t.Fatalf("changed level must not converge")
	}
	if ObservationConverged(existing, 4, false) {
		t.Fatalf("changed passed flag must not converge")
	}
	if ObservationConverged(nil, 4, true) {
		t.Fatalf("missing observation must not converge")
	}
}

func TestValidLevel(t *testing.T) {
	for _, lvl := range []int{1, 2, 3, 4, 5} {
		if !ValidLevel(lvl) {
			t.Fatalf("level %d should be valid", lvl)
		}
	}
	for _, lvl := range []int{0, -1, 6, 100} {
		if ValidLevel(lvl) {
			t.Fatalf("level %d should be invalid", lvl)
		}
	}
}

func TestPassed(t *testing.T) {
	if !Passed(3, 3) {
		t.Fatalf("gained == expected must pass")
	}
	if !Passed(5, 3) {
		t.Fatalf("gained > expected must pass")
	}
	if Passed(2, 3) {
		t.Fatalf("gained < expected must not pass")
	}
}

func TestLevelBreakdown_CountsPerLevel(t *testing.T) {
	breakdown := levelBreakdown(map[uuid.UUID]int{
		uuid.New(): 3,
		uuid.New(): 3,
		uuid.New(): 5,
	})
	var counts map[string]int
	if err := json.Unmarshal(breakdown, &counts); err != nil {
		t.Fatalf("breakdown is not valid json: %v", err)
	}
	if counts["3"] != 2 || counts["5"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if len(counts) != 2 {
		t.Fatalf("expected exactly the observed levels, got %v", counts)
	}
}
