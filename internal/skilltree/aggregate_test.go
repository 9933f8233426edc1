package skilltree

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/skilltrace/skilltrace-backend/internal/types"
)

// Root R with branch B1 (two leaves at level 3) and branch B2 (one leaf at
// level 5): B1 resolves to 3, B2 to 5, and the root tie resolves upward to 5.
func TestAggregateRoot_ThreeLevelTieBreaksHigh(t *testing.T) {
	r := uuid.New()
	b1 := uuid.New()
	b2 := uuid.New()
	l1 := uuid.New()
	l2 := uuid.New()
	l3 := uuid.New()
	ix := NewIndex([]types.SkillNode{
		row(r, nil, types.SkillDomainCognitive),
		row(b1, &r, types.SkillDomainCognitive),
		row(b2, &r, types.SkillDomainCognitive),
		row(l1, &b1, types.SkillDomainCognitive),
		row(l2, &b1, types.SkillDomainCognitive),
		row(l3, &b2, types.SkillDomainCognitive),
	})

	resolved, err := Resolve(ix, r, map[uuid.UUID]int{l1: 3, l2: 3, l3: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved[b1] != 3 {
		t.Fatalf("expected B1=3, got %d", resolved[b1])
	}
	if resolved[b2] != 5 {
		t.Fatalf("expected B2=5, got %d", resolved[b2])
	}
	if resolved[r] != 5 {
		t.Fatalf("expected root=5 (tie breaks high), got %d", resolved[r])
	}
}

func TestResolve_MajorityWinsOverHigherLevel(t *testing.T) {
	r := uuid.New()
	l1 := uuid.New()
	l2 := uuid.New()
	l3 := uuid.New()
	ix := NewIndex([]types.SkillNode{
		row(r, nil, types.SkillDomainCognitive),
		row(l1, &r, types.SkillDomainCognitive),
		row(l2, &r, types.SkillDomainCognitive),
		row(l3, &r, types.SkillDomainCognitive),
	})

	resolved, err := Resolve(ix, r, map[uuid.UUID]int{l1: 2, l2: 2, l3: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved[r] != 2 {
		t.Fatalf("expected root=2 (mode, not max), got %d", resolved[r])
	}
}

// A branch with no observed descendants must vanish from its parent's input,
// not drag the parent down as a zero.
func TestResolve_UnobservedBranchIsOmitted(t *testing.T) {
	r := uuid.New()
	b1 := uuid.New()
	b2 := uuid.New()
	l1 := uuid.New()
	l2 := uuid.New()
	ix := NewIndex([]types.SkillNode{
		row(r, nil, types.SkillDomainCognitive),
		row(b1, &r, types.SkillDomainCognitive),
		row(b2, &r, types.SkillDomainCognitive),
		row(l1, &b1, types.SkillDomainCognitive),
		row(l2, &b2, types.SkillDomainCognitive),
	})

	resolved, err := Resolve(ix, r, map[uuid.UUID]int{l1: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := resolved[b2]; ok {
		t.Fatalf("expected unobserved branch to be absent, got level %d", resolved[b2])
	}
	if resolved[r] != 4 {
		t.Fatalf("expected root=4, got %d", resolved[r])
	}
}

func TestAggregateRoot_NoObservationsYieldsNoResult(t *testing.T) {
	r := uuid.New()
	l1 := uuid.New()
	ix := NewIndex([]types.SkillNode{
		row(r, nil, types.SkillDomainCognitive),
		row(l1, &r, types.SkillDomainCognitive),
	})

	_, ok, err := AggregateRoot(ix, r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false with no observations")
	}
}

func TestAggregateRoot_ChildlessRootUsesOwnObservation(t *testing.T) {
	r := uuid.New()
	ix := NewIndex([]types.SkillNode{row(r, nil, types.SkillDomainCognitive)})

	lvl, ok, err := AggregateRoot(ix, r, map[uuid.UUID]int{r: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || lvl != 4 {
		t.Fatalf("expected (4, true), got (%d, %v)", lvl, ok)
	}
}

func TestResolve_DeepChainDoesNotRecurse(t *testing.T) {
	const depth = 20000
	rows := make([]types.SkillNode, 0, depth)
	ids := make([]uuid.UUID, depth)
	for i := range ids {
		ids[i] = uuid.New()
	}
	rows = append(rows, row(ids[0], nil, types.SkillDomainCognitive))
	for i := 1; i < depth; i++ {
		rows = append(rows, row(ids[i], &ids[i-1], types.SkillDomainCognitive))
	}
	ix := NewIndex(rows)

	lvl, ok, err := AggregateRoot(ix, ids[0], map[uuid.UUID]int{ids[depth-1]: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || lvl != 3 {
		t.Fatalf("expected (3, true), got (%d, %v)", lvl, ok)
	}
}

func TestResolve_CycleFailsDefensively(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	ix := NewIndex([]types.SkillNode{
		row(a, &b, types.SkillDomainCognitive),
		row(b, &a, types.SkillDomainCognitive),
	})

	if _, err := Resolve(ix, a, nil); !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestModeOf_TieBreaksToHighest(t *testing.T) {
	if got := modeOf([]int{3, 5}); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := modeOf([]int{1, 1, 4}); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := modeOf([]int{2, 2, 4, 4, 3}); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}
