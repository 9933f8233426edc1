package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/skilltrace/skilltrace-backend/internal/types"
)

// One observation under target drags the student to "below" no matter how
// strong the other observations are.
func TestClassifyStudents_WorstCaseWins(t *testing.T) {
	student := uuid.New()
	o1 := uuid.New()
	o2 := uuid.New()
	expected := map[uuid.UUID]int{o1: 3, o2: 3}

	got := ClassifyStudents([]types.LeafObservation{
		{StudentID: student, OutcomeID: o1, GainedLevel: 2},
		{StudentID: student, OutcomeID: o2, GainedLevel: 4},
	}, expected)

	if got[student] != CategoryBelow {
		t.Fatalf("expected below, got %q", got[student])
	}
}

func TestClassifyStudents_OnBeatsAbove(t *testing.T) {
	student := uuid.New()
	o1 := uuid.New()
	o2 := uuid.New()
	expected := map[uuid.UUID]int{o1: 3, o2: 2}

	got := ClassifyStudents([]types.LeafObservation{
		{StudentID: student, OutcomeID: o1, GainedLevel: 3},
		{StudentID: student, OutcomeID: o2, GainedLevel: 5},
	}, expected)

	if got[student] != CategoryOn {
		t.Fatalf("expected on, got %q", got[student])
	}
}

func TestClassifyStudents_AllAboveIsAbove(t *testing.T) {
	student := uuid.New()
	o1 := uuid.New()
	expected := map[uuid.UUID]int{o1: 2}

	got := ClassifyStudents([]types.LeafObservation{
		{StudentID: student, OutcomeID: o1, GainedLevel: 4},
	}, expected)

	if got[student] != CategoryAbove {
		t.Fatalf("expected above, got %q", got[student])
	}
}

func TestClassifyStudents_NoObservationsNoCategory(t *testing.T) {
	got := ClassifyStudents(nil, map[uuid.UUID]int{uuid.New(): 3})
	if len(got) != 0 {
		t.Fatalf("expected empty classification, got %v", got)
	}
}

func TestClassifyStudents_IgnoresUnknownOutcomes(t *testing.T) {
	student := uuid.New()
	got := ClassifyStudents([]types.LeafObservation{
		{StudentID: student, OutcomeID: uuid.New(), GainedLevel: 1},
	}, map[uuid.UUID]int{})
	if len(got) != 0 {
		t.Fatalf("observations without a matching outcome must be ignored, got %v", got)
	}
}

func TestClassifyStudents_IndependentStudents(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()
	o1 := uuid.New()
	expected := map[uuid.UUID]int{o1: 3}

	got := ClassifyStudents([]types.LeafObservation{
		{StudentID: s1, OutcomeID: o1, GainedLevel: 2},
		{StudentID: s2, OutcomeID: o1, GainedLevel: 5},
	}, expected)

	if got[s1] != CategoryBelow || got[s2] != CategoryAbove {
		t.Fatalf("unexpected classification: %v", got)
	}
}

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"below": CategoryBelow,
		"On":    CategoryOn,
		"ABOVE": CategoryAbove,
		"all":   CategoryAll,
		"":      CategoryAll,
	}
	for raw, want := range cases {
		got, ok := ParseCategory(raw)
		if !ok || got != want {
			t.Fatalf("ParseCategory(%q) = (%q, %v), want %q", raw, got, ok, want)
		}
	}
	if _, ok := ParseCategory("sideways"); ok {
		t.Fatalf("expected unknown category to be rejected")
	}
}
