package handlers

import (
	"testing"

	"github.com/skilltrace/skilltrace-backend/internal/types"
)

func TestParseDomains_EmptyMeansAll(t *testing.T) {
	domains, ok := parseDomains("")
	if !ok {
		t.Fatalf("expected ok for empty input")
	}
	if domains != nil {
		t.Fatalf("expected nil domain filter, got %v", domains)
	}
}

func TestParseDomains_SingleDomain(t *testing.T) {
	domains, ok := parseDomains(" Cognitive ")
	if !ok {
		t.Fatalf("expected ok")
	}
	if len(domains) != 1 || domains[0] != types.SkillDomainCognitive {
		t.Fatalf("got %v", domains)
	}
}

func TestParseDomains_SpecificExpands(t *testing.T) {
	domains, ok := parseDomains("specific")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := []types.SkillDomain{types.SkillDomainCognitive, types.SkillDomainPsychomotor}
	if len(domains) != len(want) {
		t.Fatalf("got %v, want %v", domains, want)
	}
	for i := range want {
		if domains[i] != want[i] {
			t.Fatalf("got %v, want %v", domains, want)
		}
	}
}

func TestParseDomains_SoftExpands(t *testing.T) {
	domains, ok := parseDomains("soft")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := []types.SkillDomain{types.SkillDomainAffective, types.SkillDomainEthics}
	if len(domains) != len(want) {
		t.Fatalf("got %v, want %v", domains, want)
	}
	for i := range want {
		if domains[i] != want[i] {
			t.Fatalf("got %v, want %v", domains, want)
		}
	}
}

func TestParseDomains_CommaList(t *testing.T) {
	domains, ok := parseDomains("ethics,affective")
	if !ok {
		t.Fatalf("expected ok")
	}
	if len(domains) != 2 || domains[0] != types.SkillDomainEthics || domains[1] != types.SkillDomainAffective {
		t.Fatalf("got %v", domains)
	}
}

func TestParseDomains_RejectsUnknown(t *testing.T) {
	if _, ok := parseDomains("telepathy"); ok {
		t.Fatalf("expected rejection of unknown domain")
	}
}
