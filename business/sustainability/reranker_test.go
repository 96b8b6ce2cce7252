package sustainability

import (
	"errors"
	"testing"

	"ecoVoyage/domain"
)

// five candidates in relevance order with overall scores 9, 2, 5, 8, 3
func rankedCandidates() []domain.Candidate {
	scores := []float64{9, 2, 5, 8, 3}

	out := make([]domain.Candidate, len(scores))
	for i, s := range scores {
		out[i] = domain.Candidate{
			DestinationID:       uint64(i + 1),
			SustainabilityScore: s,
			Score:               float64(len(scores)-i) / float64(len(scores)),
		}
	}
	return out
}

func orderOf(cands []domain.Candidate) []uint64 {
	out := make([]uint64, len(cands))
	for i, c := range cands {
		out[i] = c.DestinationID
	}
	return out
}

func TestRerankWeightZeroKeepsOrder(t *testing.T) {
	for _, scheme := range SchemeNames() {
		r, err := NewReranker(0, scheme, SchemeParams{})
		if err != nil {
			t.Fatalf("NewReranker(%s): %v", scheme, err)
		}

		got := orderOf(r.Rerank(rankedCandidates()))
		want := []uint64{1, 2, 3, 4, 5}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("scheme %s with weight 0 reordered to %v", scheme, got)
			}
		}
	}
}

func TestRerankFullWeightSortsBySustainability(t *testing.T) {
	r, err := NewReranker(1, SchemeLinear, SchemeParams{})
	if err != nil {
		t.Fatalf("NewReranker: %v", err)
	}

	got := orderOf(r.Rerank(rankedCandidates()))
	want := []uint64{1, 4, 3, 5, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("full weight order = %v, want %v", got, want)
		}
	}
}

func TestRerankBlendsPositionAndSustainability(t *testing.T) {
	r, err := NewReranker(0.7, SchemeLinear, SchemeParams{})
	if err != nil {
		t.Fatalf("NewReranker: %v", err)
	}

	// blended scores: 1 -> .93, 2 -> .38, 3 -> .53, 4 -> .68, 5 -> .27
	got := orderOf(r.Rerank(rankedCandidates()))
	want := []uint64{1, 4, 3, 2, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("blended order = %v, want %v", got, want)
		}
	}
}

func TestRerankRoundTripAfterWeightReset(t *testing.T) {
	r, err := NewReranker(0.3, SchemeLinear, SchemeParams{})
	if err != nil {
		t.Fatalf("NewReranker: %v", err)
	}

	before := orderOf(r.Rerank(rankedCandidates()))

	if err := r.SetWeight(0.9); err != nil {
		t.Fatalf("SetWeight(0.9): %v", err)
	}
	r.Rerank(rankedCandidates())

	if err := r.SetWeight(0.3); err != nil {
		t.Fatalf("SetWeight(0.3): %v", err)
	}
	after := orderOf(r.Rerank(rankedCandidates()))

	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("order changed after weight round trip: %v vs %v", before, after)
		}
	}
}

func TestRerankSingleCandidate(t *testing.T) {
	r, err := NewReranker(0.5, SchemeLinear, SchemeParams{})
	if err != nil {
		t.Fatalf("NewReranker: %v", err)
	}

	out := r.Rerank([]domain.Candidate{{DestinationID: 7, SustainabilityScore: 4}})
	if len(out) != 1 || out[0].DestinationID != 7 {
		t.Fatalf("unexpected result %v", out)
	}
}

func TestRerankEmptyInput(t *testing.T) {
	r, err := NewReranker(0.5, SchemeLinear, SchemeParams{})
	if err != nil {
		t.Fatalf("NewReranker: %v", err)
	}

	if out := r.Rerank(nil); out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", out)
	}
}

func TestRerankStableOnTies(t *testing.T) {
	r, err := NewReranker(1, SchemeLinear, SchemeParams{})
	if err != nil {
		t.Fatalf("NewReranker: %v", err)
	}

	// identical sustainability everywhere; stable sort keeps input order
	cands := []domain.Candidate{
		{DestinationID: 3, SustainabilityScore: 6},
		{DestinationID: 1, SustainabilityScore: 6},
		{DestinationID: 2, SustainabilityScore: 6},
	}

	got := orderOf(r.Rerank(cands))
	want := []uint64{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie order = %v, want %v", got, want)
		}
	}
}

func TestSetWeightValidation(t *testing.T) {
	r, err := NewReranker(0.3, SchemeLinear, SchemeParams{})
	if err != nil {
		t.Fatalf("NewReranker: %v", err)
	}

	var invalid domain.InvalidWeightError
	if err := r.SetWeight(1.5); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidWeightError, got %v", err)
	}
	if err := r.SetWeight(-0.1); err == nil {
		t.Fatal("expected error for negative weight")
	}

	// the stored weight is untouched after a failed set
	if r.Weight() != 0.3 {
		t.Fatalf("weight changed to %g after rejected set", r.Weight())
	}

	if err := r.SetWeight(0.9); err != nil {
		t.Fatalf("SetWeight(0.9): %v", err)
	}
	if r.Weight() != 0.9 {
		t.Fatalf("weight = %g, want 0.9", r.Weight())
	}
}

func TestSetSchemeValidation(t *testing.T) {
	r, err := NewReranker(0.3, SchemeLinear, SchemeParams{})
	if err != nil {
		t.Fatalf("NewReranker: %v", err)
	}

	if err := r.SetScheme("cubic", SchemeParams{}); err == nil {
		t.Fatal("expected error for unknown scheme")
	}
	if r.SchemeName() != SchemeLinear {
		t.Fatalf("scheme changed to %q after rejected set", r.SchemeName())
	}

	if err := r.SetScheme(SchemeSigmoid, SchemeParams{}); err != nil {
		t.Fatalf("SetScheme(sigmoid): %v", err)
	}
	if r.SchemeName() != SchemeSigmoid {
		t.Fatalf("scheme = %q, want sigmoid", r.SchemeName())
	}
}
