package recommender

import (
	"errors"
	"math"
	"sort"
	"testing"

	"ecoVoyage/domain"
)

func TestEnsembleWeightsSumToOne(t *testing.T) {
	e := NewEnsemble()
	e.AddRecommender(NewPopularity(), 1)
	e.AddRecommender(NewUserCF(), 1)
	e.AddRecommender(NewItemCF(), 2)

	weights := e.Weights()
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if math.Abs(total-1) > 1e-12 {
		t.Fatalf("weights sum to %g, want 1", total)
	}

	// normalization runs after every add, so earlier weights are already
	// normalized when a later member joins
	want := []float64{1.0 / 6, 1.0 / 6, 2.0 / 3}
	for i, w := range weights {
		if math.Abs(w-want[i]) > 1e-12 {
			t.Fatalf("weight %d = %g, want %g", i, w, want[i])
		}
	}
}

func TestEnsembleEmptyIsAnError(t *testing.T) {
	e := NewEnsemble()

	var noRecs domain.NoRecommendersConfiguredError
	if _, err := e.Recommend(1, 5, true); !errors.As(err, &noRecs) {
		t.Fatalf("expected NoRecommendersConfiguredError, got %v", err)
	}
}

func TestEnsembleFusesAndDeduplicates(t *testing.T) {
	ds := mustDataset(t)

	e := NewEnsemble()
	e.AddRecommender(NewPopularity(), 1)
	e.AddRecommender(NewUserCF(), 1)
	if err := e.Fit(ds); err != nil {
		t.Fatalf("fit: %v", err)
	}

	cands, err := e.Recommend(3, 4, true)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	seen := make(map[uint64]bool)
	for _, c := range cands {
		if seen[c.DestinationID] {
			t.Fatalf("destination %d appears twice", c.DestinationID)
		}
		seen[c.DestinationID] = true
	}

	// both members rank every destination for user 3, so every fused
	// candidate carries both sources
	for _, c := range cands {
		sources := append([]string(nil), c.Sources...)
		sort.Strings(sources)
		if len(sources) != 2 || sources[0] != NamePopularity || sources[1] != NameUserCF {
			t.Fatalf("candidate %d sources = %v, want popularity and user_cf", c.DestinationID, c.Sources)
		}
	}
}

func TestEnsemblePositionalScores(t *testing.T) {
	ds := mustDataset(t)

	e := NewEnsemble()
	e.AddRecommender(NewPopularity(), 1)
	if err := e.Fit(ds); err != nil {
		t.Fatalf("fit: %v", err)
	}

	cands, err := e.Recommend(3, 4, true)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(cands) != 4 {
		t.Fatalf("got %d candidates, want 4", len(cands))
	}

	// single member with weight 1: position j of a length-4 list fuses
	// to (4-j)/4
	want := []float64{1.0, 0.75, 0.5, 0.25}
	for i, c := range cands {
		if math.Abs(c.Score-want[i]) > 1e-12 {
			t.Fatalf("fused score at %d = %g, want %g", i, c.Score, want[i])
		}
	}
}

func TestEnsembleRespectsLimitAndVisited(t *testing.T) {
	ds := mustDataset(t)

	e := NewEnsemble()
	e.AddRecommender(NewPopularity(), 1)
	e.AddRecommender(NewItemCF(), 1)
	if err := e.Fit(ds); err != nil {
		t.Fatalf("fit: %v", err)
	}

	cands, err := e.Recommend(1, 1, true)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}

	// user 1 visited 101 and 103
	if cands[0].DestinationID == 101 || cands[0].DestinationID == 103 {
		t.Fatalf("visited destination %d recommended", cands[0].DestinationID)
	}
}

func TestEnsembleSurfacesMemberErrors(t *testing.T) {
	e := NewEnsemble()
	e.AddRecommender(NewPopularity(), 1)

	// member never fitted
	if _, err := e.Recommend(1, 5, true); err == nil {
		t.Fatal("expected error from unfitted member")
	}
}
