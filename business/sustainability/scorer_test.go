package sustainability

import (
	"math"
	"testing"

	"ecoVoyage/domain"
)

func TestOverallScoreWeightedSum(t *testing.T) {
	d := domain.Destination{
		CarbonFootprintScore:     8,
		WaterConsumptionScore:    6,
		WasteManagementScore:     4,
		BiodiversityImpactScore:  10,
		LocalEconomySupportScore: 2,
	}

	want := 0.25*8 + 0.20*6 + 0.20*4 + 0.20*10 + 0.15*2
	if got := OverallScore(d); math.Abs(got-want) > 1e-12 {
		t.Fatalf("OverallScore = %g, want %g", got, want)
	}
}

func TestOverallScorePreservesScale(t *testing.T) {
	uniform := domain.Destination{
		CarbonFootprintScore:     7,
		WaterConsumptionScore:    7,
		WasteManagementScore:     7,
		BiodiversityImpactScore:  7,
		LocalEconomySupportScore: 7,
	}

	// the weights sum to 1, so uniform sub-metrics map to themselves
	if got := OverallScore(uniform); math.Abs(got-7) > 1e-12 {
		t.Fatalf("OverallScore = %g, want 7", got)
	}

	if got := NormalizedScore(uniform); math.Abs(got-0.7) > 1e-12 {
		t.Fatalf("NormalizedScore = %g, want 0.7", got)
	}
}

func TestBreakdownIncludesDerivedOverall(t *testing.T) {
	d := domain.Destination{
		CarbonFootprintScore:     3,
		WaterConsumptionScore:    5,
		WasteManagementScore:     5,
		BiodiversityImpactScore:  5,
		LocalEconomySupportScore: 5,
	}

	b := Breakdown(d)
	if b["carbon_footprint_score"] != 3 {
		t.Fatalf("carbon = %g, want 3", b["carbon_footprint_score"])
	}
	if math.Abs(b["overall_sustainability_score"]-OverallScore(d)) > 1e-12 {
		t.Fatalf("overall = %g, want %g", b["overall_sustainability_score"], OverallScore(d))
	}
	if len(b) != 6 {
		t.Fatalf("breakdown has %d entries, want 6", len(b))
	}
}

func TestFilterByThreshold(t *testing.T) {
	cands := []domain.Candidate{
		{DestinationID: 1, SustainabilityScore: 9},
		{DestinationID: 2, SustainabilityScore: 5},
		{DestinationID: 3, SustainabilityScore: 7},
	}

	kept := FilterByThreshold(cands, 7)
	if len(kept) != 2 || kept[0].DestinationID != 1 || kept[1].DestinationID != 3 {
		t.Fatalf("unexpected filter result %v", kept)
	}
}
