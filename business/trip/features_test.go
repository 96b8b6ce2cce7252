package trip

import (
	"math"
	"testing"

	"ecoVoyage/domain"
)

func TestBuildFeatureMatrixScalesPerColumn(t *testing.T) {
	dests := []domain.Destination{
		{
			ID:                       1,
			CarbonFootprintScore:     2,
			WaterConsumptionScore:    0,
			WasteManagementScore:     5,
			BiodiversityImpactScore:  5,
			LocalEconomySupportScore: 5,
		},
		{
			ID:                       2,
			CarbonFootprintScore:     8,
			WaterConsumptionScore:    10,
			WasteManagementScore:     5,
			BiodiversityImpactScore:  5,
			LocalEconomySupportScore: 5,
		},
		{
			ID:                       3,
			CarbonFootprintScore:     5,
			WaterConsumptionScore:    5,
			WasteManagementScore:     5,
			BiodiversityImpactScore:  5,
			LocalEconomySupportScore: 5,
		},
	}

	m := BuildFeatureMatrix(dests)

	if len(m) != 3 || len(m[0]) != 6 {
		t.Fatalf("matrix shape %dx%d, want 3x6", len(m), len(m[0]))
	}

	// carbon column spans 2..8
	wantCarbon := []float64{0, 1, 0.5}
	for i, w := range wantCarbon {
		if math.Abs(m[i][0]-w) > 1e-12 {
			t.Fatalf("carbon[%d] = %g, want %g", i, m[i][0], w)
		}
	}

	// waste, biodiversity and local economy are constant columns
	for i := range m {
		for _, j := range []int{2, 3, 4} {
			if m[i][j] != 0 {
				t.Fatalf("constant column %d row %d = %g, want 0", j, i, m[i][j])
			}
		}
	}

	// the derived overall column also lands in [0,1]
	for i := range m {
		if m[i][5] < 0 || m[i][5] > 1 {
			t.Fatalf("overall[%d] = %g outside [0,1]", i, m[i][5])
		}
	}
}

func TestBuildFeatureMatrixEmpty(t *testing.T) {
	if m := BuildFeatureMatrix(nil); m != nil {
		t.Fatalf("expected nil for no destinations, got %v", m)
	}
}
