package evaluation

import (
	"math"
	"math/rand"
	"testing"

	"ecoVoyage/business/recommender"
	"ecoVoyage/domain"
)

const tolerance = 1e-9

func TestPrecisionAtK(t *testing.T) {
	truth := []float64{0, 1, 0, 1}
	scores := []float64{0.9, 0.8, 0.7, 0.6}

	if got := PrecisionAtK(truth, scores, 2); math.Abs(got-0.5) > tolerance {
		t.Fatalf("precision@2 = %g, want 0.5", got)
	}
	if got := PrecisionAtK(truth, scores, 4); math.Abs(got-0.5) > tolerance {
		t.Fatalf("precision@4 = %g, want 0.5", got)
	}
	if got := PrecisionAtK(truth, scores, 0); got != 0 {
		t.Fatalf("precision@0 = %g, want 0", got)
	}
	if got := PrecisionAtK(nil, nil, 5); got != 0 {
		t.Fatalf("precision on empty truth = %g, want 0", got)
	}
}

func TestRecallAtK(t *testing.T) {
	truth := []float64{0, 1, 0, 1}
	scores := []float64{0.9, 0.8, 0.7, 0.6}

	if got := RecallAtK(truth, scores, 2); math.Abs(got-0.5) > tolerance {
		t.Fatalf("recall@2 = %g, want 0.5", got)
	}
	if got := RecallAtK(truth, scores, 4); math.Abs(got-1) > tolerance {
		t.Fatalf("recall@4 = %g, want 1", got)
	}
	if got := RecallAtK([]float64{0, 0}, []float64{1, 2}, 2); got != 0 {
		t.Fatalf("recall with no positives = %g, want 0", got)
	}
}

func TestNDCGAtK(t *testing.T) {
	truth := []float64{0, 1, 0, 1}
	scores := []float64{0.9, 0.8, 0.7, 0.6}

	// one hit at position 2; ideal puts two hits at positions 1 and 2
	dcg := 1 / math.Log2(3)
	idcg := 1/math.Log2(2) + 1/math.Log2(3)
	want := dcg / idcg

	if got := NDCGAtK(truth, scores, 2); math.Abs(got-want) > tolerance {
		t.Fatalf("ndcg@2 = %g, want %g", got, want)
	}

	perfect := NDCGAtK([]float64{1, 1, 0, 0}, []float64{0.9, 0.8, 0.1, 0.2}, 2)
	if math.Abs(perfect-1) > tolerance {
		t.Fatalf("perfect ndcg = %g, want 1", perfect)
	}

	if got := NDCGAtK([]float64{0, 0}, []float64{1, 2}, 2); got != 0 {
		t.Fatalf("ndcg with no positives = %g, want 0", got)
	}
}

func TestListMetrics(t *testing.T) {
	cands := []domain.Candidate{
		{DestinationID: 1, Country: "Norway", SustainabilityScore: 8},
		{DestinationID: 2, Country: "Norway", SustainabilityScore: 6},
		{DestinationID: 3, Country: "Peru", SustainabilityScore: 4},
	}

	if got := MeanSustainability(cands); math.Abs(got-6) > tolerance {
		t.Fatalf("mean sustainability = %g, want 6", got)
	}
	if got := CountryDiversity(cands); math.Abs(got-2.0/3.0) > tolerance {
		t.Fatalf("country diversity = %g, want 2/3", got)
	}

	if MeanSustainability(nil) != 0 || CountryDiversity(nil) != 0 {
		t.Fatal("empty list metrics should be 0")
	}
}

func evalDataset(t *testing.T) *recommender.Dataset {
	t.Helper()

	users := []domain.User{{ID: 1}, {ID: 2}, {ID: 3}}

	dests := make([]domain.Destination, 8)
	for i := range dests {
		dests[i] = domain.Destination{
			ID:                       uint64(201 + i),
			Country:                  "Norway",
			CarbonFootprintScore:     5,
			WaterConsumptionScore:    5,
			WasteManagementScore:     5,
			BiodiversityImpactScore:  5,
			LocalEconomySupportScore: 5,
		}
	}

	matrix := [][]float64{
		{1, 1, 1, 1, 1, 1, 0, 0},
		{1, 1, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}

	ds, err := recommender.NewDataset(users, dests, matrix, nil)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	return ds
}

func TestEvaluateRecommenderHoldout(t *testing.T) {
	ds := evalDataset(t)

	rec := recommender.NewPopularity()
	if err := rec.Fit(ds); err != nil {
		t.Fatalf("fit: %v", err)
	}

	rng := rand.New(rand.NewSource(1))

	m, err := EvaluateRecommender(rec, ds, []uint{1, 2, 3}, 5, rng)
	if err != nil {
		t.Fatalf("EvaluateRecommender: %v", err)
	}

	// only user 1 clears the minimum positive count
	if m.UsersEvaluated != 1 {
		t.Fatalf("users evaluated = %d, want 1", m.UsersEvaluated)
	}
	if m.Model != recommender.NamePopularity || m.K != 5 {
		t.Fatalf("unexpected header fields: %+v", m)
	}

	for name, v := range map[string]float64{
		"precision": m.PrecisionAtK,
		"recall":    m.RecallAtK,
		"ndcg":      m.NDCGAtK,
	} {
		if v < 0 || v > 1 {
			t.Fatalf("%s = %g outside [0,1]", name, v)
		}
	}

	// uniform sub-metrics, so any list averages to 5
	if math.Abs(m.MeanSustainability-5) > tolerance {
		t.Fatalf("mean sustainability = %g, want 5", m.MeanSustainability)
	}

	// the mask must be fully restored
	row := ds.InteractionRow(0)
	for i := 0; i < 6; i++ {
		if row[i] != 1 {
			t.Fatalf("cell %d not restored: %v", i, row)
		}
	}
}

func TestCompareRecommenders(t *testing.T) {
	ds := evalDataset(t)

	pop := recommender.NewPopularity()
	item := recommender.NewItemCF()
	for _, rec := range []recommender.Recommender{pop, item} {
		if err := rec.Fit(ds); err != nil {
			t.Fatalf("fit %s: %v", rec.Name(), err)
		}
	}

	rng := rand.New(rand.NewSource(7))

	results, err := CompareRecommenders([]recommender.Recommender{pop, item}, ds, []uint{1, 2, 3}, 5, rng)
	if err != nil {
		t.Fatalf("CompareRecommenders: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Model != recommender.NamePopularity || results[1].Model != recommender.NameItemCF {
		t.Fatalf("model order = %s, %s", results[0].Model, results[1].Model)
	}
}

func TestTopKIndicesDeterministicTies(t *testing.T) {
	idxs := topKIndices([]float64{1, 3, 3, 2}, 3)
	want := []int{1, 2, 3}
	for i := range want {
		if idxs[i] != want[i] {
			t.Fatalf("topKIndices = %v, want %v", idxs, want)
		}
	}
}
