package explain

import (
	"errors"
	"testing"

	"ecoVoyage/business/recommender"
	"ecoVoyage/business/sustainability"
	"ecoVoyage/domain"
)

// rankedPipeline chains a real ensemble and reranker, the same shape the
// service exposes to the engine.
type rankedPipeline struct {
	ensemble *recommender.Ensemble
	reranker *sustainability.Reranker
}

func (p rankedPipeline) RankedRecommend(userID uint, n int, excludeVisited bool) ([]domain.Candidate, error) {
	cands, err := p.ensemble.Recommend(userID, n, excludeVisited)
	if err != nil {
		return nil, err
	}
	return p.reranker.Rerank(cands), nil
}

// fixture: six destinations with uniform sub-metrics, one deterministic
// learned scorer, linear reranking at weight 0.3.
//
// baseline ranking for user 1: 101, 103, 106, 105, 102, 104
func newTestEngine(t *testing.T) (*Engine, *sustainability.Reranker, *recommender.Dataset) {
	t.Helper()

	mk := func(id uint64, name string, v float64) domain.Destination {
		return domain.Destination{
			ID:                       id,
			Name:                     name,
			CarbonFootprintScore:     v,
			WaterConsumptionScore:    v,
			WasteManagementScore:     v,
			BiodiversityImpactScore:  v,
			LocalEconomySupportScore: v,
		}
	}

	users := []domain.User{
		{ID: 1, FullName: "Ana", SustainabilityPreference: 6},
		{ID: 2, FullName: "Ben", SustainabilityPreference: 4},
	}
	dests := []domain.Destination{
		mk(101, "Fjordheim", 2),
		mk(102, "Verdia", 9),
		mk(103, "Altiplano", 5),
		mk(104, "Corallia", 8),
		mk(105, "Drylands", 3),
		mk(106, "Piniwood", 7),
	}
	matrix := [][]float64{
		{0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0},
	}

	ds, err := recommender.NewDataset(users, dests, matrix, nil)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}

	relevance := []float64{0.9, 0.5, 0.8, 0.4, 0.7, 0.6}
	learned := recommender.NewLearned(func(userIdx, destIdx int) float64 {
		return relevance[destIdx]
	})

	ensemble := recommender.NewEnsemble()
	ensemble.AddRecommender(learned, 1)
	if err := ensemble.Fit(ds); err != nil {
		t.Fatalf("fit: %v", err)
	}

	reranker, err := sustainability.NewReranker(0.3, sustainability.SchemeLinear, sustainability.SchemeParams{})
	if err != nil {
		t.Fatalf("NewReranker: %v", err)
	}

	engine := NewEngine(rankedPipeline{ensemble: ensemble, reranker: reranker}, reranker, ds)

	return engine, reranker, ds
}

func TestExplainWeightMovesSustainableTargetUp(t *testing.T) {
	engine, reranker, _ := newTestEngine(t)

	res, err := engine.ExplainWeight(1, 102, 1.0)
	if err != nil {
		t.Fatalf("ExplainWeight: %v", err)
	}

	if res.Factor != domain.FactorSustainabilityWeight {
		t.Fatalf("factor = %q", res.Factor)
	}
	if res.CurrentValue != 0.3 || res.TargetValue != 1.0 {
		t.Fatalf("values = %g -> %g, want 0.3 -> 1.0", res.CurrentValue, res.TargetValue)
	}
	if res.BaselineRank != 5 {
		t.Fatalf("baseline rank = %d, want 5", res.BaselineRank)
	}
	if res.PerturbedRank != 1 {
		t.Fatalf("perturbed rank = %d, want 1", res.PerturbedRank)
	}
	if res.RankDelta != 4 {
		t.Fatalf("rank delta = %d, want 4", res.RankDelta)
	}
	if res.DroppedOut {
		t.Fatal("target did not drop out")
	}

	if len(res.MovedUp) != 0 {
		t.Fatalf("moved up = %v, want none", res.MovedUp)
	}
	wantDown := []uint64{101, 103, 106, 105}
	if len(res.MovedDown) != len(wantDown) {
		t.Fatalf("moved down = %v, want ids %v", res.MovedDown, wantDown)
	}
	for i, s := range res.MovedDown {
		if s.DestinationID != wantDown[i] {
			t.Fatalf("moved down[%d] = %d, want %d", i, s.DestinationID, wantDown[i])
		}
	}

	// state restored after the simulation
	if reranker.Weight() != 0.3 {
		t.Fatalf("weight = %g after simulation, want 0.3", reranker.Weight())
	}
}

func TestExplainWeightNeverHelpsUnsustainableTarget(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	// 101 leads the baseline on relevance but has the worst
	// sustainability score; more weight can only hurt it
	res, err := engine.ExplainWeight(1, 101, 0.7)
	if err != nil {
		t.Fatalf("ExplainWeight: %v", err)
	}

	if res.BaselineRank != 1 {
		t.Fatalf("baseline rank = %d, want 1", res.BaselineRank)
	}
	if res.RankDelta > 0 {
		t.Fatalf("rank delta = %d, raising the weight improved an unsustainable target", res.RankDelta)
	}
	if res.PerturbedRank != 5 {
		t.Fatalf("perturbed rank = %d, want 5", res.PerturbedRank)
	}
}

func TestExplainWeightRejectsOutOfRange(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	var invalid domain.InvalidWeightError
	if _, err := engine.ExplainWeight(1, 102, 1.5); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidWeightError, got %v", err)
	}
}

func TestExplainDestinationFeature(t *testing.T) {
	engine, _, ds := newTestEngine(t)

	// dropping 106's carbon score lowers its overall from 7 to 5.25,
	// which lets 105 overtake it
	res, err := engine.ExplainDestinationFeature(1, 106, "carbon_footprint_score", 0)
	if err != nil {
		t.Fatalf("ExplainDestinationFeature: %v", err)
	}

	if res.Factor != domain.FactorDestinationFeature || res.Attribute != "carbon_footprint_score" {
		t.Fatalf("factor/attribute = %q/%q", res.Factor, res.Attribute)
	}
	if res.CurrentValue != 7 {
		t.Fatalf("current value = %g, want 7", res.CurrentValue)
	}
	if res.BaselineRank != 3 || res.PerturbedRank != 4 {
		t.Fatalf("ranks = %d -> %d, want 3 -> 4", res.BaselineRank, res.PerturbedRank)
	}
	if res.RankDelta != -1 {
		t.Fatalf("rank delta = %d, want -1", res.RankDelta)
	}
	if len(res.MovedUp) != 1 || res.MovedUp[0].DestinationID != 105 {
		t.Fatalf("moved up = %v, want [105]", res.MovedUp)
	}
	if len(res.MovedDown) != 0 {
		t.Fatalf("moved down = %v, want none", res.MovedDown)
	}

	// override restored
	d, err := ds.DestinationByID(106)
	if err != nil {
		t.Fatalf("DestinationByID: %v", err)
	}
	if d.CarbonFootprintScore != 7 {
		t.Fatalf("carbon score = %g after simulation, want 7", d.CarbonFootprintScore)
	}
}

func TestExplainUserFeatureLeavesRankingUntouched(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	// the ranking pipeline does not read the preference, so the rank is
	// stable; the simulation still reports the prior value faithfully
	res, err := engine.ExplainUserFeature(1, 101, "sustainability_preference", 10)
	if err != nil {
		t.Fatalf("ExplainUserFeature: %v", err)
	}

	if res.CurrentValue != 6 {
		t.Fatalf("current value = %g, want 6", res.CurrentValue)
	}
	if res.RankDelta != 0 || res.BaselineRank != res.PerturbedRank {
		t.Fatalf("ranks = %d -> %d, want unchanged", res.BaselineRank, res.PerturbedRank)
	}
	if len(res.MovedUp) != 0 || len(res.MovedDown) != 0 {
		t.Fatalf("unexpected crossings: up %v down %v", res.MovedUp, res.MovedDown)
	}
}

func TestExplainTargetOutsideWindow(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	// user 2 already visited 101, so it never appears in the baseline
	var notInWindow domain.TargetNotInWindowError
	_, err := engine.ExplainWeight(2, 101, 0.9)
	if !errors.As(err, &notInWindow) {
		t.Fatalf("expected TargetNotInWindowError, got %v", err)
	}
	if notInWindow.Window != 20 {
		t.Fatalf("window = %d, want 20", notInWindow.Window)
	}
}

func TestExplainUnknownDestination(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	var unknown domain.UnknownDestinationError
	if _, err := engine.ExplainWeight(1, 999, 0.5); !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownDestinationError, got %v", err)
	}
}

func TestExplainUnknownFeatureRestoresState(t *testing.T) {
	engine, _, ds := newTestEngine(t)

	var notFound domain.FeatureNotFoundError
	_, err := engine.ExplainDestinationFeature(1, 102, "vibes", 1)
	if !errors.As(err, &notFound) {
		t.Fatalf("expected FeatureNotFoundError, got %v", err)
	}

	// the failed simulation must not leave an override active
	_, restore, err := ds.OverrideDestinationFeature(102, "carbon_footprint_score", 1)
	if err != nil {
		t.Fatalf("override after failed simulation: %v", err)
	}
	restore()
}
