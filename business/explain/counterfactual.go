package explain

import (
	"fmt"

	"ecoVoyage/business/recommender"
	"ecoVoyage/business/sustainability"
	"ecoVoyage/domain"
)

// rankWindow is the fixed depth of both pipeline runs. Rank positions are
// only meaningful within this window; it is a design constant, not a knob.
const rankWindow = 20

// Pipeline is the combined recommender plus reranker, treated as a black
// box: the engine only re-runs it and diffs the orderings.
type Pipeline interface {
	RankedRecommend(userID uint, n int, excludeVisited bool) ([]domain.Candidate, error)
}

// Engine runs perturb-and-diff simulations: baseline run, one scoped
// factor override, perturbed run, guaranteed restore, rank diff.
type Engine struct {
	pipeline Pipeline
	reranker *sustainability.Reranker
	ds       *recommender.Dataset
}

func NewEngine(pipeline Pipeline, reranker *sustainability.Reranker, ds *recommender.Dataset) *Engine {
	return &Engine{
		pipeline: pipeline,
		reranker: reranker,
		ds:       ds,
	}
}

// ExplainWeight simulates changing the reranker's sustainability weight.
func (e *Engine) ExplainWeight(userID uint, destID uint64, targetWeight float64) (domain.CounterfactualResult, error) {
	if targetWeight < 0 || targetWeight > 1 {
		return domain.CounterfactualResult{}, domain.InvalidWeightError{Weight: targetWeight}
	}

	prior := e.reranker.Weight()

	apply := func() (recommender.RestoreFunc, error) {
		if err := e.reranker.SetWeight(targetWeight); err != nil {
			return nil, err
		}
		return func() {
			// SetWeight validated prior when it was first configured.
			_ = e.reranker.SetWeight(prior)
		}, nil
	}

	return e.run(userID, destID, domain.FactorSustainabilityWeight, "", prior, targetWeight, apply)
}

// ExplainDestinationFeature simulates changing one sustainability
// sub-metric of the target destination.
func (e *Engine) ExplainDestinationFeature(userID uint, destID uint64, feature string, targetValue float64) (domain.CounterfactualResult, error) {
	var prior float64

	apply := func() (recommender.RestoreFunc, error) {
		p, restore, err := e.ds.OverrideDestinationFeature(destID, feature, targetValue)
		if err != nil {
			return nil, err
		}
		prior = p
		return restore, nil
	}

	res, err := e.run(userID, destID, domain.FactorDestinationFeature, feature, 0, targetValue, apply)
	if err != nil {
		return domain.CounterfactualResult{}, err
	}

	res.CurrentValue = prior

	return res, nil
}

// ExplainUserFeature simulates changing one attribute of the user.
func (e *Engine) ExplainUserFeature(userID uint, destID uint64, feature string, targetValue float64) (domain.CounterfactualResult, error) {
	var prior float64

	apply := func() (recommender.RestoreFunc, error) {
		p, restore, err := e.ds.OverrideUserFeature(userID, feature, targetValue)
		if err != nil {
			return nil, err
		}
		prior = p
		return restore, nil
	}

	res, err := e.run(userID, destID, domain.FactorUserFeature, feature, 0, targetValue, apply)
	if err != nil {
		return domain.CounterfactualResult{}, err
	}

	res.CurrentValue = prior

	return res, nil
}

// run executes the three-stage simulation. The override's restore function
// runs via defer, so the prior state comes back even when the perturbed
// pipeline run fails.
func (e *Engine) run(
	userID uint,
	destID uint64,
	factor string,
	attribute string,
	currentValue float64,
	targetValue float64,
	apply func() (recommender.RestoreFunc, error),
) (domain.CounterfactualResult, error) {

	dest, err := e.ds.DestinationByID(destID)
	if err != nil {
		return domain.CounterfactualResult{}, err
	}

	// Baseline
	baseline, err := e.pipeline.RankedRecommend(userID, rankWindow, true)
	if err != nil {
		return domain.CounterfactualResult{}, fmt.Errorf("baseline run: %w", err)
	}

	baseRank := rankOf(baseline, destID)
	if baseRank == 0 {
		return domain.CounterfactualResult{}, domain.TargetNotInWindowError{DestinationID: destID, Window: rankWindow}
	}

	// Perturb + re-run, with guaranteed restore
	perturbed, err := func() ([]domain.Candidate, error) {
		restore, err := apply()
		if err != nil {
			return nil, err
		}
		defer restore()

		return e.pipeline.RankedRecommend(userID, rankWindow, true)
	}()
	if err != nil {
		return domain.CounterfactualResult{}, fmt.Errorf("perturbed run: %w", err)
	}

	// Diff
	res := domain.CounterfactualResult{
		UserID:        userID,
		DestinationID: destID,
		Name:          dest.Name,
		Factor:        factor,
		Attribute:     attribute,
		CurrentValue:  currentValue,
		TargetValue:   targetValue,
		BaselineRank:  baseRank,
		MovedUp:       []domain.RankShift{},
		MovedDown:     []domain.RankShift{},
	}

	perturbedRank := rankOf(perturbed, destID)
	if perturbedRank == 0 {
		res.DroppedOut = true
		return res, nil
	}

	res.PerturbedRank = perturbedRank
	res.RankDelta = baseRank - perturbedRank
	res.MovedUp, res.MovedDown = crossings(baseline, perturbed, baseRank, perturbedRank)

	return res, nil
}

// rankOf returns the 1-based position of the destination, or 0 if absent.
func rankOf(cands []domain.Candidate, destID uint64) int {
	for i, c := range cands {
		if c.DestinationID == destID {
			return i + 1
		}
	}
	return 0
}

// crossings computes which destinations crossed the target's position: the
// set ranked above it in the perturbed run but not in the baseline moved
// up past it, and vice versa.
func crossings(baseline, perturbed []domain.Candidate, baseRank, perturbedRank int) (movedUp, movedDown []domain.RankShift) {
	movedUp = []domain.RankShift{}
	movedDown = []domain.RankShift{}

	aboveBase := make(map[uint64]domain.Candidate, baseRank-1)
	for _, c := range baseline[:baseRank-1] {
		aboveBase[c.DestinationID] = c
	}

	abovePerturbed := make(map[uint64]domain.Candidate, perturbedRank-1)
	for _, c := range perturbed[:perturbedRank-1] {
		abovePerturbed[c.DestinationID] = c
	}

	for _, c := range perturbed[:perturbedRank-1] {
		if _, ok := aboveBase[c.DestinationID]; !ok {
			movedUp = append(movedUp, shiftFor(c))
		}
	}

	for _, c := range baseline[:baseRank-1] {
		if _, ok := abovePerturbed[c.DestinationID]; !ok {
			movedDown = append(movedDown, shiftFor(c))
		}
	}

	return movedUp, movedDown
}

func shiftFor(c domain.Candidate) domain.RankShift {
	return domain.RankShift{
		DestinationID:       c.DestinationID,
		Name:                c.Name,
		SustainabilityScore: c.SustainabilityScore,
	}
}
