package recommender

import (
	"fmt"
	"sort"

	"ecoVoyage/domain"
)

type ensembleEntry struct {
	rec    Recommender
	weight float64
}

// Ensemble fuses the ranked lists of its members into one weighted
// candidate set. Member weights are renormalized to sum to 1 on every add,
// so relative proportions are what matters when composing one.
type Ensemble struct {
	entries []ensembleEntry
}

func NewEnsemble() *Ensemble {
	return &Ensemble{}
}

// AddRecommender appends a member and renormalizes all weights.
func (e *Ensemble) AddRecommender(rec Recommender, weight float64) *Ensemble {
	e.entries = append(e.entries, ensembleEntry{rec: rec, weight: weight})

	total := 0.0
	for _, entry := range e.entries {
		total += entry.weight
	}
	for i := range e.entries {
		e.entries[i].weight /= total
	}

	return e
}

func (e *Ensemble) Size() int {
	return len(e.entries)
}

// Weights returns the current normalized weights, in registration order.
func (e *Ensemble) Weights() []float64 {
	out := make([]float64, len(e.entries))
	for i, entry := range e.entries {
		out[i] = entry.weight
	}
	return out
}

func (e *Ensemble) Fit(ds *Dataset) error {
	for _, entry := range e.entries {
		if err := entry.rec.Fit(ds); err != nil {
			return fmt.Errorf("fit %s: %w", entry.rec.Name(), err)
		}
	}
	return nil
}

// Recommend asks every member for 2n candidates (buffer for the
// de-duplication below), converts list position j of a length-L list into
// a positional confidence (L-j)/L scaled by the member's weight, and
// accumulates per destination. Ties within a member's own list are treated
// as distinct ranks by position; that approximation is part of the fusion
// contract.
func (e *Ensemble) Recommend(userID uint, n int, excludeVisited bool) ([]domain.Candidate, error) {
	if len(e.entries) == 0 {
		return nil, domain.NoRecommendersConfiguredError{}
	}

	type fused struct {
		cand  domain.Candidate
		score float64
	}

	accum := make(map[uint64]*fused)

	for _, entry := range e.entries {
		recs, err := entry.rec.Recommend(userID, 2*n, excludeVisited)
		if err != nil {
			return nil, fmt.Errorf("%s recommend: %w", entry.rec.Name(), err)
		}

		count := float64(len(recs))
		for j, rec := range recs {
			score := entry.weight * (count - float64(j)) / count

			if f, ok := accum[rec.DestinationID]; ok {
				f.score += score
				f.cand.Sources = append(f.cand.Sources, entry.rec.Name())
			} else {
				cand := rec
				cand.Sources = []string{entry.rec.Name()}
				accum[rec.DestinationID] = &fused{cand: cand, score: score}
			}
		}
	}

	list := make([]*fused, 0, len(accum))
	for _, f := range accum {
		list = append(list, f)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].cand.DestinationID < list[j].cand.DestinationID
	})

	if n > len(list) {
		n = len(list)
	}

	out := make([]domain.Candidate, 0, n)
	for _, f := range list[:n] {
		cand := f.cand
		cand.Score = f.score
		out = append(out, cand)
	}

	return out, nil
}
