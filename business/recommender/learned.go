package recommender

import (
	"errors"

	"ecoVoyage/domain"
)

const NameLearned = "learned"

// ScoreFunc is an externally supplied scorer over matrix indices. Training
// is out of scope here; typical sources are an offline model dump or the
// precomputed_scores table.
type ScoreFunc func(userIdx, destIdx int) float64

// Learned wraps a pluggable black-box scorer in the common contract.
type Learned struct {
	ds *Dataset
	fn ScoreFunc
}

func NewLearned(fn ScoreFunc) *Learned {
	return &Learned{fn: fn}
}

func (r *Learned) Name() string {
	return NameLearned
}

func (r *Learned) Fit(ds *Dataset) error {
	if r.fn == nil {
		return errors.New("learned recommender requires a score function")
	}

	r.ds = ds

	return nil
}

func (r *Learned) Recommend(userID uint, n int, excludeVisited bool) ([]domain.Candidate, error) {
	if r.ds == nil {
		return nil, errors.New("learned recommender is not fitted")
	}

	userIdx, err := r.ds.UserIndex(userID)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, r.ds.NumDestinations())
	for i := range scores {
		scores[i] = r.fn(userIdx, i)
	}

	return rankTopN(r.ds, scores, userIdx, n, excludeVisited, r.Name()), nil
}
