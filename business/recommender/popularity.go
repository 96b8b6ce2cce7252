package recommender

import (
	"errors"

	"ecoVoyage/domain"
)

const NamePopularity = "popularity"

// Popularity scores every destination by its total visit count. No
// personalization beyond the exclude-visited filter.
type Popularity struct {
	ds     *Dataset
	scores []float64
}

func NewPopularity() *Popularity {
	return &Popularity{}
}

func (r *Popularity) Name() string {
	return NamePopularity
}

func (r *Popularity) Fit(ds *Dataset) error {
	scores := make([]float64, ds.NumDestinations())
	for i := range scores {
		scores[i] = ds.InteractionColumnSum(i)
	}

	r.ds = ds
	r.scores = scores

	return nil
}

func (r *Popularity) Recommend(userID uint, n int, excludeVisited bool) ([]domain.Candidate, error) {
	if r.ds == nil {
		return nil, errors.New("popularity recommender is not fitted")
	}

	userIdx, err := r.ds.UserIndex(userID)
	if err != nil {
		return nil, err
	}

	return rankTopN(r.ds, r.scores, userIdx, n, excludeVisited, r.Name()), nil
}
