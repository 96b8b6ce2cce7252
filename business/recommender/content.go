package recommender

import (
	"errors"

	"ecoVoyage/domain"
)

const NameContent = "content"

// ContentSimilarity scores a destination by its mean cosine similarity to
// the destinations the user has already visited, using the destination
// feature matrix. Users without history fall back to popularity; that
// fallback is the documented default, not an error path.
type ContentSimilarity struct {
	ds       *Dataset
	sim      [][]float64
	fallback *Popularity
}

func NewContentSimilarity() *ContentSimilarity {
	return &ContentSimilarity{fallback: NewPopularity()}
}

func (r *ContentSimilarity) Name() string {
	return NameContent
}

func (r *ContentSimilarity) Fit(ds *Dataset) error {
	if !ds.HasFeatures() {
		return errors.New("content similarity requires a destination feature matrix")
	}

	rows := make([][]float64, ds.NumDestinations())
	for i := range rows {
		rows[i] = ds.FeatureRow(i)
	}

	r.sim = cosineMatrix(rows)
	r.ds = ds

	return r.fallback.Fit(ds)
}

func (r *ContentSimilarity) Recommend(userID uint, n int, excludeVisited bool) ([]domain.Candidate, error) {
	if r.ds == nil {
		return nil, errors.New("content recommender is not fitted")
	}

	userIdx, err := r.ds.UserIndex(userID)
	if err != nil {
		return nil, err
	}

	row := r.ds.InteractionRow(userIdx)

	visited := make([]int, 0)
	for i, v := range row {
		if v > 0 {
			visited = append(visited, i)
		}
	}

	if len(visited) == 0 {
		return r.fallback.Recommend(userID, n, excludeVisited)
	}

	scores := make([]float64, r.ds.NumDestinations())
	for _, vi := range visited {
		for j, s := range r.sim[vi] {
			scores[j] += s
		}
	}
	for j := range scores {
		scores[j] /= float64(len(visited))
	}

	return rankTopN(r.ds, scores, userIdx, n, excludeVisited, r.Name()), nil
}
