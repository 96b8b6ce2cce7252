package recommender

import (
	"errors"
	"sort"

	"ecoVoyage/domain"
)

const (
	NameUserCF = "user_cf"
	NameItemCF = "item_cf"
)

// neighborhood size for user-based filtering
const topSimilarUsers = 20

type cfMethod int

const (
	cfUser cfMethod = iota
	cfItem
)

// CollaborativeFiltering covers both variants: user mode compares
// interaction rows between users, item mode compares columns between
// destinations.
type CollaborativeFiltering struct {
	method cfMethod
	ds     *Dataset
	sim    [][]float64
}

func NewUserCF() *CollaborativeFiltering {
	return &CollaborativeFiltering{method: cfUser}
}

func NewItemCF() *CollaborativeFiltering {
	return &CollaborativeFiltering{method: cfItem}
}

func (r *CollaborativeFiltering) Name() string {
	if r.method == cfUser {
		return NameUserCF
	}
	return NameItemCF
}

func (r *CollaborativeFiltering) Fit(ds *Dataset) error {
	rows := make([][]float64, ds.NumUsers())
	for i := range rows {
		rows[i] = ds.InteractionRow(i)
	}

	switch r.method {
	case cfUser:
		r.sim = cosineMatrix(rows)
	case cfItem:
		r.sim = cosineMatrix(transpose(rows))
	}

	r.ds = ds

	return nil
}

func (r *CollaborativeFiltering) Recommend(userID uint, n int, excludeVisited bool) ([]domain.Candidate, error) {
	if r.ds == nil {
		return nil, errors.New("collaborative recommender is not fitted")
	}

	userIdx, err := r.ds.UserIndex(userID)
	if err != nil {
		return nil, err
	}

	var scores []float64
	switch r.method {
	case cfUser:
		scores = r.userScores(userIdx)
	case cfItem:
		scores = r.itemScores(userIdx)
	}

	return rankTopN(r.ds, scores, userIdx, n, excludeVisited, r.Name()), nil
}

// userScores blends the interaction rows of the most similar users,
// weighted by similarity and normalized by the similarity mass used.
func (r *CollaborativeFiltering) userScores(userIdx int) []float64 {
	type neighbor struct {
		idx int
		sim float64
	}

	neighbors := make([]neighbor, 0, r.ds.NumUsers()-1)
	for i, s := range r.sim[userIdx] {
		if i == userIdx {
			continue
		}
		neighbors = append(neighbors, neighbor{idx: i, sim: s})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].sim != neighbors[j].sim {
			return neighbors[i].sim > neighbors[j].sim
		}
		return neighbors[i].idx < neighbors[j].idx
	})

	if len(neighbors) > topSimilarUsers {
		neighbors = neighbors[:topSimilarUsers]
	}

	scores := make([]float64, r.ds.NumDestinations())
	simSum := 0.0

	for _, nb := range neighbors {
		if nb.sim <= 0 {
			continue
		}
		row := r.ds.InteractionRow(nb.idx)
		for j, v := range row {
			scores[j] += nb.sim * v
		}
		simSum += nb.sim
	}

	if simSum > 0 {
		for j := range scores {
			scores[j] /= simSum
		}
	}

	return scores
}

// itemScores accumulates, for every destination the user visited, that
// destination's similarity row, then normalizes by the total mass.
func (r *CollaborativeFiltering) itemScores(userIdx int) []float64 {
	row := r.ds.InteractionRow(userIdx)
	scores := make([]float64, r.ds.NumDestinations())

	for i, visited := range row {
		if visited <= 0 {
			continue
		}
		for j, s := range r.sim[i] {
			scores[j] += s
		}
	}

	total := 0.0
	for _, s := range scores {
		total += s
	}
	if total > 0 {
		for j := range scores {
			scores[j] /= total
		}
	}

	return scores
}
