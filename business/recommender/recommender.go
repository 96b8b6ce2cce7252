package recommender

import (
	"sort"

	"ecoVoyage/business/sustainability"
	"ecoVoyage/domain"
)

// Recommender is the single contract every base scorer implements. Fit
// prepares internal state against a dataset; Recommend returns up to n
// candidates ordered best-first. The concrete variants form a closed set:
// popularity, content, user_cf, item_cf and learned.
type Recommender interface {
	Name() string
	Fit(ds *Dataset) error
	Recommend(userID uint, n int, excludeVisited bool) ([]domain.Candidate, error)
}

// rankTopN turns a dense per-destination score vector into an ordered
// candidate list. Scores are normalized by the maximum so every candidate
// carries a score in [0,1]. Ordering is deterministic: descending score,
// then ascending destination id.
func rankTopN(ds *Dataset, scores []float64, userIdx, n int, excludeVisited bool, source string) []domain.Candidate {
	type scored struct {
		destIdx int
		score   float64
	}

	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore == 0 {
		maxScore = 1
	}

	list := make([]scored, 0, len(scores))
	for i, s := range scores {
		if excludeVisited && ds.Visited(userIdx, i) {
			continue
		}
		list = append(list, scored{destIdx: i, score: s / maxScore})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return ds.DestinationAt(list[i].destIdx).ID < ds.DestinationAt(list[j].destIdx).ID
	})

	if n > len(list) {
		n = len(list)
	}

	out := make([]domain.Candidate, 0, n)
	for _, item := range list[:n] {
		out = append(out, candidateFor(ds, item.destIdx, item.score, source))
	}

	return out
}

func candidateFor(ds *Dataset, destIdx int, score float64, source string) domain.Candidate {
	d := ds.DestinationAt(destIdx)

	return domain.Candidate{
		DestinationID:       d.ID,
		Name:                d.Name,
		Country:             d.Country,
		LandscapeType:       d.LandscapeType,
		SustainabilityScore: sustainability.OverallScore(d),
		Score:               score,
		Sources:             []string{source},
	}
}
