package evaluation

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"ecoVoyage/business/recommender"
	"ecoVoyage/domain"
)

const (
	// holdoutFraction of a user's positive interactions is hidden per
	// evaluation pass.
	holdoutFraction = 0.2

	// minPositives is the minimum visit count for a user to be evaluated.
	// Sparser histories give degenerate holdout splits.
	minPositives = 5
)

// Metrics holds averaged ranking quality numbers for one recommender.
type Metrics struct {
	Model              string  `json:"model"`
	K                  int     `json:"k"`
	UsersEvaluated     int     `json:"users_evaluated"`
	PrecisionAtK       float64 `json:"precision_at_k"`
	RecallAtK          float64 `json:"recall_at_k"`
	NDCGAtK            float64 `json:"ndcg_at_k"`
	MeanSustainability float64 `json:"mean_sustainability"`
}

// ---- Pointwise metrics ----

// PrecisionAtK is the fraction of the k highest-scored items that are
// relevant. truth is a binary relevance vector aligned with scores.
func PrecisionAtK(truth, scores []float64, k int) float64 {
	if len(truth) == 0 || k == 0 {
		return 0
	}

	hits := 0.0
	for _, idx := range topKIndices(scores, k) {
		hits += truth[idx]
	}

	return hits / float64(k)
}

// RecallAtK is the fraction of all relevant items that appear among the
// k highest-scored items.
func RecallAtK(truth, scores []float64, k int) float64 {
	total := sum(truth)
	if len(truth) == 0 || total == 0 || k == 0 {
		return 0
	}

	hits := 0.0
	for _, idx := range topKIndices(scores, k) {
		hits += truth[idx]
	}

	return hits / total
}

// NDCGAtK is the normalized discounted cumulative gain over the k
// highest-scored items, with binary gains.
func NDCGAtK(truth, scores []float64, k int) float64 {
	total := sum(truth)
	if len(truth) == 0 || total == 0 || k == 0 {
		return 0
	}

	dcg := 0.0
	for j, idx := range topKIndices(scores, k) {
		dcg += truth[idx] / math.Log2(float64(j+2))
	}

	ideal := int(total)
	if ideal > k {
		ideal = k
	}
	idcg := 0.0
	for j := 0; j < ideal; j++ {
		idcg += 1 / math.Log2(float64(j+2))
	}

	if idcg == 0 {
		return 0
	}

	return dcg / idcg
}

// MeanSustainability averages the 0-10 sustainability score over a
// recommendation list.
func MeanSustainability(cands []domain.Candidate) float64 {
	if len(cands) == 0 {
		return 0
	}

	total := 0.0
	for _, c := range cands {
		total += c.SustainabilityScore
	}

	return total / float64(len(cands))
}

// CountryDiversity is the ratio of distinct countries to list length.
func CountryDiversity(cands []domain.Candidate) float64 {
	if len(cands) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(cands))
	for _, c := range cands {
		seen[c.Country] = struct{}{}
	}

	return float64(len(seen)) / float64(len(cands))
}

// ---- Holdout evaluation ----

// EvaluateRecommender hides a fraction of each test user's visits, asks
// the fitted recommender for top-k lists against the masked matrix, and
// scores the lists against the hidden visits. Similarity structures are
// not refit under the mask, so the numbers measure the model as served.
func EvaluateRecommender(rec recommender.Recommender, ds *recommender.Dataset, testUsers []uint, k int, rng *rand.Rand) (Metrics, error) {
	m := Metrics{Model: rec.Name(), K: k}

	var precisions, recalls, ndcgs, sustainabilities []float64

	for _, userID := range testUsers {
		userIdx, err := ds.UserIndex(userID)
		if err != nil {
			return Metrics{}, err
		}

		row := ds.InteractionRow(userIdx)
		positives := make([]int, 0, len(row))
		for i, v := range row {
			if v > 0 {
				positives = append(positives, i)
			}
		}
		if len(positives) < minPositives {
			continue
		}

		rng.Shuffle(len(positives), func(i, j int) {
			positives[i], positives[j] = positives[j], positives[i]
		})

		nTest := int(holdoutFraction * float64(len(positives)))
		if nTest < 1 {
			nTest = 1
		}
		testIdxs := positives[:nTest]

		p, r, n, s, err := evaluateHoldout(rec, ds, userID, userIdx, testIdxs, k)
		if err != nil {
			return Metrics{}, fmt.Errorf("evaluate user %d: %w", userID, err)
		}

		precisions = append(precisions, p)
		recalls = append(recalls, r)
		ndcgs = append(ndcgs, n)
		sustainabilities = append(sustainabilities, s)
	}

	m.UsersEvaluated = len(precisions)
	m.PrecisionAtK = mean(precisions)
	m.RecallAtK = mean(recalls)
	m.NDCGAtK = mean(ndcgs)
	m.MeanSustainability = mean(sustainabilities)

	return m, nil
}

// CompareRecommenders evaluates each recommender over the same users.
func CompareRecommenders(recs []recommender.Recommender, ds *recommender.Dataset, testUsers []uint, k int, rng *rand.Rand) ([]Metrics, error) {
	results := make([]Metrics, 0, len(recs))
	for _, rec := range recs {
		m, err := EvaluateRecommender(rec, ds, testUsers, k, rng)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", rec.Name(), err)
		}
		results = append(results, m)
	}
	return results, nil
}

// evaluateHoldout runs one masked pass for one user. The mask is restored
// before returning regardless of outcome.
func evaluateHoldout(rec recommender.Recommender, ds *recommender.Dataset, userID uint, userIdx int, testIdxs []int, k int) (precision, recall, ndcg, sustainability float64, err error) {
	restore, err := ds.MaskInteractions(userIdx, testIdxs)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	defer restore()

	cands, err := rec.Recommend(userID, k, true)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	numDest := ds.NumDestinations()

	scores := make([]float64, numDest)
	for i, c := range cands {
		destIdx, err := ds.DestinationIndex(c.DestinationID)
		if err != nil {
			return 0, 0, 0, 0, err
		}
		scores[destIdx] = float64(numDest - i)
	}

	truth := make([]float64, numDest)
	for _, ti := range testIdxs {
		truth[ti] = 1
	}

	return PrecisionAtK(truth, scores, k),
		RecallAtK(truth, scores, k),
		NDCGAtK(truth, scores, k),
		MeanSustainability(cands),
		nil
}

// topKIndices returns the indices of the k largest scores, ties broken
// by ascending index.
func topKIndices(scores []float64, k int) []int {
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}

	sort.SliceStable(idxs, func(a, b int) bool {
		return scores[idxs[a]] > scores[idxs[b]]
	})

	if k < len(idxs) {
		idxs = idxs[:k]
	}
	return idxs
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return sum(xs) / float64(len(xs))
}
