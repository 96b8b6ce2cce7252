package sustainability

import (
	"sort"

	"ecoVoyage/domain"
)

// Reranker re-orders an already-ranked candidate list by blending each
// item's positional confidence with its sustainability score through the
// configured weighting scheme.
type Reranker struct {
	weight float64
	scheme SchemeFunc
	name   string
	params SchemeParams
}

func NewReranker(weight float64, schemeName string, params SchemeParams) (*Reranker, error) {
	r := &Reranker{}

	if err := r.SetWeight(weight); err != nil {
		return nil, err
	}
	if err := r.SetScheme(schemeName, params); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Reranker) Weight() float64 {
	return r.weight
}

func (r *Reranker) SchemeName() string {
	return r.name
}

// SetWeight replaces the sustainability weight for subsequent calls.
func (r *Reranker) SetWeight(weight float64) error {
	if weight < 0 || weight > 1 {
		return domain.InvalidWeightError{Weight: weight}
	}

	r.weight = weight

	return nil
}

// SetScheme replaces the weighting scheme for subsequent calls.
func (r *Reranker) SetScheme(name string, params SchemeParams) error {
	fn, err := SchemeByName(name)
	if err != nil {
		return err
	}

	r.scheme = fn
	r.name = name
	r.params = params

	return nil
}

// Rerank blends and re-orders. Item i of an N-item list gets base score
// (N-i)/N (1.0 for a single item); sustainability is the overall score
// normalized to [0,1]. The sort is stable so ties keep their prior
// relative order, which also makes weight=0 reproduce the input exactly.
func (r *Reranker) Rerank(cands []domain.Candidate) []domain.Candidate {
	n := len(cands)
	if n == 0 {
		return []domain.Candidate{}
	}

	type weighted struct {
		cand  domain.Candidate
		score float64
	}

	list := make([]weighted, n)
	for i, c := range cands {
		base := float64(n-i) / float64(n)
		if n == 1 {
			base = 1.0
		}

		sust := c.SustainabilityScore / 10.0

		list[i] = weighted{
			cand:  c,
			score: r.scheme(base, sust, r.weight, r.params),
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})

	out := make([]domain.Candidate, n)
	for i, w := range list {
		out[i] = w.cand
	}

	return out
}
