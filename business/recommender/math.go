package recommender

import "math"

// cosine = a.b / (|a| |b|); zero vectors have zero similarity to everything
func cosine(a, b []float64) float64 {
	dot := 0.0
	na := 0.0
	nb := 0.0
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// cosineMatrix computes pairwise cosine similarity between the rows.
func cosineMatrix(rows [][]float64) [][]float64 {
	n := len(rows)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}

	norms := make([]float64, n)
	for i, r := range rows {
		s := 0.0
		for _, v := range r {
			s += v * v
		}
		norms[i] = math.Sqrt(s)
	}

	for i := 0; i < n; i++ {
		sim[i][i] = 1.0
		if norms[i] == 0 {
			sim[i][i] = 0
		}
		for j := i + 1; j < n; j++ {
			if norms[i] == 0 || norms[j] == 0 {
				continue
			}
			dot := 0.0
			for k := range rows[i] {
				dot += rows[i][k] * rows[j][k]
			}
			v := dot / (norms[i] * norms[j])
			sim[i][j] = v
			sim[j][i] = v
		}
	}

	return sim
}

// transpose flips rows and columns.
func transpose(m [][]float64) [][]float64 {
	if len(m) == 0 {
		return nil
	}

	out := make([][]float64, len(m[0]))
	for j := range out {
		out[j] = make([]float64, len(m))
		for i := range m {
			out[j][i] = m[i][j]
		}
	}

	return out
}
