package sustainability

import (
	"math"

	"ecoVoyage/domain"
)

const (
	SchemeLinear    = "linear"
	SchemeQuadratic = "quadratic"
	SchemeSigmoid   = "sigmoid"
	SchemeThreshold = "threshold"
)

// DefaultThreshold is the cut-off of the threshold scheme when none is
// configured.
const DefaultThreshold = 0.7

// SchemeParams carries the optional parameters of a weighting scheme.
type SchemeParams struct {
	Threshold float64
}

// SchemeFunc blends a positional base score with a normalized
// sustainability score, both in [0,1], into a blended score in [0,1].
// Schemes are pure functions: no state, no side effects.
type SchemeFunc func(base, sust, weight float64, params SchemeParams) float64

var schemes = map[string]SchemeFunc{
	SchemeLinear:    linearWeighting,
	SchemeQuadratic: quadraticWeighting,
	SchemeSigmoid:   sigmoidWeighting,
	SchemeThreshold: thresholdWeighting,
}

// SchemeByName resolves a scheme, failing with InvalidWeightError for
// unknown names.
func SchemeByName(name string) (SchemeFunc, error) {
	fn, ok := schemes[name]
	if !ok {
		return nil, domain.InvalidWeightError{Scheme: name}
	}
	return fn, nil
}

// SchemeNames lists the registered schemes.
func SchemeNames() []string {
	return []string{SchemeLinear, SchemeQuadratic, SchemeSigmoid, SchemeThreshold}
}

func linearWeighting(base, sust, weight float64, _ SchemeParams) float64 {
	return (1-weight)*base + weight*sust
}

// quadraticWeighting squares the sustainability term, amplifying the
// advantage of highly sustainable destinations.
func quadraticWeighting(base, sust, weight float64, _ SchemeParams) float64 {
	return (1-weight)*base + weight*sust*sust
}

// sigmoidWeighting pushes the sustainability term through a soft threshold
// centered at 0.5.
func sigmoidWeighting(base, sust, weight float64, _ SchemeParams) float64 {
	factor := 1.0 / (1.0 + math.Exp(-10.0*(sust-0.5)))
	return (1-weight)*base + weight*factor
}

// thresholdWeighting applies a linear penalty, scaled by the weight, to
// destinations below the threshold; at or above it the score passes
// through untouched.
func thresholdWeighting(base, sust, weight float64, params SchemeParams) float64 {
	threshold := params.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	factor := sust
	if sust < threshold {
		penalty := (threshold - sust) / threshold
		factor = sust * (1 - penalty*weight)
	}

	return (1-weight)*base + weight*factor
}
