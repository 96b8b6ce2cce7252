package domain

import "fmt"

// Failure taxonomy of the recommendation core. Every error is a typed value
// so callers can branch with errors.As; nothing in the core is swallowed
// silently except the documented content-similarity fallback to popularity.

type UnknownUserError struct {
	UserID uint
}

func (e UnknownUserError) Error() string {
	return fmt.Sprintf("unknown user id %d", e.UserID)
}

type UnknownDestinationError struct {
	DestinationID uint64
}

func (e UnknownDestinationError) Error() string {
	return fmt.Sprintf("unknown destination id %d", e.DestinationID)
}

type NoRecommendersConfiguredError struct{}

func (NoRecommendersConfiguredError) Error() string {
	return "no recommenders configured in ensemble"
}

type InvalidWeightError struct {
	Weight float64
	Scheme string
}

func (e InvalidWeightError) Error() string {
	if e.Scheme != "" {
		return fmt.Sprintf("unknown weighting scheme %q", e.Scheme)
	}
	return fmt.Sprintf("sustainability weight %g outside [0,1]", e.Weight)
}

type FeatureNotFoundError struct {
	Entity  string // "destination" or "user"
	Feature string
}

func (e FeatureNotFoundError) Error() string {
	return fmt.Sprintf("feature %q not found on %s schema", e.Feature, e.Entity)
}

type TargetNotInWindowError struct {
	DestinationID uint64
	Window        int
}

func (e TargetNotInWindowError) Error() string {
	return fmt.Sprintf("destination %d not in top-%d recommendations", e.DestinationID, e.Window)
}
