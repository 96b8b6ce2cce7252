package domain

// Factor names accepted by the counterfactual engine.
const (
	FactorSustainabilityWeight = "sustainability_weight"
	FactorDestinationFeature   = "destination_feature"
	FactorUserFeature          = "user_feature"
)

// RankShift describes one destination that crossed the target's position
// between the baseline and the perturbed ranking.
type RankShift struct {
	DestinationID       uint64  `json:"destination_id"`
	Name                string  `json:"name"`
	SustainabilityScore float64 `json:"sustainability_score"`
}

// CounterfactualResult is the outcome of one perturb-and-diff simulation.
// Ranks are 1-based within the top-20 window; PerturbedRank is 0 when the
// target dropped out of the window under the perturbation.
type CounterfactualResult struct {
	UserID        uint   `json:"user_id"`
	DestinationID uint64 `json:"destination_id"`
	Name          string `json:"destination_name"`

	Factor        string  `json:"factor"`
	Attribute     string  `json:"attribute,omitempty"`
	CurrentValue  float64 `json:"current_value"`
	TargetValue   float64 `json:"target_value"`

	BaselineRank  int  `json:"baseline_rank"`
	PerturbedRank int  `json:"perturbed_rank"`
	DroppedOut    bool `json:"dropped_out"`

	// RankDelta = baseline - perturbed; positive means the perturbation
	// improved the target's position. Zero when the target dropped out.
	RankDelta int `json:"rank_delta"`

	MovedUp   []RankShift `json:"moved_up"`   // now ranked above the target
	MovedDown []RankShift `json:"moved_down"` // no longer ranked above the target
}
