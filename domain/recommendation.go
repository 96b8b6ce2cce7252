package domain

// Candidate is one scored, provenance-tagged destination produced for a
// single recommendation call. Ephemeral: built per call, never persisted.
type Candidate struct {
	DestinationID       uint64   `json:"destination_id"`
	Name                string   `json:"name"`
	Country             string   `json:"country"`
	LandscapeType       string   `json:"landscape_type"`
	SustainabilityScore float64  `json:"sustainability_score"` // 0-10 derived overall
	Score               float64  `json:"score"`                // fused score in [0,1]
	Sources             []string `json:"sources"`              // contributing recommender names
}

// PrecomputedScore is an externally trained (user, destination) score row.
// Training happens outside this service; rows are served to the pluggable
// learned scorer as-is.
type PrecomputedScore struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	UserID        uint    `gorm:"column:user_id;not null;index" json:"user_id"`
	DestinationID uint64  `gorm:"column:destination_id;not null" json:"destination_id"`
	Score         float64 `gorm:"column:score;not null" json:"score"`
}

func (PrecomputedScore) TableName() string {
	return "precomputed_scores"
}
