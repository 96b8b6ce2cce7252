package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.destinations (
//     id                          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name                        TEXT NOT NULL,
//     country                     TEXT,
//     landscape_type              TEXT,
//     popular_activities          JSONB,
//     carbon_footprint_score      NUMERIC,
//     water_consumption_score     NUMERIC,
//     waste_management_score      NUMERIC,
//     biodiversity_impact_score   NUMERIC,
//     local_economy_support_score NUMERIC,
//     created_at                  TIMESTAMPTZ DEFAULT NOW()
// );

type Destination struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string `gorm:"column:name;type:text;not null" json:"name"`
	Country       string `gorm:"column:country;type:text" json:"country"`
	LandscapeType string `gorm:"column:landscape_type;type:text" json:"landscape_type"`

	PopularActivities datatypes.JSON `gorm:"column:popular_activities;type:jsonb" json:"popular_activities"`

	// Sustainability sub-metrics, each on a 0-10 scale. The overall score is
	// always derived from these (see business/sustainability), never stored,
	// so a counterfactual override of one sub-metric flows through.
	CarbonFootprintScore     float64 `gorm:"column:carbon_footprint_score;type:numeric" json:"carbon_footprint_score"`
	WaterConsumptionScore    float64 `gorm:"column:water_consumption_score;type:numeric" json:"water_consumption_score"`
	WasteManagementScore     float64 `gorm:"column:waste_management_score;type:numeric" json:"waste_management_score"`
	BiodiversityImpactScore  float64 `gorm:"column:biodiversity_impact_score;type:numeric" json:"biodiversity_impact_score"`
	LocalEconomySupportScore float64 `gorm:"column:local_economy_support_score;type:numeric" json:"local_economy_support_score"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Destination) TableName() string {
	return "destinations"
}
