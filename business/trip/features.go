package trip

import (
	"ecoVoyage/business/sustainability"
	"ecoVoyage/domain"
)

// BuildFeatureMatrix turns destination rows into the content feature matrix:
// the five sustainability sub-metrics plus the derived overall score, min-max
// scaled per column. Row i aligns with destinations[i]. The matrix is a
// snapshot taken at load time; feature overrides during a simulation do not
// reach similarity structures fitted on it.
func BuildFeatureMatrix(destinations []domain.Destination) [][]float64 {
	if len(destinations) == 0 {
		return nil
	}

	const numFeatures = 6

	features := make([][]float64, len(destinations))
	for i, d := range destinations {
		features[i] = []float64{
			d.CarbonFootprintScore,
			d.WaterConsumptionScore,
			d.WasteManagementScore,
			d.BiodiversityImpactScore,
			d.LocalEconomySupportScore,
			sustainability.OverallScore(d),
		}
	}

	// min-max per column; constant columns collapse to 0
	for j := 0; j < numFeatures; j++ {
		min, max := features[0][j], features[0][j]
		for i := 1; i < len(features); i++ {
			if features[i][j] < min {
				min = features[i][j]
			}
			if features[i][j] > max {
				max = features[i][j]
			}
		}

		span := max - min
		for i := range features {
			if span == 0 {
				features[i][j] = 0
				continue
			}
			features[i][j] = (features[i][j] - min) / span
		}
	}

	return features
}
