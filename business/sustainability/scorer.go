package sustainability

import "ecoVoyage/domain"

// Sub-metric weights of the composite score. They sum to 1, so the overall
// score stays on the same 0-10 scale as the inputs.
const (
	weightCarbon       = 0.25
	weightWater        = 0.20
	weightWaste        = 0.20
	weightBiodiversity = 0.20
	weightLocalEconomy = 0.15
)

// OverallScore derives the composite sustainability score (0-10) from the
// five sub-metrics. Always computed on demand so scoped overrides of a
// sub-metric are reflected immediately.
func OverallScore(d domain.Destination) float64 {
	return weightCarbon*d.CarbonFootprintScore +
		weightWater*d.WaterConsumptionScore +
		weightWaste*d.WasteManagementScore +
		weightBiodiversity*d.BiodiversityImpactScore +
		weightLocalEconomy*d.LocalEconomySupportScore
}

// NormalizedScore maps the overall score onto [0,1] for blending.
func NormalizedScore(d domain.Destination) float64 {
	return OverallScore(d) / 10.0
}

// Breakdown lists the sub-metrics plus the derived overall score.
func Breakdown(d domain.Destination) map[string]float64 {
	return map[string]float64{
		"carbon_footprint_score":      d.CarbonFootprintScore,
		"water_consumption_score":     d.WaterConsumptionScore,
		"waste_management_score":      d.WasteManagementScore,
		"biodiversity_impact_score":   d.BiodiversityImpactScore,
		"local_economy_support_score": d.LocalEconomySupportScore,
		"overall_sustainability_score": OverallScore(d),
	}
}

// FilterByThreshold keeps only candidates whose overall score (0-10) meets
// the threshold.
func FilterByThreshold(cands []domain.Candidate, threshold float64) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(cands))
	for _, c := range cands {
		if c.SustainabilityScore >= threshold {
			out = append(out, c)
		}
	}
	return out
}
