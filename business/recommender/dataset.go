package recommender

import (
	"errors"
	"fmt"

	"ecoVoyage/domain"
)

// Dataset is the explicit context object for one recommendation session: the
// binary user x destination interaction matrix, the id<->index mappings, the
// user and destination tables, and an optional destination feature matrix.
// Index positions are assigned once at construction and never re-sorted.
type Dataset struct {
	users        []domain.User
	destinations []domain.Destination

	matrix   [][]float64 // rows = users, cols = destinations, entries in {0,1}
	features [][]float64 // optional, row i aligns with destinations[i]

	userIndex map[uint]int
	destIndex map[uint64]int

	// Simulation overrides are scoped (save-apply-restore) and must not
	// nest; a second override before the first restore is a hard error.
	overrideActive bool
}

// NewDataset validates the tables against the matrix and builds the index
// mappings. The feature matrix may be nil when no content scoring is needed.
func NewDataset(users []domain.User, destinations []domain.Destination, matrix [][]float64, features [][]float64) (*Dataset, error) {
	if len(matrix) != len(users) {
		return nil, fmt.Errorf("matrix has %d rows for %d users", len(matrix), len(users))
	}

	for i, row := range matrix {
		if len(row) != len(destinations) {
			return nil, fmt.Errorf("matrix row %d has %d columns for %d destinations", i, len(row), len(destinations))
		}
		for j, v := range row {
			if v != 0 && v != 1 {
				return nil, fmt.Errorf("matrix entry (%d,%d) = %g is not binary", i, j, v)
			}
		}
	}

	if features != nil && len(features) != len(destinations) {
		return nil, fmt.Errorf("feature matrix has %d rows for %d destinations", len(features), len(destinations))
	}

	ds := &Dataset{
		users:        users,
		destinations: destinations,
		matrix:       matrix,
		features:     features,
		userIndex:    make(map[uint]int, len(users)),
		destIndex:    make(map[uint64]int, len(destinations)),
	}

	for i, u := range users {
		if _, dup := ds.userIndex[u.ID]; dup {
			return nil, fmt.Errorf("duplicate user id %d", u.ID)
		}
		ds.userIndex[u.ID] = i
	}

	for i, d := range destinations {
		if _, dup := ds.destIndex[d.ID]; dup {
			return nil, fmt.Errorf("duplicate destination id %d", d.ID)
		}
		ds.destIndex[d.ID] = i
	}

	return ds, nil
}

// BuildMatrix derives a binary interaction matrix from visit rows. Visits
// referencing unknown users or destinations are skipped.
func BuildMatrix(users []domain.User, destinations []domain.Destination, visits []domain.Visit) [][]float64 {
	userIdx := make(map[uint]int, len(users))
	for i, u := range users {
		userIdx[u.ID] = i
	}
	destIdx := make(map[uint64]int, len(destinations))
	for i, d := range destinations {
		destIdx[d.ID] = i
	}

	matrix := make([][]float64, len(users))
	for i := range matrix {
		matrix[i] = make([]float64, len(destinations))
	}

	for _, v := range visits {
		ui, ok := userIdx[v.UserID]
		if !ok {
			continue
		}
		di, ok := destIdx[v.DestinationID]
		if !ok {
			continue
		}
		matrix[ui][di] = 1
	}

	return matrix
}

func (ds *Dataset) NumUsers() int {
	return len(ds.users)
}

func (ds *Dataset) NumDestinations() int {
	return len(ds.destinations)
}

func (ds *Dataset) HasFeatures() bool {
	return ds.features != nil
}

// UserIndex resolves a user id to its fixed matrix row.
func (ds *Dataset) UserIndex(userID uint) (int, error) {
	idx, ok := ds.userIndex[userID]
	if !ok {
		return 0, domain.UnknownUserError{UserID: userID}
	}
	return idx, nil
}

// DestinationIndex resolves a destination id to its fixed matrix column.
func (ds *Dataset) DestinationIndex(destID uint64) (int, error) {
	idx, ok := ds.destIndex[destID]
	if !ok {
		return 0, domain.UnknownDestinationError{DestinationID: destID}
	}
	return idx, nil
}

func (ds *Dataset) UserAt(idx int) domain.User {
	return ds.users[idx]
}

func (ds *Dataset) DestinationAt(idx int) domain.Destination {
	return ds.destinations[idx]
}

func (ds *Dataset) DestinationByID(destID uint64) (domain.Destination, error) {
	idx, err := ds.DestinationIndex(destID)
	if err != nil {
		return domain.Destination{}, err
	}
	return ds.destinations[idx], nil
}

// InteractionRow returns the user's row of the matrix. Callers must not
// mutate it outside the scoped-override API.
func (ds *Dataset) InteractionRow(userIdx int) []float64 {
	return ds.matrix[userIdx]
}

func (ds *Dataset) InteractionColumnSum(destIdx int) float64 {
	sum := 0.0
	for _, row := range ds.matrix {
		sum += row[destIdx]
	}
	return sum
}

func (ds *Dataset) FeatureRow(destIdx int) []float64 {
	if ds.features == nil {
		return nil
	}
	return ds.features[destIdx]
}

func (ds *Dataset) Visited(userIdx, destIdx int) bool {
	return ds.matrix[userIdx][destIdx] > 0
}

// RecordVisit marks one cell of the matrix as visited. Rejected while an
// override is active so a restore cannot clobber the new visit.
func (ds *Dataset) RecordVisit(userID uint, destID uint64) error {
	if ds.overrideActive {
		return errOverrideActive
	}

	ui, err := ds.UserIndex(userID)
	if err != nil {
		return err
	}
	di, err := ds.DestinationIndex(destID)
	if err != nil {
		return err
	}

	ds.matrix[ui][di] = 1

	return nil
}

// ---- Scoped overrides ----

// RestoreFunc reverts exactly one override. It is safe to call once; the
// engine calls it via defer so restoration also happens on error paths.
type RestoreFunc func()

var errOverrideActive = errors.New("an override is already active; overrides are not reentrant")

func (ds *Dataset) beginOverride() error {
	if ds.overrideActive {
		return errOverrideActive
	}
	ds.overrideActive = true
	return nil
}

// OverrideDestinationFeature temporarily replaces one sustainability
// sub-metric on one destination, returning the prior value and a restore
// function. Unknown feature names fail with FeatureNotFoundError.
func (ds *Dataset) OverrideDestinationFeature(destID uint64, feature string, value float64) (float64, RestoreFunc, error) {
	idx, err := ds.DestinationIndex(destID)
	if err != nil {
		return 0, nil, err
	}

	field, err := destinationFeatureField(&ds.destinations[idx], feature)
	if err != nil {
		return 0, nil, err
	}

	if err := ds.beginOverride(); err != nil {
		return 0, nil, err
	}

	prior := *field
	*field = value

	return prior, func() {
		*field = prior
		ds.overrideActive = false
	}, nil
}

// OverrideUserFeature temporarily replaces one numeric attribute on one user.
func (ds *Dataset) OverrideUserFeature(userID uint, feature string, value float64) (float64, RestoreFunc, error) {
	idx, err := ds.UserIndex(userID)
	if err != nil {
		return 0, nil, err
	}

	field, err := userFeatureField(&ds.users[idx], feature)
	if err != nil {
		return 0, nil, err
	}

	if err := ds.beginOverride(); err != nil {
		return 0, nil, err
	}

	prior := *field
	*field = value

	return prior, func() {
		*field = prior
		ds.overrideActive = false
	}, nil
}

// MaskInteractions temporarily zeroes the given cells of one user's row,
// used by the evaluation harness to hide held-out visits.
func (ds *Dataset) MaskInteractions(userIdx int, destIdxs []int) (RestoreFunc, error) {
	if userIdx < 0 || userIdx >= len(ds.matrix) {
		return nil, fmt.Errorf("user index %d out of range", userIdx)
	}

	if err := ds.beginOverride(); err != nil {
		return nil, err
	}

	prior := make([]float64, len(destIdxs))
	for i, di := range destIdxs {
		prior[i] = ds.matrix[userIdx][di]
		ds.matrix[userIdx][di] = 0
	}

	return func() {
		for i, di := range destIdxs {
			ds.matrix[userIdx][di] = prior[i]
		}
		ds.overrideActive = false
	}, nil
}

func destinationFeatureField(d *domain.Destination, feature string) (*float64, error) {
	switch feature {
	case "carbon_footprint_score":
		return &d.CarbonFootprintScore, nil
	case "water_consumption_score":
		return &d.WaterConsumptionScore, nil
	case "waste_management_score":
		return &d.WasteManagementScore, nil
	case "biodiversity_impact_score":
		return &d.BiodiversityImpactScore, nil
	case "local_economy_support_score":
		return &d.LocalEconomySupportScore, nil
	default:
		return nil, domain.FeatureNotFoundError{Entity: "destination", Feature: feature}
	}
}

func userFeatureField(u *domain.User, feature string) (*float64, error) {
	switch feature {
	case "sustainability_preference":
		return &u.SustainabilityPreference, nil
	default:
		return nil, domain.FeatureNotFoundError{Entity: "user", Feature: feature}
	}
}
