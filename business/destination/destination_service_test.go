package destination

import (
	"context"
	"errors"
	"testing"

	"ecoVoyage/domain"
)

type fakeDestRepo struct {
	dests  map[uint64]domain.Destination
	nextID uint64
}

func newFakeDestRepo() *fakeDestRepo {
	return &fakeDestRepo{dests: make(map[uint64]domain.Destination), nextID: 1}
}

func (r *fakeDestRepo) Create(ctx context.Context, d *domain.Destination) error {
	d.ID = r.nextID
	r.nextID++
	r.dests[d.ID] = *d
	return nil
}

func (r *fakeDestRepo) FindByID(ctx context.Context, id uint64) (domain.Destination, error) {
	d, ok := r.dests[id]
	if !ok {
		return domain.Destination{}, errors.New("destination not found")
	}
	return d, nil
}

func (r *fakeDestRepo) FindAll(ctx context.Context) ([]domain.Destination, error) {
	out := make([]domain.Destination, 0, len(r.dests))
	for _, d := range r.dests {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDestRepo) Update(ctx context.Context, d *domain.Destination) error {
	if _, ok := r.dests[d.ID]; !ok {
		return errors.New("destination not found")
	}
	r.dests[d.ID] = *d
	return nil
}

func (r *fakeDestRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := r.dests[id]; !ok {
		return errors.New("destination not found")
	}
	delete(r.dests, id)
	return nil
}

func validDestination() *domain.Destination {
	return &domain.Destination{
		Name:                     "Fjordheim",
		Country:                  "Norway",
		CarbonFootprintScore:     8,
		WaterConsumptionScore:    7,
		WasteManagementScore:     9,
		BiodiversityImpactScore:  8,
		LocalEconomySupportScore: 6,
	}
}

func TestCreateDestination(t *testing.T) {
	svc := NewDestinationService(newFakeDestRepo())

	created, err := svc.CreateDestination(context.Background(), validDestination())
	if err != nil {
		t.Fatalf("CreateDestination: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("no id assigned")
	}

	got, err := svc.GetDestinationByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetDestinationByID: %v", err)
	}
	if got.Name != "Fjordheim" {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestCreateDestinationValidation(t *testing.T) {
	svc := NewDestinationService(newFakeDestRepo())

	noName := validDestination()
	noName.Name = ""
	if _, err := svc.CreateDestination(context.Background(), noName); err == nil {
		t.Fatal("expected error for missing name")
	}

	badMetric := validDestination()
	badMetric.CarbonFootprintScore = 11
	if _, err := svc.CreateDestination(context.Background(), badMetric); err == nil {
		t.Fatal("expected error for out-of-range sub-metric")
	}

	negative := validDestination()
	negative.WasteManagementScore = -1
	if _, err := svc.CreateDestination(context.Background(), negative); err == nil {
		t.Fatal("expected error for negative sub-metric")
	}
}

func TestUpdateDestination(t *testing.T) {
	svc := NewDestinationService(newFakeDestRepo())

	created, err := svc.CreateDestination(context.Background(), validDestination())
	if err != nil {
		t.Fatalf("CreateDestination: %v", err)
	}

	created.WasteManagementScore = 10
	updated, err := svc.UpdateDestination(context.Background(), created)
	if err != nil {
		t.Fatalf("UpdateDestination: %v", err)
	}
	if updated.WasteManagementScore != 10 {
		t.Fatalf("waste score = %g, want 10", updated.WasteManagementScore)
	}

	missing := validDestination()
	missing.ID = 999
	if _, err := svc.UpdateDestination(context.Background(), missing); err == nil {
		t.Fatal("expected error updating a missing destination")
	}
}

func TestDeleteDestination(t *testing.T) {
	svc := NewDestinationService(newFakeDestRepo())

	created, err := svc.CreateDestination(context.Background(), validDestination())
	if err != nil {
		t.Fatalf("CreateDestination: %v", err)
	}

	if err := svc.DeleteDestination(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteDestination: %v", err)
	}
	if err := svc.DeleteDestination(context.Background(), created.ID); err == nil {
		t.Fatal("expected error deleting a missing destination")
	}
	if err := svc.DeleteDestination(context.Background(), 0); err == nil {
		t.Fatal("expected error for id 0")
	}
}
