package destination

import (
	"context"
	"errors"
	"fmt"

	"ecoVoyage/domain"
	"ecoVoyage/pkg/logger"
)

// DestinationRepository contract interface
type DestinationRepository interface {
	Create(ctx context.Context, destination *domain.Destination) error
	FindByID(ctx context.Context, id uint64) (domain.Destination, error)
	FindAll(ctx context.Context) ([]domain.Destination, error)
	Update(ctx context.Context, destination *domain.Destination) error
	Delete(ctx context.Context, id uint64) error
}

type destinationService struct {
	destRepo DestinationRepository
}

func NewDestinationService(destRepo DestinationRepository) *destinationService {
	return &destinationService{
		destRepo: destRepo,
	}
}

func (s *destinationService) GetAllDestinations(ctx context.Context) ([]domain.Destination, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all destinations")
		return nil, fmt.Errorf("context error: %w", err)
	}

	destinations, err := s.destRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all destinations", "error", err)
		return nil, err
	}

	return destinations, nil
}

func (s *destinationService) GetDestinationByID(ctx context.Context, id uint64) (*domain.Destination, error) {
	if id == 0 {
		logger.Error("invalid destination id")
		return nil, errors.New("invalid destination id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get destination")
		return nil, fmt.Errorf("context error: %w", err)
	}

	dest, err := s.destRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find destination by id", "error", err)
		return nil, err
	}

	return &dest, nil
}

func (s *destinationService) CreateDestination(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create destination")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if dest.Name == "" {
		logger.Error("Invalid destination data: name is required")
		return nil, errors.New("destination name is required")
	}

	if err := validateSubMetrics(dest); err != nil {
		logger.Error("Invalid destination data", "error", err)
		return nil, err
	}

	if err := s.destRepo.Create(ctx, dest); err != nil {
		logger.Error("failed to create new destination", "error", err)
		return nil, fmt.Errorf("failed to create destination: %w", err)
	}

	logger.Info("destination created successfully")

	return dest, nil
}

func (s *destinationService) UpdateDestination(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating destination")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if dest.ID == 0 {
		logger.Error("Invalid destination data: ID is required")
		return nil, errors.New("destination ID is required")
	}

	if dest.Name == "" {
		logger.Error("Invalid destination data: name is required")
		return nil, errors.New("destination name is required")
	}

	if err := validateSubMetrics(dest); err != nil {
		logger.Error("Invalid destination data", "error", err)
		return nil, err
	}

	// Verify destination exists
	if _, err := s.destRepo.FindByID(ctx, dest.ID); err != nil {
		logger.Error("destination not found", "error", err)
		return nil, errors.New("destination not found")
	}

	if err := s.destRepo.Update(ctx, dest); err != nil {
		logger.Error("failed to update destination", "error", err)
		return nil, fmt.Errorf("failed to update destination: %w", err)
	}

	updated, err := s.destRepo.FindByID(ctx, dest.ID)
	if err != nil {
		logger.Error("failed to fetch updated destination", "error", err)
		return nil, fmt.Errorf("failed to fetch updated destination: %w", err)
	}

	logger.Info("destination updated success")

	return &updated, nil
}

func (s *destinationService) DeleteDestination(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid destination id when deleting destination")
		return errors.New("invalid destination id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting destination")
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.destRepo.FindByID(ctx, id); err != nil {
		logger.Error("destination not found", "error", err)
		return errors.New("destination not found")
	}

	if err := s.destRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete destination", "error", err)
		return fmt.Errorf("failed to delete destination: %w", err)
	}

	logger.Info("destination deleted success")

	return nil
}

// validateSubMetrics keeps every sustainability sub-metric on the 0-10 scale.
func validateSubMetrics(dest *domain.Destination) error {
	metrics := map[string]float64{
		"carbon_footprint_score":      dest.CarbonFootprintScore,
		"water_consumption_score":     dest.WaterConsumptionScore,
		"waste_management_score":      dest.WasteManagementScore,
		"biodiversity_impact_score":   dest.BiodiversityImpactScore,
		"local_economy_support_score": dest.LocalEconomySupportScore,
	}

	for name, v := range metrics {
		if v < 0 || v > 10 {
			return fmt.Errorf("%s must be between 0 and 10", name)
		}
	}

	return nil
}
