package postgres

import (
	"context"
	"errors"
	"fmt"

	"ecoVoyage/domain"

	"gorm.io/gorm"
)

type DestinationRepository struct {
	DB *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) *DestinationRepository {
	return &DestinationRepository{
		DB: db,
	}
}

func (r *DestinationRepository) Create(ctx context.Context, dest *domain.Destination) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(dest).Error; err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	return nil
}

func (r *DestinationRepository) FindByID(ctx context.Context, id uint64) (domain.Destination, error) {
	if err := ctx.Err(); err != nil {
		return domain.Destination{}, fmt.Errorf("context error: %w", err)
	}

	var dest domain.Destination

	err := r.DB.WithContext(ctx).First(&dest, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Destination{}, errors.New("destination not found")
		}
		return domain.Destination{}, fmt.Errorf("failed to find destination: %w", err)
	}

	return dest, nil
}

func (r *DestinationRepository) FindAll(ctx context.Context) ([]domain.Destination, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var destinations []domain.Destination
	// Stable ordering keeps matrix column assignment deterministic across loads
	err := r.DB.WithContext(ctx).Order("id asc").Find(&destinations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find destinations: %w", err)
	}

	return destinations, nil
}

func (r *DestinationRepository) Update(ctx context.Context, dest *domain.Destination) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var existing domain.Destination
	if err := r.DB.WithContext(ctx).First(&existing, dest.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("destination not found")
		}
		return fmt.Errorf("failed to find destination: %w", err)
	}

	updateData := map[string]interface{}{
		"name":                        dest.Name,
		"country":                     dest.Country,
		"landscape_type":              dest.LandscapeType,
		"popular_activities":          dest.PopularActivities,
		"carbon_footprint_score":      dest.CarbonFootprintScore,
		"water_consumption_score":     dest.WaterConsumptionScore,
		"waste_management_score":      dest.WasteManagementScore,
		"biodiversity_impact_score":   dest.BiodiversityImpactScore,
		"local_economy_support_score": dest.LocalEconomySupportScore,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Destination{}).Where("id = ?", dest.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update destination: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("destination not found or already deleted")
	}

	return nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Destination{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete destination: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("destination not found or already deleted")
	}

	return nil
}
