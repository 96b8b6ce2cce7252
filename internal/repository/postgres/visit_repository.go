package postgres

import (
	"context"
	"fmt"

	"ecoVoyage/domain"

	"gorm.io/gorm"
)

// VisitRepository stores the append-only visit log that feeds the
// interaction matrix.
type VisitRepository struct {
	DB *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{
		DB: db,
	}
}

func (r *VisitRepository) Save(ctx context.Context, visit *domain.Visit) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(visit).Error; err != nil {
		return fmt.Errorf("failed to save visit: %w", err)
	}

	return nil
}

func (r *VisitRepository) FindAll(ctx context.Context) ([]domain.Visit, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var visits []domain.Visit
	if err := r.DB.WithContext(ctx).Order("id asc").Find(&visits).Error; err != nil {
		return nil, fmt.Errorf("failed to find visits: %w", err)
	}

	return visits, nil
}

func (r *VisitRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Visit, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var visits []domain.Visit
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&visits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find visits for user %d: %w", userID, err)
	}

	return visits, nil
}
