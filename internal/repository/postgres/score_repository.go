package postgres

import (
	"context"
	"fmt"

	"ecoVoyage/domain"

	"gorm.io/gorm"
)

// ScoreRepository reads externally trained (user, destination) scores.
// Rows are written by an offline training job, never by this service.
type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{
		DB: db,
	}
}

func (r *ScoreRepository) FindAll(ctx context.Context) ([]domain.PrecomputedScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var scores []domain.PrecomputedScore
	if err := r.DB.WithContext(ctx).Find(&scores).Error; err != nil {
		return nil, fmt.Errorf("failed to find precomputed scores: %w", err)
	}

	return scores, nil
}

func (r *ScoreRepository) FindByUser(ctx context.Context, userID uint) ([]domain.PrecomputedScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var scores []domain.PrecomputedScore
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find scores for user %d: %w", userID, err)
	}

	return scores, nil
}
