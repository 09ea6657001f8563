//go:generate mockery --name FlashcardRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_flash_srs/internal/middleware"
	"go_5_flash_srs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FlashcardRepository はカードカタログ (Card Store) へのアクセスを提供します
type FlashcardRepository interface {
	Create(ctx context.Context, tx *gorm.DB, card *model.Flashcard) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, cardID uuid.UUID) (*model.Flashcard, error)
	// FindByTenant は作成日時の昇順で全カードを返す（セッション選出の前提となる並び）
	FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Flashcard, error)
	Update(ctx context.Context, tx *gorm.DB, tenantID, cardID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, tenantID, cardID uuid.UUID) error
	CheckFrontExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, front string, excludeCardID *uuid.UUID) (bool, error)
}

type gormFlashcardRepository struct{}

func NewGormFlashcardRepository() FlashcardRepository {
	return &gormFlashcardRepository{}
}

func (r *gormFlashcardRepository) Create(ctx context.Context, tx *gorm.DB, card *model.Flashcard) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(card)
	if result.Error != nil {
		logger.Error("Error creating flashcard in DB",
			"error", result.Error,
			"tenant_id", card.TenantID.String(),
		)
		return fmt.Errorf("gormFlashcardRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormFlashcardRepository) FindByID(ctx context.Context, db *gorm.DB, tenantID, cardID uuid.UUID) (*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Flashcard
	result := db.WithContext(ctx).Where("tenant_id = ? AND card_id = ?", tenantID, cardID).First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding flashcard by ID in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"card_id", cardID.String(),
		)
		return nil, fmt.Errorf("gormFlashcardRepository.FindByID: %w", result.Error)
	}
	return &card, nil
}

func (r *gormFlashcardRepository) FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Flashcard
	result := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding flashcards by tenant in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return nil, fmt.Errorf("gormFlashcardRepository.FindByTenant: %w", result.Error)
	}
	return cards, nil
}

func (r *gormFlashcardRepository) Update(ctx context.Context, tx *gorm.DB, tenantID, cardID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Flashcard{}).Where("tenant_id = ? AND card_id = ?", tenantID, cardID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating flashcard in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormFlashcardRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormFlashcardRepository) Delete(ctx context.Context, tx *gorm.DB, tenantID, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("tenant_id = ?", tenantID).Delete(&model.Flashcard{}, cardID)
	if result.Error != nil {
		logger.Error("Error deleting flashcard in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormFlashcardRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormFlashcardRepository) CheckFrontExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, front string, excludeCardID *uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.Flashcard{}).Where("tenant_id = ? AND front = ?", tenantID, front)
	if excludeCardID != nil {
		query = query.Where("card_id != ?", *excludeCardID)
	}
	result := query.Count(&count)
	if result.Error != nil {
		logger.Error("Error checking front existence in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return false, fmt.Errorf("gormFlashcardRepository.CheckFrontExists: %w", result.Error)
	}
	return count > 0, nil
}
