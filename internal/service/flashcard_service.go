// internal/service/flashcard_service.go
package service

import (
	"context"
	"errors"

	"go_5_flash_srs/internal/middleware"
	"go_5_flash_srs/internal/model"
	"go_5_flash_srs/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FlashcardService はカードカタログのCRUDを担います。
// 学習フロー本体 (StudyService) からは読み取り専用の外部コラボレータ扱い。
type FlashcardService interface {
	CreateFlashcard(ctx context.Context, tenantID uuid.UUID, req *model.PostFlashcardRequest) (*model.Flashcard, error)
	GetFlashcard(ctx context.Context, tenantID, cardID uuid.UUID) (*model.Flashcard, error)
	ListFlashcards(ctx context.Context, tenantID uuid.UUID) ([]*model.Flashcard, error)
	UpdateFlashcard(ctx context.Context, tenantID, cardID uuid.UUID, req *model.PutFlashcardRequest) (*model.Flashcard, error)
	DeleteFlashcard(ctx context.Context, tenantID, cardID uuid.UUID) error
}

type flashcardService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	cardRepo repository.FlashcardRepository
}

func NewFlashcardService(db *gorm.DB, cardRepo repository.FlashcardRepository) FlashcardService {
	return &flashcardService{
		db:       db,
		cardRepo: cardRepo,
	}
}

func (s *flashcardService) CreateFlashcard(ctx context.Context, tenantID uuid.UUID, req *model.PostFlashcardRequest) (*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	var created *model.Flashcard
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 表面の重複チェック
		exists, err := s.cardRepo.CheckFrontExists(ctx, tx, tenantID, req.Front, nil)
		if err != nil {
			logger.Error("Error checking front existence in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの作成に失敗しました。", "", err)
		}
		if exists {
			return model.NewAppError("DUPLICATE_FRONT", "同じ表面のカードが既に存在します。", "front", model.ErrConflict)
		}

		// 2. カードを作成
		card := &model.Flashcard{
			CardID:   uuid.New(),
			TenantID: tenantID,
			Front:    req.Front,
			Back:     req.Back,
		}
		if err := s.cardRepo.Create(ctx, tx, card); err != nil {
			logger.Error("Error creating flashcard in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの作成に失敗しました。", "", err)
		}

		created = card
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Flashcard created", "card_id", created.CardID)
	return created, nil
}

func (s *flashcardService) GetFlashcard(ctx context.Context, tenantID, cardID uuid.UUID) (*model.Flashcard, error) {
	card, err := s.cardRepo.FindByID(ctx, s.db, tenantID, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
	}
	return card, nil
}

func (s *flashcardService) ListFlashcards(ctx context.Context, tenantID uuid.UUID) ([]*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)
	cards, err := s.cardRepo.FindByTenant(ctx, s.db, tenantID)
	if err != nil {
		logger.Error("Error listing flashcards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カード一覧の取得に失敗しました。", "", err)
	}
	return cards, nil
}

func (s *flashcardService) UpdateFlashcard(ctx context.Context, tenantID, cardID uuid.UUID, req *model.PutFlashcardRequest) (*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "card_id", cardID)

	var updated *model.Flashcard
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 存在確認
		card, err := s.cardRepo.FindByID(ctx, tx, tenantID, cardID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
		}

		// 2. 表面を変更する場合は重複チェック
		if req.Front != card.Front {
			exists, err := s.cardRepo.CheckFrontExists(ctx, tx, tenantID, req.Front, &cardID)
			if err != nil {
				logger.Error("Error checking front existence during update", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの更新に失敗しました。", "", err)
			}
			if exists {
				return model.NewAppError("DUPLICATE_FRONT", "同じ表面のカードが既に存在します。", "front", model.ErrConflict)
			}
		}

		// 3. 更新
		updates := map[string]interface{}{
			"front": req.Front,
			"back":  req.Back,
		}
		if err := s.cardRepo.Update(ctx, tx, tenantID, cardID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error updating flashcard in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの更新に失敗しました。", "", err)
		}

		card.Front = req.Front
		card.Back = req.Back
		updated = card
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Flashcard updated")
	return updated, nil
}

func (s *flashcardService) DeleteFlashcard(ctx context.Context, tenantID, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "card_id", cardID)

	err := s.cardRepo.Delete(ctx, s.db, tenantID, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error deleting flashcard", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの削除に失敗しました。", "", err)
	}

	logger.Info("Flashcard deleted")
	return nil
}
