//go:generate mockery --name CardStateRepository --output ./mocks --outpkg mocks --case=underscore
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

// CardStateRepository は (セッション, カード) ごとの記憶状態行へのアクセスを提供します
type CardStateRepository interface {
	// BatchCreate はセッション開始時のスナップショット行を一括登録する
	BatchCreate(ctx context.Context, tx *gorm.DB, states []*model.CardReviewState) error
	FindBySessionAndCard(ctx context.Context, db *gorm.DB, sessionID, cardID uuid.UUID) (*model.CardReviewState, error)
	Update(ctx context.Context, tx *gorm.DB, state *model.CardReviewState) error
	// ListBySession は平均評価や完了判定の再計算元となるセッション内の全行を返す
	ListBySession(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) ([]*model.CardReviewState, error)
	// FindLatestByTenant は全セッション横断でカードごとの最新状態を返す。
	// 「このカードは出題期限か」の唯一の情報源。
	FindLatestByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) (map[uuid.UUID]*model.CardReviewState, error)
}

type gormCardStateRepository struct{}

func NewGormCardStateRepository() CardStateRepository {
	return &gormCardStateRepository{}
}

func (r *gormCardStateRepository) BatchCreate(ctx context.Context, tx *gorm.DB, states []*model.CardReviewState) error {
	logger := middleware.GetLogger(ctx)
	if len(states) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Create(states)
	if result.Error != nil {
		logger.Error("Error batch creating card review states in DB",
			"error", result.Error,
			"count", len(states),
		)
		return fmt.Errorf("gormCardStateRepository.BatchCreate: %w", result.Error)
	}
	return nil
}

func (r *gormCardStateRepository) FindBySessionAndCard(ctx context.Context, db *gorm.DB, sessionID, cardID uuid.UUID) (*model.CardReviewState, error) {
	logger := middleware.GetLogger(ctx)
	var state model.CardReviewState
	result := db.WithContext(ctx).Where("session_id = ? AND card_id = ?", sessionID, cardID).First(&state)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card review state in DB",
			"error", result.Error,
			"session_id", sessionID.String(),
			"card_id", cardID.String(),
		)
		return nil, fmt.Errorf("gormCardStateRepository.FindBySessionAndCard: %w", result.Error)
	}
	return &state, nil
}

func (r *gormCardStateRepository) Update(ctx context.Context, tx *gorm.DB, state *model.CardReviewState) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Save(state)
	if result.Error != nil {
		logger.Error("Error updating card review state in DB",
			"error", result.Error,
			"session_id", state.SessionID.String(),
			"card_id", state.CardID.String(),
		)
		return fmt.Errorf("gormCardStateRepository.Update: %w", result.Error)
	}
	return nil
}

func (r *gormCardStateRepository) ListBySession(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) ([]*model.CardReviewState, error) {
	logger := middleware.GetLogger(ctx)
	var states []*model.CardReviewState
	result := db.WithContext(ctx).Where("session_id = ?", sessionID).Find(&states)
	if result.Error != nil {
		logger.Error("Error listing card review states by session in DB",
			"error", result.Error,
			"session_id", sessionID.String(),
		)
		return nil, fmt.Errorf("gormCardStateRepository.ListBySession: %w", result.Error)
	}
	return states, nil
}

func (r *gormCardStateRepository) FindLatestByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) (map[uuid.UUID]*model.CardReviewState, error) {
	logger := middleware.GetLogger(ctx)

	// 1クエリで全行を取得し、カードIDごとに最新の行へメモリ上で畳み込む。
	// 最新の判定は last_review_at、未評価行同士は行の新しさ (updated_at) で比較する。
	var states []*model.CardReviewState
	result := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("updated_at ASC").
		Find(&states)
	if result.Error != nil {
		logger.Error("Error finding latest card review states in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return nil, fmt.Errorf("gormCardStateRepository.FindLatestByTenant: %w", result.Error)
	}

	latest := make(map[uuid.UUID]*model.CardReviewState, len(states))
	for _, state := range states {
		current, ok := latest[state.CardID]
		if !ok || newerState(state, current) {
			latest[state.CardID] = state
		}
	}
	return latest, nil
}

// newerState は a が b より新しい状態かどうかを判定します
func newerState(a, b *model.CardReviewState) bool {
	switch {
	case a.LastReviewAt != nil && b.LastReviewAt != nil:
		return a.LastReviewAt.After(*b.LastReviewAt)
	case a.LastReviewAt != nil:
		return true
	case b.LastReviewAt != nil:
		return false
	default:
		return a.UpdatedAt.After(b.UpdatedAt)
	}
}
