//go:generate mockery --name SessionRepository --output ./mocks --outpkg mocks --case=underscore
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

// SessionRepository は学習セッション行へのアクセスを提供します
type SessionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, session *model.StudySession) error
	// FindByID は所有者スコープで検索する。他人のセッションは ErrNotFound になる。
	FindByID(ctx context.Context, db *gorm.DB, sessionID, tenantID uuid.UUID) (*model.StudySession, error)
	Update(ctx context.Context, tx *gorm.DB, session *model.StudySession) error
	// Query はページングとソートを適用したセッション一覧と総件数を返す
	Query(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, q model.SessionHistoryQuery) ([]*model.StudySession, int64, error)
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

func (r *gormSessionRepository) Create(ctx context.Context, tx *gorm.DB, session *model.StudySession) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(session)
	if result.Error != nil {
		logger.Error("Error creating study session in DB",
			"error", result.Error,
			"tenant_id", session.TenantID.String(),
		)
		return fmt.Errorf("gormSessionRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormSessionRepository) FindByID(ctx context.Context, db *gorm.DB, sessionID, tenantID uuid.UUID) (*model.StudySession, error) {
	logger := middleware.GetLogger(ctx)
	var session model.StudySession
	result := db.WithContext(ctx).Where("session_id = ? AND tenant_id = ?", sessionID, tenantID).First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding study session by ID in DB",
			"error", result.Error,
			"session_id", sessionID.String(),
			"tenant_id", tenantID.String(),
		)
		return nil, fmt.Errorf("gormSessionRepository.FindByID: %w", result.Error)
	}
	return &session, nil
}

func (r *gormSessionRepository) Update(ctx context.Context, tx *gorm.DB, session *model.StudySession) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Save(session)
	if result.Error != nil {
		logger.Error("Error updating study session in DB",
			"error", result.Error,
			"session_id", session.SessionID.String(),
		)
		return fmt.Errorf("gormSessionRepository.Update: %w", result.Error)
	}
	return nil
}

func (r *gormSessionRepository) Query(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, q model.SessionHistoryQuery) ([]*model.StudySession, int64, error) {
	logger := middleware.GetLogger(ctx)

	var total int64
	if result := db.WithContext(ctx).Model(&model.StudySession{}).Where("tenant_id = ?", tenantID).Count(&total); result.Error != nil {
		logger.Error("Error counting study sessions in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return nil, 0, fmt.Errorf("gormSessionRepository.Query: %w", result.Error)
	}

	// ソート対象カラムはホワイトリストで限定する (SQLインジェクション対策)
	sortColumn := "started_at"
	if q.SortBy == "completed_at" {
		sortColumn = "completed_at"
	}
	direction := "DESC"
	if q.SortOrder == "asc" {
		direction = "ASC"
	}

	var sessions []*model.StudySession
	result := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order(sortColumn + " " + direction).
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&sessions)
	if result.Error != nil {
		logger.Error("Error querying study sessions in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return nil, 0, fmt.Errorf("gormSessionRepository.Query: %w", result.Error)
	}

	return sessions, total, nil
}
