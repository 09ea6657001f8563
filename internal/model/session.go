// internal/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// StudySession は1回の学習セッションを表します。
// CardCount は開始時に確定し、以後変わらない。
// CompletedAt は未完了なら nil。一度設定されたら変更しない（冪等完了）。
// AverageRating はセッション内で評価済みのカードの平均（2桁丸め）。
type StudySession struct {
	SessionID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"session_id"`
	TenantID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	StartedAt     time.Time  `gorm:"not null;index" json:"started_at"`
	CompletedAt   *time.Time `gorm:"index" json:"completed_at"`
	CardCount     int        `gorm:"not null" json:"card_count"`
	AverageRating *float64   `json:"average_rating"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}

// StartSessionResponse はセッション開始APIのレスポンスDTO。
// Cards は選出順（期限切れ→新規→今後分）のまま返す。
type StartSessionResponse struct {
	Session *StudySession `json:"session"`
	Cards   []*Flashcard  `json:"cards"`
}

// RateCardRequest は評価送信リクエストのDTO
type RateCardRequest struct {
	Rating *int `json:"rating" validate:"required"`
}

// CompleteSessionRequest は明示的なセッション完了リクエストのDTO。
// CompletedAt 省略時はサーバ時刻を使用する。
type CompleteSessionRequest struct {
	CompletedAt *time.Time `json:"completed_at"`
}

// SessionHistoryQuery はセッション履歴のページング・ソート条件
type SessionHistoryQuery struct {
	Page      int    // 1始まり
	Limit     int    // 1〜100 (超過分はクランプ)
	SortBy    string // "started_at" または "completed_at"
	SortOrder string // "asc" または "desc"
}

// Pagination はページングメタデータ
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// SessionHistoryResponse はセッション履歴APIのレスポンスDTO
type SessionHistoryResponse struct {
	Sessions   []*StudySession `json:"sessions"`
	Pagination Pagination      `json:"pagination"`
}
