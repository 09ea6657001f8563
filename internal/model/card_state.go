// internal/model/card_state.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// MemoryState は記憶モデル上のカードの状態
type MemoryState string

const (
	MemoryStateNew        MemoryState = "new"        // 未学習
	MemoryStateLearning   MemoryState = "learning"   // 初回学習中
	MemoryStateReview     MemoryState = "review"     // 長期復習サイクル
	MemoryStateRelearning MemoryState = "relearning" // 忘却後の再学習中
)

// MemorySnapshot はスケジューラエンジンが進行させる記憶モデルの状態一式。
// CardReviewState に埋め込んで1行として永続化する。
type MemorySnapshot struct {
	Stability     float64     `gorm:"not null;default:0" json:"stability"`
	Difficulty    float64     `gorm:"not null;default:0" json:"difficulty"`
	ElapsedDays   float64     `gorm:"not null;default:0" json:"elapsed_days"`
	ScheduledDays float64     `gorm:"not null;default:0" json:"scheduled_days"`
	ReviewCount   int         `gorm:"not null;default:0" json:"review_count"`
	LapseCount    int         `gorm:"not null;default:0" json:"lapse_count"`
	MemoryState   MemoryState `gorm:"type:varchar(16);not null;default:'new'" json:"memory_state"`
	LearningStep  *int        `json:"-"` // 学習ステップ途中のカードの引き継ぎ用
	LastReviewAt  *time.Time  `json:"last_review_at"`
	NextReviewAt  time.Time   `gorm:"not null;index" json:"next_review_at"`
}

// CardReviewState は (セッション, カード) ごとの記憶モデルのスナップショット。
// セッション開始時に過去の最新状態を複製して作成し、評価時のみ更新される。
type CardReviewState struct {
	SessionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"session_id"`
	CardID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"card_id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`

	MemorySnapshot `gorm:"embedded"`

	// セッション内で評価されるまで nil。評価値は1〜5。
	LastRating *int      `json:"last_rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Card *Flashcard `gorm:"foreignKey:CardID;references:CardID" json:"-"`
}

func (CardReviewState) TableName() string {
	return "session_card_states"
}
