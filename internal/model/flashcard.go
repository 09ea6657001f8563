// internal/model/flashcard.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Flashcard は表裏1組の学習カードを表します
type Flashcard struct {
	CardID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"card_id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Front     string         `gorm:"not null" json:"front"` // 問題面
	Back      string         `gorm:"not null" json:"back"`  // 解答面
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (Flashcard) TableName() string {
	return "flashcards"
}

// カード作成リクエストDTO
type PostFlashcardRequest struct {
	Front string `json:"front" validate:"required,max=2000"`
	Back  string `json:"back" validate:"required,max=2000"`
}

// カード更新（全体）リクエストDTO
type PutFlashcardRequest struct {
	Front string `json:"front" validate:"required,max=2000"`
	Back  string `json:"back" validate:"required,max=2000"`
}
