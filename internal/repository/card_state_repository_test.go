// internal/repository/card_state_repository_test.go
package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go_5_flash_srs/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStateTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Flashcard{}, &model.StudySession{}, &model.CardReviewState{}))
	return db
}

func insertState(t *testing.T, db *gorm.DB, tenantID, cardID uuid.UUID, lastReviewAt *time.Time, nextReviewAt time.Time) *model.CardReviewState {
	t.Helper()
	state := &model.CardReviewState{
		SessionID: uuid.New(),
		CardID:    cardID,
		TenantID:  tenantID,
		MemorySnapshot: model.MemorySnapshot{
			MemoryState:  model.MemoryStateReview,
			LastReviewAt: lastReviewAt,
			NextReviewAt: nextReviewAt,
		},
	}
	require.NoError(t, db.Create(state).Error)
	return state
}

func Test_gormCardStateRepository_FindLatestByTenant(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCardStateRepository()

	t.Run("正常系: カードごとに最新の評価済み行が選ばれる", func(t *testing.T) {
		db := setupStateTestDB(t)
		tenantID := uuid.New()
		cardID := uuid.New()
		now := time.Now()

		old := now.Add(-72 * time.Hour)
		recent := now.Add(-1 * time.Hour)
		insertState(t, db, tenantID, cardID, &old, now.Add(-48*time.Hour))
		want := insertState(t, db, tenantID, cardID, &recent, now.Add(24*time.Hour))

		latest, err := repo.FindLatestByTenant(ctx, db, tenantID)
		require.NoError(t, err)
		require.Contains(t, latest, cardID)
		assert.Equal(t, want.SessionID, latest[cardID].SessionID)
		assert.True(t, latest[cardID].NextReviewAt.After(now))
	})

	t.Run("正常系: 評価済み行は未評価のスナップショットより優先される", func(t *testing.T) {
		db := setupStateTestDB(t)
		tenantID := uuid.New()
		cardID := uuid.New()
		now := time.Now()

		reviewed := now.Add(-24 * time.Hour)
		want := insertState(t, db, tenantID, cardID, &reviewed, now.Add(24*time.Hour))
		// その後のセッションで未評価のまま放置されたスナップショット
		insertState(t, db, tenantID, cardID, nil, now.Add(24*time.Hour))

		latest, err := repo.FindLatestByTenant(ctx, db, tenantID)
		require.NoError(t, err)
		require.Contains(t, latest, cardID)
		assert.Equal(t, want.SessionID, latest[cardID].SessionID)
	})

	t.Run("正常系: 未評価行同士は行の新しさで比較", func(t *testing.T) {
		db := setupStateTestDB(t)
		tenantID := uuid.New()
		cardID := uuid.New()
		now := time.Now()

		first := insertState(t, db, tenantID, cardID, nil, now)
		require.NoError(t, db.Model(first).Update("updated_at", now.Add(-2*time.Hour)).Error)
		second := insertState(t, db, tenantID, cardID, nil, now)
		require.NoError(t, db.Model(second).Update("updated_at", now.Add(-1*time.Hour)).Error)

		latest, err := repo.FindLatestByTenant(ctx, db, tenantID)
		require.NoError(t, err)
		require.Contains(t, latest, cardID)
		assert.Equal(t, second.SessionID, latest[cardID].SessionID)
	})

	t.Run("正常系: 他テナントの行は含まれない", func(t *testing.T) {
		db := setupStateTestDB(t)
		tenantID := uuid.New()
		now := time.Now()
		insertState(t, db, uuid.New(), uuid.New(), nil, now)

		latest, err := repo.FindLatestByTenant(ctx, db, tenantID)
		require.NoError(t, err)
		assert.Empty(t, latest)
	})
}

func Test_gormCardStateRepository_FindBySessionAndCard(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCardStateRepository()
	db := setupStateTestDB(t)
	tenantID := uuid.New()
	cardID := uuid.New()
	state := insertState(t, db, tenantID, cardID, nil, time.Now())

	t.Run("正常系: 取得成功", func(t *testing.T) {
		got, err := repo.FindBySessionAndCard(ctx, db, state.SessionID, cardID)
		require.NoError(t, err)
		assert.Equal(t, state.SessionID, got.SessionID)
		assert.Equal(t, cardID, got.CardID)
	})

	t.Run("異常系: セッションに存在しないカード", func(t *testing.T) {
		_, err := repo.FindBySessionAndCard(ctx, db, state.SessionID, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
