// internal/service/study_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go_5_flash_srs/internal/config"
	"go_5_flash_srs/internal/model"
	"go_5_flash_srs/internal/repository"
	"go_5_flash_srs/internal/srs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
// テスト間の独立性のため、テストごとに名前付きのインメモリDBを使う
func setupStudyTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Tenant{},
		&model.Flashcard{},
		&model.StudySession{},
		&model.CardReviewState{},
	))
	return db
}

// stubEngine はテスト用の決定論的なスケジューラエンジン。
// 次回出題は「評価値 × 1日後」、評価3以上で review 状態になる。
type stubEngine struct{}

func (stubEngine) InitialState(now time.Time) model.MemorySnapshot {
	return model.MemorySnapshot{
		MemoryState:  model.MemoryStateNew,
		NextReviewAt: now,
	}
}

func (stubEngine) Advance(snap model.MemorySnapshot, score int, now time.Time) (model.MemorySnapshot, srs.ReviewLog) {
	next := snap
	next.ReviewCount++
	next.MemoryState = model.MemoryStateLearning
	if score >= 3 {
		next.MemoryState = model.MemoryStateReview
	}
	reviewedAt := now
	next.LastReviewAt = &reviewedAt
	next.NextReviewAt = now.Add(time.Duration(score) * 24 * time.Hour)
	return next, srs.ReviewLog{Rating: score, ReviewedAt: now}
}

func newStudyServiceForTest(db *gorm.DB, limit int) StudyService {
	cfg := &config.Config{
		App: config.AppConfig{SessionCardLimit: limit},
	}
	return NewStudyService(
		db,
		repository.NewGormFlashcardRepository(),
		repository.NewGormSessionRepository(),
		repository.NewGormCardStateRepository(),
		stubEngine{},
		cfg,
	)
}

// seedFlashcards は作成日時をずらしながらカードを登録する
func seedFlashcards(t *testing.T, db *gorm.DB, tenantID uuid.UUID, count int, base time.Time) []*model.Flashcard {
	t.Helper()
	cards := make([]*model.Flashcard, 0, count)
	for i := 0; i < count; i++ {
		card := &model.Flashcard{
			CardID:    uuid.New(),
			TenantID:  tenantID,
			Front:     fmt.Sprintf("front-%03d", i),
			Back:      fmt.Sprintf("back-%03d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(card).Error)
		cards = append(cards, card)
	}
	return cards
}

// seedPriorState は過去のセッションでの最終状態をカードに与える
func seedPriorState(t *testing.T, db *gorm.DB, tenantID, cardID uuid.UUID, nextReviewAt time.Time, lastReviewAt time.Time) {
	t.Helper()
	rating := 3
	state := &model.CardReviewState{
		SessionID: uuid.New(),
		CardID:    cardID,
		TenantID:  tenantID,
		MemorySnapshot: model.MemorySnapshot{
			Stability:    2.5,
			Difficulty:   5.0,
			ReviewCount:  1,
			MemoryState:  model.MemoryStateReview,
			LastReviewAt: &lastReviewAt,
			NextReviewAt: nextReviewAt,
		},
		LastRating: &rating,
	}
	require.NoError(t, db.Create(state).Error)
}

// --- Test StartSession ---

func Test_studyService_StartSession(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 未学習カード25枚から作成順に20枚選出", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		cards := seedFlashcards(t, db, tenantID, 25, time.Now().Add(-24*time.Hour))

		resp, err := svc.StartSession(ctx, tenantID)
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, 20, resp.Session.CardCount)
		assert.Nil(t, resp.Session.CompletedAt)
		assert.Nil(t, resp.Session.AverageRating)
		require.Len(t, resp.Cards, 20)
		// 作成日時の昇順で先頭20枚
		for i, card := range resp.Cards {
			assert.Equal(t, cards[i].CardID, card.CardID)
		}

		// 状態スナップショットも20行永続化されている
		var count int64
		require.NoError(t, db.Model(&model.CardReviewState{}).
			Where("session_id = ?", resp.Session.SessionID).Count(&count).Error)
		assert.EqualValues(t, 20, count)

		// 未学習カードの初期状態は new
		var state model.CardReviewState
		require.NoError(t, db.Where("session_id = ? AND card_id = ?", resp.Session.SessionID, cards[0].CardID).First(&state).Error)
		assert.Equal(t, model.MemoryStateNew, state.MemoryState)
		assert.Nil(t, state.LastRating)
	})

	t.Run("正常系: 期限切れ→未学習→今後分の優先順で選出", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 3)
		tenantID := uuid.New()
		now := time.Now()
		cards := seedFlashcards(t, db, tenantID, 3, now.Add(-72*time.Hour))

		// cards[2]: 期限切れ / cards[0]: 未学習 / cards[1]: 今後分
		seedPriorState(t, db, tenantID, cards[2].CardID, now.Add(-1*time.Hour), now.Add(-48*time.Hour))
		seedPriorState(t, db, tenantID, cards[1].CardID, now.Add(48*time.Hour), now.Add(-24*time.Hour))

		resp, err := svc.StartSession(ctx, tenantID)
		require.NoError(t, err)
		require.Len(t, resp.Cards, 3)

		assert.Equal(t, cards[2].CardID, resp.Cards[0].CardID, "期限切れカードが先頭")
		assert.Equal(t, cards[0].CardID, resp.Cards[1].CardID, "次に未学習カード")
		assert.Equal(t, cards[1].CardID, resp.Cards[2].CardID, "最後に今後分のカード")
	})

	t.Run("正常系: 過去の記憶状態が新しいセッションへ引き継がれる", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		now := time.Now()
		cards := seedFlashcards(t, db, tenantID, 1, now.Add(-72*time.Hour))
		seedPriorState(t, db, tenantID, cards[0].CardID, now.Add(-1*time.Hour), now.Add(-48*time.Hour))

		resp, err := svc.StartSession(ctx, tenantID)
		require.NoError(t, err)

		var state model.CardReviewState
		require.NoError(t, db.Where("session_id = ? AND card_id = ?", resp.Session.SessionID, cards[0].CardID).First(&state).Error)
		assert.Equal(t, model.MemoryStateReview, state.MemoryState)
		assert.InDelta(t, 2.5, state.Stability, 0.001)
		assert.InDelta(t, 5.0, state.Difficulty, 0.001)
		assert.Equal(t, 1, state.ReviewCount)
		// 新しいセッションでは未評価に戻る
		assert.Nil(t, state.LastRating)
	})

	t.Run("異常系: カードが1枚も無い", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)

		resp, err := svc.StartSession(ctx, uuid.New())
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, model.ErrNoCards)
	})

	t.Run("正常系: 他テナントのカードは選出されない", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		otherTenantID := uuid.New()
		seedFlashcards(t, db, otherTenantID, 5, time.Now().Add(-time.Hour))

		_, err := svc.StartSession(ctx, tenantID)
		assert.ErrorIs(t, err, model.ErrNoCards)
	})
}

// --- Test RateCard ---

func Test_studyService_RateCard(t *testing.T) {
	ctx := context.Background()

	startSession := func(t *testing.T, db *gorm.DB, svc StudyService, tenantID uuid.UUID, cardCount int) *model.StartSessionResponse {
		t.Helper()
		seedFlashcards(t, db, tenantID, cardCount, time.Now().Add(-time.Hour))
		resp, err := svc.StartSession(ctx, tenantID)
		require.NoError(t, err)
		return resp
	}

	t.Run("正常系: 評価で記憶状態が進行しLastRatingが記録される", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		resp := startSession(t, db, svc, tenantID, 2)

		state, err := svc.RateCard(ctx, tenantID, resp.Session.SessionID, resp.Cards[0].CardID, 3)
		require.NoError(t, err)
		require.NotNil(t, state.LastRating)
		assert.Equal(t, 3, *state.LastRating)
		assert.Equal(t, model.MemoryStateReview, state.MemoryState)
		assert.Equal(t, 1, state.ReviewCount)
		assert.NotNil(t, state.LastReviewAt)
	})

	t.Run("異常系: 範囲外の評価値は状態を変えずに拒否", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		resp := startSession(t, db, svc, tenantID, 1)

		for _, rating := range []int{0, 6, -1} {
			_, err := svc.RateCard(ctx, tenantID, resp.Session.SessionID, resp.Cards[0].CardID, rating)
			assert.ErrorIs(t, err, model.ErrInvalidRating, "rating=%d", rating)
		}

		// 状態は一切変わっていない
		var state model.CardReviewState
		require.NoError(t, db.Where("session_id = ? AND card_id = ?", resp.Session.SessionID, resp.Cards[0].CardID).First(&state).Error)
		assert.Nil(t, state.LastRating)
		assert.Equal(t, 0, state.ReviewCount)

		var sess model.StudySession
		require.NoError(t, db.Where("session_id = ?", resp.Session.SessionID).First(&sess).Error)
		assert.Nil(t, sess.CompletedAt)
		assert.Nil(t, sess.AverageRating)
	})

	t.Run("異常系: 存在しないセッション", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		startSession(t, db, svc, tenantID, 1)

		_, err := svc.RateCard(ctx, tenantID, uuid.New(), uuid.New(), 3)
		assert.ErrorIs(t, err, model.ErrSessionNotFound)
	})

	t.Run("異常系: 他テナントのセッションは見えない", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		resp := startSession(t, db, svc, tenantID, 1)

		_, err := svc.RateCard(ctx, uuid.New(), resp.Session.SessionID, resp.Cards[0].CardID, 3)
		assert.ErrorIs(t, err, model.ErrSessionNotFound)
	})

	t.Run("異常系: セッションに含まれないカード", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		resp := startSession(t, db, svc, tenantID, 1)

		_, err := svc.RateCard(ctx, tenantID, resp.Session.SessionID, uuid.New(), 3)
		assert.ErrorIs(t, err, model.ErrCardNotInSession)
	})

	t.Run("正常系: 全カード評価で平均評価と自動完了", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		resp := startSession(t, db, svc, tenantID, 2)

		_, err := svc.RateCard(ctx, tenantID, resp.Session.SessionID, resp.Cards[0].CardID, 3)
		require.NoError(t, err)

		// 1枚目評価後: 平均は3.0、まだ未完了
		var sess model.StudySession
		require.NoError(t, db.Where("session_id = ?", resp.Session.SessionID).First(&sess).Error)
		require.NotNil(t, sess.AverageRating)
		assert.InDelta(t, 3.0, *sess.AverageRating, 0.001)
		assert.Nil(t, sess.CompletedAt)

		_, err = svc.RateCard(ctx, tenantID, resp.Session.SessionID, resp.Cards[1].CardID, 4)
		require.NoError(t, err)

		// 2枚目評価後: 平均は3.5、自動完了
		require.NoError(t, db.Where("session_id = ?", resp.Session.SessionID).First(&sess).Error)
		require.NotNil(t, sess.AverageRating)
		assert.InDelta(t, 3.5, *sess.AverageRating, 0.001)
		assert.NotNil(t, sess.CompletedAt)
	})

	t.Run("正常系: 同一カードの再評価は上書き (最後の評価が有効)", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		resp := startSession(t, db, svc, tenantID, 2)

		_, err := svc.RateCard(ctx, tenantID, resp.Session.SessionID, resp.Cards[0].CardID, 2)
		require.NoError(t, err)
		state, err := svc.RateCard(ctx, tenantID, resp.Session.SessionID, resp.Cards[0].CardID, 5)
		require.NoError(t, err)

		assert.Equal(t, 5, *state.LastRating)
		assert.Equal(t, 2, state.ReviewCount, "エンジンは2回進行している")

		// 平均は最後の評価値で計算される (5のみ、未評価カードは分母に入らない)
		var sess model.StudySession
		require.NoError(t, db.Where("session_id = ?", resp.Session.SessionID).First(&sess).Error)
		require.NotNil(t, sess.AverageRating)
		assert.InDelta(t, 5.0, *sess.AverageRating, 0.001)
		assert.Nil(t, sess.CompletedAt, "未評価カードが残っているので未完了")
	})

	t.Run("正常系: 自動完了後の再評価で完了日時は変わらない", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		resp := startSession(t, db, svc, tenantID, 1)

		_, err := svc.RateCard(ctx, tenantID, resp.Session.SessionID, resp.Cards[0].CardID, 3)
		require.NoError(t, err)

		var before model.StudySession
		require.NoError(t, db.Where("session_id = ?", resp.Session.SessionID).First(&before).Error)
		require.NotNil(t, before.CompletedAt)

		_, err = svc.RateCard(ctx, tenantID, resp.Session.SessionID, resp.Cards[0].CardID, 5)
		require.NoError(t, err)

		var after model.StudySession
		require.NoError(t, db.Where("session_id = ?", resp.Session.SessionID).First(&after).Error)
		require.NotNil(t, after.CompletedAt)
		assert.True(t, before.CompletedAt.Equal(*after.CompletedAt))
		// 平均は再計算される
		require.NotNil(t, after.AverageRating)
		assert.InDelta(t, 5.0, *after.AverageRating, 0.001)
	})
}

// --- Test CompleteSession ---

func Test_studyService_CompleteSession(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 明示的な完了と冪等性", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		seedFlashcards(t, db, tenantID, 3, time.Now().Add(-time.Hour))
		resp, err := svc.StartSession(ctx, tenantID)
		require.NoError(t, err)

		// 一部だけ評価した状態でも完了できる
		_, err = svc.RateCard(ctx, tenantID, resp.Session.SessionID, resp.Cards[0].CardID, 4)
		require.NoError(t, err)

		first, err := svc.CompleteSession(ctx, tenantID, resp.Session.SessionID, nil)
		require.NoError(t, err)
		require.NotNil(t, first.CompletedAt)
		require.NotNil(t, first.AverageRating)
		assert.InDelta(t, 4.0, *first.AverageRating, 0.001)

		// 2回目は何も変えない
		second, err := svc.CompleteSession(ctx, tenantID, resp.Session.SessionID, nil)
		require.NoError(t, err)
		require.NotNil(t, second.CompletedAt)
		assert.True(t, first.CompletedAt.Equal(*second.CompletedAt))
	})

	t.Run("正常系: 完了日時を指定できる", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		seedFlashcards(t, db, tenantID, 1, time.Now().Add(-time.Hour))
		resp, err := svc.StartSession(ctx, tenantID)
		require.NoError(t, err)

		when := time.Now().Add(-10 * time.Minute).Truncate(time.Second)
		sess, err := svc.CompleteSession(ctx, tenantID, resp.Session.SessionID, &when)
		require.NoError(t, err)
		require.NotNil(t, sess.CompletedAt)
		assert.True(t, when.Equal(*sess.CompletedAt))
	})

	t.Run("異常系: 存在しないセッション", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)

		_, err := svc.CompleteSession(ctx, uuid.New(), uuid.New(), nil)
		assert.ErrorIs(t, err, model.ErrSessionNotFound)
	})

	t.Run("異常系: 他テナントのセッションは完了できない", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		seedFlashcards(t, db, tenantID, 1, time.Now().Add(-time.Hour))
		resp, err := svc.StartSession(ctx, tenantID)
		require.NoError(t, err)

		_, err = svc.CompleteSession(ctx, uuid.New(), resp.Session.SessionID, nil)
		assert.ErrorIs(t, err, model.ErrSessionNotFound)
	})
}

// --- Test ListSessions ---

func Test_studyService_ListSessions(t *testing.T) {
	ctx := context.Background()

	seedSessions := func(t *testing.T, db *gorm.DB, tenantID uuid.UUID, count int) []*model.StudySession {
		t.Helper()
		base := time.Now().Add(-time.Duration(count) * time.Hour)
		sessions := make([]*model.StudySession, 0, count)
		for i := 0; i < count; i++ {
			sess := &model.StudySession{
				SessionID: uuid.New(),
				TenantID:  tenantID,
				StartedAt: base.Add(time.Duration(i) * time.Hour),
				CardCount: 5,
			}
			require.NoError(t, db.Create(sess).Error)
			sessions = append(sessions, sess)
		}
		return sessions
	}

	t.Run("正常系: 開始日時の降順でページング", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		sessions := seedSessions(t, db, tenantID, 3)

		resp, err := svc.ListSessions(ctx, tenantID, model.SessionHistoryQuery{Page: 1, Limit: 2})
		require.NoError(t, err)
		require.Len(t, resp.Sessions, 2)
		assert.Equal(t, sessions[2].SessionID, resp.Sessions[0].SessionID, "最新が先頭")
		assert.Equal(t, sessions[1].SessionID, resp.Sessions[1].SessionID)
		assert.EqualValues(t, 3, resp.Pagination.Total)
		assert.Equal(t, 2, resp.Pagination.TotalPages)

		resp, err = svc.ListSessions(ctx, tenantID, model.SessionHistoryQuery{Page: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, resp.Sessions, 1)
		assert.Equal(t, sessions[0].SessionID, resp.Sessions[0].SessionID)
	})

	t.Run("正常系: 昇順ソートの指定", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		sessions := seedSessions(t, db, tenantID, 3)

		resp, err := svc.ListSessions(ctx, tenantID, model.SessionHistoryQuery{
			Page: 1, Limit: 10, SortBy: "started_at", SortOrder: "asc",
		})
		require.NoError(t, err)
		require.Len(t, resp.Sessions, 3)
		assert.Equal(t, sessions[0].SessionID, resp.Sessions[0].SessionID)
	})

	t.Run("正常系: 不正なページング・ソート指定はデフォルトに矯正", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		seedSessions(t, db, tenantID, 1)

		resp, err := svc.ListSessions(ctx, tenantID, model.SessionHistoryQuery{
			Page: -1, Limit: 9999, SortBy: "card_count; DROP TABLE study_sessions", SortOrder: "sideways",
		})
		require.NoError(t, err)
		assert.Equal(t, config.DefaultHistoryPage, resp.Pagination.Page)
		assert.Equal(t, config.MaxHistoryLimit, resp.Pagination.Limit)
		assert.Len(t, resp.Sessions, 1)
	})

	t.Run("正常系: 履歴が無いテナントは空ページ", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)

		resp, err := svc.ListSessions(ctx, uuid.New(), model.SessionHistoryQuery{})
		require.NoError(t, err)
		assert.Empty(t, resp.Sessions)
		assert.EqualValues(t, 0, resp.Pagination.Total)
		assert.Equal(t, 0, resp.Pagination.TotalPages)
	})

	t.Run("正常系: ストア障害時は空ページに縮退しエラーを返さない", func(t *testing.T) {
		db := setupStudyTestDB(t)
		svc := newStudyServiceForTest(db, 20)
		tenantID := uuid.New()
		seedSessions(t, db, tenantID, 2)

		// テーブルを落として障害を再現する
		require.NoError(t, db.Migrator().DropTable(&model.StudySession{}))

		resp, err := svc.ListSessions(ctx, tenantID, model.SessionHistoryQuery{Page: 1, Limit: 20})
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Empty(t, resp.Sessions)
		assert.EqualValues(t, 0, resp.Pagination.Total)
		assert.Equal(t, 1, resp.Pagination.Page)
		assert.Equal(t, 20, resp.Pagination.Limit)
	})
}

// 平均評価の丸め検証 (小数第2位)
func Test_studyService_AverageRatingRounding(t *testing.T) {
	ctx := context.Background()
	db := setupStudyTestDB(t)
	svc := newStudyServiceForTest(db, 20)
	tenantID := uuid.New()
	seedFlashcards(t, db, tenantID, 3, time.Now().Add(-time.Hour))

	resp, err := svc.StartSession(ctx, tenantID)
	require.NoError(t, err)

	// 1, 1, 2 → 4/3 = 1.3333... → 1.33
	ratings := []int{1, 1, 2}
	for i, rating := range ratings {
		_, err := svc.RateCard(ctx, tenantID, resp.Session.SessionID, resp.Cards[i].CardID, rating)
		require.NoError(t, err)
	}

	var sess model.StudySession
	require.NoError(t, db.Where("session_id = ?", resp.Session.SessionID).First(&sess).Error)
	require.NotNil(t, sess.AverageRating)
	assert.InDelta(t, 1.33, *sess.AverageRating, 0.0001)
	assert.NotNil(t, sess.CompletedAt)
}

// センチネルがAppError越しに判定できることの検証
func Test_studyService_ErrorWrapping(t *testing.T) {
	ctx := context.Background()
	db := setupStudyTestDB(t)
	svc := newStudyServiceForTest(db, 20)

	_, err := svc.StartSession(ctx, uuid.New())
	require.Error(t, err)

	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NO_CARDS", appErr.Detail.Code)
	assert.ErrorIs(t, err, model.ErrNoCards)
}
