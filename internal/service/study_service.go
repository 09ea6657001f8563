// internal/service/study_service.go
package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"go_5_flash_srs/internal/config"
	"go_5_flash_srs/internal/middleware"
	"go_5_flash_srs/internal/model"
	"go_5_flash_srs/internal/repository"
	"go_5_flash_srs/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudyService は学習セッションのオーケストレーション（カード選出・評価・完了・履歴）を担います
type StudyService interface {
	StartSession(ctx context.Context, tenantID uuid.UUID) (*model.StartSessionResponse, error)
	RateCard(ctx context.Context, tenantID, sessionID, cardID uuid.UUID, rating int) (*model.CardReviewState, error)
	CompleteSession(ctx context.Context, tenantID, sessionID uuid.UUID, completedAt *time.Time) (*model.StudySession, error)
	ListSessions(ctx context.Context, tenantID uuid.UUID, query model.SessionHistoryQuery) (*model.SessionHistoryResponse, error)
}

type studyService struct {
	db        *gorm.DB
	cardRepo  repository.FlashcardRepository
	sessRepo  repository.SessionRepository
	stateRepo repository.CardStateRepository
	engine    srs.Engine
	cfg       *config.Config
}

func NewStudyService(db *gorm.DB, cardRepo repository.FlashcardRepository, sessRepo repository.SessionRepository, stateRepo repository.CardStateRepository, engine srs.Engine, cfg *config.Config) StudyService {
	return &studyService{
		db:        db,
		cardRepo:  cardRepo,
		sessRepo:  sessRepo,
		stateRepo: stateRepo,
		engine:    engine,
		cfg:       cfg,
	}
}

// StartSession は新しい学習セッションを開始します。
// カードは 期限切れ(Due) → 未学習(New) → 今後分(Upcoming) の優先順で上限枚数まで選出する。
// 期限切れの消化を最優先し、未学習は滞留が無いときだけ導入、今後分は
// セッションが空にならないための最後の埋め草、という方針。
func (s *studyService) StartSession(ctx context.Context, tenantID uuid.UUID) (*model.StartSessionResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)
	now := time.Now()

	// 1. 全カードを作成日時の昇順で取得
	cards, err := s.cardRepo.FindByTenant(ctx, s.db, tenantID)
	if err != nil {
		logger.Error("Failed to load flashcards for session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
	}
	if len(cards) == 0 {
		logger.Info("No flashcards registered, cannot start session")
		return nil, model.NewAppError("NO_CARDS", "学習できるカードがありません。", "", model.ErrNoCards)
	}

	// 2. 全セッション横断のカードごとの最新状態を取得 (出題期限の判定元)
	latest, err := s.stateRepo.FindLatestByTenant(ctx, s.db, tenantID)
	if err != nil {
		logger.Error("Failed to load latest card states", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習状態の取得に失敗しました。", "", err)
	}

	// 3. Due / New / Upcoming の3バケットに分配する
	var due, fresh, upcoming []*model.Flashcard
	for _, card := range cards {
		state, ok := latest[card.CardID]
		switch {
		case !ok:
			fresh = append(fresh, card) // 未学習 (作成日時の昇順のまま)
		case !state.NextReviewAt.After(now):
			due = append(due, card)
		default:
			upcoming = append(upcoming, card)
		}
	}
	// Due は最も延滞しているものから、Upcoming は期限が近いものから
	sort.SliceStable(due, func(i, j int) bool {
		return latest[due[i].CardID].NextReviewAt.Before(latest[due[j].CardID].NextReviewAt)
	})
	sort.SliceStable(upcoming, func(i, j int) bool {
		return latest[upcoming[i].CardID].NextReviewAt.Before(latest[upcoming[j].CardID].NextReviewAt)
	})

	// 4. 優先順に上限枚数まで詰める
	limit := s.cfg.App.SessionCardLimit
	selected := make([]*model.Flashcard, 0, limit)
	for _, bucket := range [][]*model.Flashcard{due, fresh, upcoming} {
		for _, card := range bucket {
			if len(selected) >= limit {
				break
			}
			selected = append(selected, card)
		}
	}

	// 5. 防御的チェック (ステップ4がUpcomingまで含む以上ここには来ないはずだが契約として残す)
	if len(selected) == 0 {
		logger.Warn("Card selection yielded empty pool")
		return nil, model.NewAppError("NO_CARDS", "学習できるカードがありません。", "", model.ErrNoCards)
	}

	// 6-8. セッションと状態スナップショットを作成して一括永続化
	session := &model.StudySession{
		SessionID: uuid.New(),
		TenantID:  tenantID,
		StartedAt: now,
		CardCount: len(selected),
	}

	states := make([]*model.CardReviewState, 0, len(selected))
	for _, card := range selected {
		state := &model.CardReviewState{
			SessionID: session.SessionID,
			CardID:    card.CardID,
			TenantID:  tenantID,
		}
		if prior, ok := latest[card.CardID]; ok {
			// 過去の記憶状態をそのまま引き継ぐ。LastRating は新しいセッションでは未評価に戻る。
			state.MemorySnapshot = cloneSnapshot(prior.MemorySnapshot)
		} else {
			state.MemorySnapshot = s.engine.InitialState(now)
		}
		states = append(states, state)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.sessRepo.Create(ctx, tx, session); err != nil {
			return err
		}
		return s.stateRepo.BatchCreate(ctx, tx, states)
	})
	if err != nil {
		logger.Error("Failed to persist new study session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの作成に失敗しました。", "", err)
	}

	logger.Info("Study session started",
		"session_id", session.SessionID,
		"card_count", session.CardCount,
		"due", len(due), "new", len(fresh), "upcoming", len(upcoming),
	)

	// 返すカード一覧は選出順 (作成順ではない)
	return &model.StartSessionResponse{Session: session, Cards: selected}, nil
}

// RateCard はセッション内の1枚のカードへの評価を記録し、記憶状態を進行させます。
// セッション内の全カードが評価済みになったら completed_at を自動設定する。
func (s *studyService) RateCard(ctx context.Context, tenantID, sessionID, cardID uuid.UUID, rating int) (*model.CardReviewState, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "session_id", sessionID, "card_id", cardID)

	// 1. 評価値の検証。状態に触れる前に弾く。
	if rating < 1 || rating > 5 {
		return nil, model.NewAppError("INVALID_RATING", "評価は1〜5で指定してください。", "rating", model.ErrInvalidRating)
	}

	// 2. セッションの解決 (所有者スコープ)
	session, err := s.sessRepo.FindByID(ctx, s.db, sessionID, tenantID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SESSION_NOT_FOUND", "セッションが見つかりません。", "", model.ErrSessionNotFound)
		}
		logger.Error("Failed to load study session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの取得に失敗しました。", "", err)
	}

	// 3. セッション内のカード状態の解決
	state, err := s.stateRepo.FindBySessionAndCard(ctx, s.db, sessionID, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("CARD_NOT_IN_SESSION", "このカードはセッションに含まれていません。", "", model.ErrCardNotInSession)
		}
		logger.Error("Failed to load card review state", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カード状態の取得に失敗しました。", "", err)
	}

	// 4. スケジューラエンジンで記憶状態を進行させる (同期・CPUバウンド)
	now := time.Now()
	snapshot, _ := s.engine.Advance(state.MemorySnapshot, rating, now)
	state.MemorySnapshot = snapshot
	state.LastRating = &rating

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 5. カード行の永続化
		if err := s.stateRepo.Update(ctx, tx, state); err != nil {
			return err
		}

		// 6. 平均評価は行から常に再計算する (加算式にしない。導出値はドリフトさせない)
		states, err := s.stateRepo.ListBySession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		var sum, rated int
		for _, row := range states {
			if row.LastRating != nil {
				sum += *row.LastRating
				rated++
			}
		}
		if rated > 0 {
			avg := math.Round(float64(sum)/float64(rated)*100) / 100
			session.AverageRating = &avg
		}

		// 7. 全カード評価済みなら自動完了 (設定済みなら触らない: 冪等)
		if rated >= session.CardCount && session.CompletedAt == nil {
			completedAt := now
			session.CompletedAt = &completedAt
			logger.Info("All cards rated, auto-completing session")
		}

		// 8. セッション行の永続化
		return s.sessRepo.Update(ctx, tx, session)
	})
	if err != nil {
		logger.Error("Failed to persist rating", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "評価の保存に失敗しました。", "", err)
	}

	logger.Info("Card rated", "rating", rating, "memory_state", state.MemoryState, "next_review_at", state.NextReviewAt)
	return state, nil
}

// CompleteSession はセッションを明示的に完了させます。
// 既に完了している場合は何もせずそのまま返す (冪等)。
func (s *studyService) CompleteSession(ctx context.Context, tenantID, sessionID uuid.UUID, completedAt *time.Time) (*model.StudySession, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "session_id", sessionID)

	session, err := s.sessRepo.FindByID(ctx, s.db, sessionID, tenantID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SESSION_NOT_FOUND", "セッションが見つかりません。", "", model.ErrSessionNotFound)
		}
		logger.Error("Failed to load study session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの取得に失敗しました。", "", err)
	}

	if session.CompletedAt != nil {
		return session, nil
	}

	when := time.Now()
	if completedAt != nil {
		when = *completedAt
	}
	session.CompletedAt = &when

	if err := s.sessRepo.Update(ctx, s.db, session); err != nil {
		logger.Error("Failed to persist session completion", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの完了に失敗しました。", "", err)
	}

	logger.Info("Study session completed", "completed_at", when)
	return session, nil
}

// ListSessions はセッション履歴をページングして返します。
// 履歴は学習フローに必須ではない補助機能のため、ストア障害時は
// エラーを伝播させず空ページに縮退する。
func (s *studyService) ListSessions(ctx context.Context, tenantID uuid.UUID, query model.SessionHistoryQuery) (*model.SessionHistoryResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	if query.Page < 1 {
		query.Page = config.DefaultHistoryPage
	}
	if query.Limit < 1 {
		query.Limit = config.DefaultHistoryLimit
	}
	if query.Limit > config.MaxHistoryLimit {
		query.Limit = config.MaxHistoryLimit
	}
	if query.SortBy != "started_at" && query.SortBy != "completed_at" {
		query.SortBy = "started_at"
	}
	if query.SortOrder != "asc" && query.SortOrder != "desc" {
		query.SortOrder = "desc"
	}

	sessions, total, err := s.sessRepo.Query(ctx, s.db, tenantID, query)
	if err != nil {
		logger.Warn("Failed to query session history, degrading to empty page", "error", err)
		return &model.SessionHistoryResponse{
			Sessions: []*model.StudySession{},
			Pagination: model.Pagination{
				Page:  query.Page,
				Limit: query.Limit,
			},
		}, nil
	}

	if sessions == nil {
		sessions = []*model.StudySession{}
	}
	totalPages := int((total + int64(query.Limit) - 1) / int64(query.Limit))

	return &model.SessionHistoryResponse{
		Sessions: sessions,
		Pagination: model.Pagination{
			Page:       query.Page,
			Limit:      query.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// cloneSnapshot はポインタフィールドを共有しない複製を返します
func cloneSnapshot(snap model.MemorySnapshot) model.MemorySnapshot {
	out := snap
	if snap.LearningStep != nil {
		v := *snap.LearningStep
		out.LearningStep = &v
	}
	if snap.LastReviewAt != nil {
		v := *snap.LastReviewAt
		out.LastReviewAt = &v
	}
	return out
}
