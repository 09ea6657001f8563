// internal/srs/flux.go
package srs

import (
	"time"

	"go_5_flash_srs/internal/model"

	"github.com/sky-flux/flux"
)

// FluxEngine は FSRS v6 実装 (github.com/sky-flux/flux) による Engine の本番アダプタ
type FluxEngine struct {
	sched *flux.Scheduler
}

// NewFluxEngine は flux スケジューラをラップした Engine を生成します。
// ゼロ値の cfg で FSRS のデフォルトパラメータが使われる。
func NewFluxEngine(cfg flux.SchedulerConfig) (*FluxEngine, error) {
	sched, err := flux.NewScheduler(cfg)
	if err != nil {
		return nil, err
	}
	return &FluxEngine{sched: sched}, nil
}

func (e *FluxEngine) InitialState(now time.Time) model.MemorySnapshot {
	// 未学習カードはオーケストレーション層では "new"。
	// flux 上の Learning 状態への具体化は初回 Advance 時に行う。
	return model.MemorySnapshot{
		MemoryState:  model.MemoryStateNew,
		NextReviewAt: now,
	}
}

func (e *FluxEngine) Advance(snap model.MemorySnapshot, score int, now time.Time) (model.MemorySnapshot, ReviewLog) {
	card := e.toCard(snap)
	prevState := card.State

	rating := ratingFromScore(score)
	updated, _ := e.sched.ReviewCard(card, rating, now)

	next := model.MemorySnapshot{
		MemoryState:  stateFromFlux(updated.State),
		LearningStep: updated.Step,
		NextReviewAt: updated.Due,
		ReviewCount:  snap.ReviewCount + 1,
		LapseCount:   snap.LapseCount,
	}
	if updated.Stability != nil {
		next.Stability = *updated.Stability
	}
	if updated.Difficulty != nil {
		next.Difficulty = *updated.Difficulty
	}
	if snap.LastReviewAt != nil {
		next.ElapsedDays = now.Sub(*snap.LastReviewAt).Hours() / 24.0
	}
	next.ScheduledDays = updated.Due.Sub(now).Hours() / 24.0
	reviewedAt := now
	next.LastReviewAt = &reviewedAt

	// 長期復習中のカードを忘れた場合のみ忘却回数を加算する
	if prevState == flux.Review && rating == flux.Again {
		next.LapseCount = snap.LapseCount + 1
	}

	return next, ReviewLog{Rating: score, ReviewedAt: now}
}

// toCard はスナップショットを flux のカードへ復元します
func (e *FluxEngine) toCard(snap model.MemorySnapshot) flux.Card {
	if snap.MemoryState == model.MemoryStateNew || snap.ReviewCount == 0 {
		return flux.NewCard(0)
	}

	card := flux.Card{
		State:      stateToFlux(snap.MemoryState),
		Step:       snap.LearningStep,
		Due:        snap.NextReviewAt,
		LastReview: snap.LastReviewAt,
	}
	stability := snap.Stability
	difficulty := snap.Difficulty
	card.Stability = &stability
	card.Difficulty = &difficulty
	return card
}

// ratingFromScore は1〜5のユーザー評価を flux の評価へ単調に変換します。
// 境界値: 1→Again, 2→Hard, 3→Good, 4→Good, 5→Easy。
func ratingFromScore(score int) flux.Rating {
	switch {
	case score <= 1:
		return flux.Again
	case score == 2:
		return flux.Hard
	case score <= 4:
		return flux.Good
	default:
		return flux.Easy
	}
}

func stateToFlux(s model.MemoryState) flux.State {
	switch s {
	case model.MemoryStateReview:
		return flux.Review
	case model.MemoryStateRelearning:
		return flux.Relearning
	default:
		return flux.Learning
	}
}

func stateFromFlux(s flux.State) model.MemoryState {
	switch s {
	case flux.Review:
		return model.MemoryStateReview
	case flux.Relearning:
		return model.MemoryStateRelearning
	default:
		return model.MemoryStateLearning
	}
}
