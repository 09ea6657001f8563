// internal/srs/engine.go
package srs

import (
	"time"

	"go_5_flash_srs/internal/model"
)

// ReviewLog は1回の評価の記録
type ReviewLog struct {
	Rating     int       `json:"rating"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// Engine は間隔反復の記憶モデルを進行させるスケジューラエンジンのインターフェース。
// 内部の数式（安定度・難易度・間隔の計算）はエンジン実装側の責務で、
// オーケストレーション層はこの契約のみに依存する。差し替え可能。
//
// score はユーザー評価そのもの (1=最低 〜 5=最高)。
// エンジンが内部でより粗い品質シグナルを使う場合の変換は実装側が行い、
// 変換は単調であること (1が最悪、5が最良、2〜4はその間)。
type Engine interface {
	// InitialState は一度も学習していないカードの初期状態を返す
	InitialState(now time.Time) model.MemorySnapshot
	// Advance は評価を適用した新しい状態とレビューログを返す。
	// 引数の snap は変更しない。score は1〜5であることを呼び出し側が保証する。
	Advance(snap model.MemorySnapshot, score int, now time.Time) (model.MemorySnapshot, ReviewLog)
}
