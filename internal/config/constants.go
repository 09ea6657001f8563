// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "FlashSRS"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort       = ":8080"
	DefaultLogLevel         = "info"
	DefaultJWTExpiryMinutes = 60

	// 1セッションに選出するカード枚数の上限。
	// 選出アルゴリズム側からは必ず設定値 (App.SessionCardLimit) を参照すること。
	DefaultSessionCardLimit = 20
)

// セッション履歴のページング
const (
	DefaultHistoryPage  = 1
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)
