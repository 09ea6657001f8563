// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー (根本原因の判定用センチネル)
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource conflict")

	// 学習セッション関連のエラー
	ErrNoCards          = errors.New("no cards available for session") // カードが1枚も無い
	ErrInvalidRating    = errors.New("rating out of range")            // 評価値が1〜5の範囲外
	ErrSessionNotFound  = errors.New("study session not found")        // セッションが存在しない/所有者が異なる
	ErrCardNotInSession = errors.New("card not part of session")       // セッションに含まれないカード
)

// ErrorDetail はクライアントへ返すエラーの詳細
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はエラーコードとラップした根本原因を保持するカスタムエラー
type AppError struct {
	Detail ErrorDetail
	Err    error // errors.Is での判定用にセンチネルをラップする
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Detail.Code + ": " + e.Detail.Message + " (" + e.Err.Error() + ")"
	}
	return e.Detail.Code + ": " + e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
		Err: err,
	}
}
