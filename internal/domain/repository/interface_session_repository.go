package repository

import (
	"context"
	"errors"

	"WeatherWise-App/internal/domain/model"
)

// ErrSessionNotFound はセッションが存在しない（または期限切れ）ことを表す
var ErrSessionNotFound = errors.New("セッションが見つかりません")

// SessionRepository はセッション状態のスナップショットを保存するリポジトリインターフェース
type SessionRepository interface {
	// Save はスナップショットを保存する（同じセッション・種類は上書き）
	Save(ctx context.Context, snapshot *model.SessionSnapshot) error

	// Get はスナップショットを取得する。存在しない場合はErrSessionNotFoundを返す
	Get(ctx context.Context, sessionID string, kind model.SessionKind) (*model.SessionSnapshot, error)
}
