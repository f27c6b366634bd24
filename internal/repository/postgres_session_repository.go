package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/domain/repository"
	"WeatherWise-App/internal/infrastructure/database"
)

// timeNow はテストで差し替え可能な時計
var timeNow = time.Now

const createSessionSnapshotsTable = `
CREATE TABLE IF NOT EXISTS session_snapshots (
	snapshot_key TEXT PRIMARY KEY,
	session_id   TEXT NOT NULL,
	kind         TEXT NOT NULL,
	generation   BIGINT NOT NULL,
	payload      JSONB NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	expires_at   TIMESTAMPTZ NOT NULL
)`

// 保存済みより古い世代では上書きしない
const upsertSessionSnapshot = `
INSERT INTO session_snapshots (snapshot_key, session_id, kind, generation, payload, updated_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (snapshot_key) DO UPDATE SET
	generation = EXCLUDED.generation,
	payload    = EXCLUDED.payload,
	updated_at = EXCLUDED.updated_at,
	expires_at = EXCLUDED.expires_at
WHERE session_snapshots.generation <= EXCLUDED.generation`

type PostgresSessionRepository struct {
	client *database.PostgreSQLClient
	ttl    time.Duration
}

// NewPostgresSessionRepository 新しいPostgresSessionRepositoryインスタンスを作成
func NewPostgresSessionRepository(client *database.PostgreSQLClient, ttl time.Duration) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

// EnsureSchema はテーブルがなければ作成する
func (r *PostgresSessionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.client.DB.ExecContext(ctx, createSessionSnapshotsTable); err != nil {
		return fmt.Errorf("session_snapshotsテーブルの作成に失敗: %w", err)
	}
	log.Printf("✅ session_snapshotsテーブルを確認しました")
	return nil
}

// Save はスナップショットをJSONBとしてupsertする
func (r *PostgresSessionRepository) Save(ctx context.Context, snapshot *model.SessionSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("スナップショットのシリアライズに失敗: %w", err)
	}

	now := timeNow()
	_, err = r.client.DB.ExecContext(ctx, upsertSessionSnapshot,
		snapshot.DocumentID(),
		snapshot.SessionID,
		string(snapshot.Kind),
		snapshot.Generation,
		payload,
		now,
		now.Add(r.ttl),
	)
	if err != nil {
		return fmt.Errorf("セッションの保存に失敗しました: %w", err)
	}
	return nil
}

// Get はスナップショットを取得する（期限切れは存在しない扱い）
func (r *PostgresSessionRepository) Get(ctx context.Context, sessionID string, kind model.SessionKind) (*model.SessionSnapshot, error) {
	query := `SELECT payload FROM session_snapshots WHERE snapshot_key = $1 AND expires_at > $2`

	var payload []byte
	err := r.client.DB.QueryRowContext(ctx, query, model.SnapshotKey(sessionID, kind), timeNow()).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("セッションの取得に失敗しました: %w", err)
	}

	var snapshot model.SessionSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("payload JSONBパースエラー: %w", err)
	}
	return &snapshot, nil
}

// DeleteExpired は期限切れのスナップショットを削除し、削除件数を返す
func (r *PostgresSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.client.DB.ExecContext(ctx, `DELETE FROM session_snapshots WHERE expires_at <= $1`, timeNow())
	if err != nil {
		return 0, fmt.Errorf("期限切れセッションの削除に失敗: %w", err)
	}
	return result.RowsAffected()
}

var _ repository.SessionRepository = (*PostgresSessionRepository)(nil)
