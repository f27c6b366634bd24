package repository

import (
	"context"
	"sync"
	"time"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/domain/repository"
)

type memoryEntry struct {
	snapshot model.SessionSnapshot
	expireAt time.Time
}

// MemorySessionRepository はプロセス内にスナップショットを保持するリポジトリ（デフォルト）
type MemorySessionRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemorySessionRepository 新しいMemorySessionRepositoryインスタンスを作成（ttlが0以下なら期限なし）
func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Save はスナップショットを保存する。保存済みより古い世代は無視する
func (r *MemorySessionRepository) Save(ctx context.Context, snapshot *model.SessionSnapshot) error {
	key := snapshot.DocumentID()
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[key]; ok && existing.snapshot.Generation > snapshot.Generation {
		return nil
	}

	entry := memoryEntry{snapshot: *snapshot}
	if r.ttl > 0 {
		entry.expireAt = now.Add(r.ttl)
	}
	r.entries[key] = entry
	return nil
}

// Get はスナップショットを取得する
func (r *MemorySessionRepository) Get(ctx context.Context, sessionID string, kind model.SessionKind) (*model.SessionSnapshot, error) {
	r.mu.RLock()
	entry, ok := r.entries[model.SnapshotKey(sessionID, kind)]
	r.mu.RUnlock()

	if !ok || r.expired(entry) {
		return nil, repository.ErrSessionNotFound
	}
	snapshot := entry.snapshot
	return &snapshot, nil
}

// DeleteExpired は期限切れのスナップショットを削除し、削除件数を返す
func (r *MemorySessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for key, entry := range r.entries {
		if r.expired(entry) {
			delete(r.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

func (r *MemorySessionRepository) expired(entry memoryEntry) bool {
	return !entry.expireAt.IsZero() && !r.now().Before(entry.expireAt)
}

var _ repository.SessionRepository = (*MemorySessionRepository)(nil)
