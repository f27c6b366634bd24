package repository

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/domain/repository"
)

const sessionsCollection = "sessions"

// FirestoreSessionRepository Firestoreを使用したセッションスナップショットのリポジトリ。
// expireAtフィールドにTTLポリシーを設定して期限切れのドキュメントを自動削除する
type FirestoreSessionRepository struct {
	client   *firestore.Client
	ttlHours int
}

// NewFirestoreSessionRepository 新しいFirestoreSessionRepositoryインスタンスを作成
func NewFirestoreSessionRepository(client *firestore.Client, ttlHours int) *FirestoreSessionRepository {
	return &FirestoreSessionRepository{
		client:   client,
		ttlHours: ttlHours,
	}
}

// Save はスナップショットを保存する。保存済みより古い世代は上書きしない
func (r *FirestoreSessionRepository) Save(ctx context.Context, snapshot *model.SessionSnapshot) error {
	docRef := r.client.Collection(sessionsCollection).Doc(snapshot.DocumentID())
	data := snapshot.ToFirestoreSessionSnapshot(r.ttlHours)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil {
			var existing model.FirestoreSessionSnapshot
			if err := doc.DataTo(&existing); err == nil && existing.Snapshot.Generation > snapshot.Generation {
				return nil
			}
		}
		return tx.Set(docRef, data)
	})
	if err != nil {
		log.Printf("❌ Failed to save session snapshot %s: %v", snapshot.DocumentID(), err)
		return fmt.Errorf("セッションの保存に失敗しました: %w", err)
	}
	return nil
}

// Get はスナップショットを取得する
func (r *FirestoreSessionRepository) Get(ctx context.Context, sessionID string, kind model.SessionKind) (*model.SessionSnapshot, error) {
	key := model.SnapshotKey(sessionID, kind)
	doc, err := r.client.Collection(sessionsCollection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("セッションの取得に失敗しました: %w", err)
	}

	var data model.FirestoreSessionSnapshot
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	// TTLによる削除は即時ではないため期限を確認する
	if !data.ExpireAt.IsZero() && data.ExpireAt.Before(timeNow()) {
		return nil, repository.ErrSessionNotFound
	}

	log.Printf("✅ Session snapshot retrieved: %s", key)
	return &data.Snapshot, nil
}

var _ repository.SessionRepository = (*FirestoreSessionRepository)(nil)
