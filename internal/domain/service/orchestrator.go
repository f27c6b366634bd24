package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"WeatherWise-App/internal/domain/model"
)

// Task はオーケストレーターが実行する1種類の処理
type Task[Q any, R any] struct {
	Kind model.SessionKind

	// Run は実際の処理（天気検索・旅行プラン生成）
	Run func(ctx context.Context, query Q) (R, error)

	// Describe はスナップショットに残すクエリの表示文字列
	Describe func(query Q) string

	// Attach は成功時の結果をスナップショットに載せる
	Attach func(snapshot *model.SessionSnapshot, result R)

	// FallbackMessage は想定外のエラー時にユーザーへ表示するメッセージ
	FallbackMessage string
}

// Orchestrator はセッション内の1種類のリクエスト状態（Idle → Loading → Success|Failed）を管理する。
// 新しい送信は実行中の処理をキャンセルし、最後の送信の結果だけが状態を更新する
type Orchestrator[Q any, R any] struct {
	sessionID string
	task      Task[Q, R]
	now       func() time.Time
	onChange  func(model.SessionSnapshot)

	mu         sync.Mutex
	notifyMu   sync.Mutex
	status     model.SessionStatus
	generation int64
	query      string
	errMessage string
	result     R
	hasResult  bool
	updatedAt  time.Time
	cancel     context.CancelFunc
	done       chan struct{}
	closed     bool
}

// OrchestratorOption はOrchestratorの設定
type OrchestratorOption[Q any, R any] func(*Orchestrator[Q, R])

// WithOnChange は状態が変わるたびに呼ばれるフックを設定する。
// フックは変更順に1つずつ呼ばれる。フック内からOrchestratorのメソッドを呼んではいけない
func WithOnChange[Q any, R any](fn func(model.SessionSnapshot)) OrchestratorOption[Q, R] {
	return func(o *Orchestrator[Q, R]) {
		o.onChange = fn
	}
}

// WithClock はスナップショットの時刻に使う時計を差し替える
func WithClock[Q any, R any](now func() time.Time) OrchestratorOption[Q, R] {
	return func(o *Orchestrator[Q, R]) {
		o.now = now
	}
}

// NewOrchestrator は新しいOrchestratorインスタンスを作成（初期状態はIdle）
func NewOrchestrator[Q any, R any](sessionID string, task Task[Q, R], opts ...OrchestratorOption[Q, R]) *Orchestrator[Q, R] {
	o := &Orchestrator[Q, R]{
		sessionID: sessionID,
		task:      task,
		now:       time.Now,
		status:    model.StatusIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.updatedAt = o.now()
	return o
}

// Submit は新しいリクエストを開始し、その世代番号を返す。
// 実行中のリクエストがあればキャンセルされ、その結果は破棄される
func (o *Orchestrator[Q, R]) Submit(query Q) int64 {
	o.mu.Lock()
	if o.closed {
		gen := o.generation
		o.mu.Unlock()
		return gen
	}
	if o.cancel != nil {
		o.cancel()
	}

	o.generation++
	gen := o.generation
	o.status = model.StatusLoading
	o.errMessage = ""
	var zero R
	o.result = zero
	o.hasResult = false
	if o.task.Describe != nil {
		o.query = o.task.Describe(query)
	}
	o.updatedAt = o.now()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	o.cancel = cancel
	o.done = done

	o.publishLocked()

	go o.execute(ctx, gen, query, done)
	return gen
}

func (o *Orchestrator[Q, R]) execute(ctx context.Context, gen int64, query Q, done chan struct{}) {
	defer close(done)

	result, err := o.task.Run(ctx, query)

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	if gen != o.generation {
		// 新しい送信に置き換えられた
		o.mu.Unlock()
		log.Printf("⏭️ 古いリクエストの結果を破棄 (session: %s, kind: %s, generation: %d)", o.sessionID, o.task.Kind, gen)
		return
	}

	o.cancel()
	o.cancel = nil
	if err != nil {
		o.status = model.StatusFailed
		o.errMessage = ErrorMessage(err, o.task.FallbackMessage)
		log.Printf("❌ リクエスト失敗 (session: %s, kind: %s): %v", o.sessionID, o.task.Kind, err)
	} else {
		o.status = model.StatusSuccess
		o.result = result
		o.hasResult = true
		log.Printf("✅ リクエスト成功 (session: %s, kind: %s)", o.sessionID, o.task.Kind)
	}
	o.updatedAt = o.now()

	o.publishLocked()
}

// publishLocked はmuを保持した状態で呼ぶ。通知の順序を保つためnotifyMuに持ち替えてからフックを呼ぶ
func (o *Orchestrator[Q, R]) publishLocked() {
	if o.onChange == nil {
		o.mu.Unlock()
		return
	}
	snapshot := o.snapshotLocked()
	o.notifyMu.Lock()
	o.mu.Unlock()
	defer o.notifyMu.Unlock()
	o.onChange(snapshot)
}

// Snapshot は現在の状態のコピーを返す
func (o *Orchestrator[Q, R]) Snapshot() model.SessionSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator[Q, R]) snapshotLocked() model.SessionSnapshot {
	snapshot := model.SessionSnapshot{
		SessionID:    o.sessionID,
		Kind:         o.task.Kind,
		Status:       o.status,
		Generation:   o.generation,
		Query:        o.query,
		ErrorMessage: o.errMessage,
		UpdatedAt:    o.updatedAt,
	}
	if o.hasResult && o.task.Attach != nil {
		o.task.Attach(&snapshot, o.result)
	}
	return snapshot
}

// Result は成功時の結果を返す。成功状態でなければfalse
func (o *Orchestrator[Q, R]) Result() (R, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result, o.hasResult
}

// Wait は現在のリクエストが完了（Success/Failed）するまで待つ。
// 待機中に新しい送信があれば、その送信の完了まで待つ
func (o *Orchestrator[Q, R]) Wait(ctx context.Context) (model.SessionSnapshot, error) {
	for {
		o.mu.Lock()
		done := o.done
		gen := o.generation
		if done == nil || o.status == model.StatusSuccess || o.status == model.StatusFailed {
			snapshot := o.snapshotLocked()
			o.mu.Unlock()
			return snapshot, nil
		}
		o.mu.Unlock()

		select {
		case <-ctx.Done():
			return o.Snapshot(), ctx.Err()
		case <-done:
		}

		o.mu.Lock()
		settled := gen == o.generation
		o.mu.Unlock()
		if settled {
			return o.Snapshot(), nil
		}
	}
}

// Close は実行中のリクエストをキャンセルし、以降の送信を受け付けない
func (o *Orchestrator[Q, R]) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

// ErrorMessage はエラーをユーザー向けのメッセージに変換する
func ErrorMessage(err error, fallback string) string {
	var lookupErr *model.LookupError
	if errors.As(err, &lookupErr) && lookupErr.Message != "" {
		return lookupErr.Message
	}
	var genErr *model.GenerationError
	if errors.As(err, &genErr) {
		return model.GenerationFailedMessage
	}
	return fallback
}
