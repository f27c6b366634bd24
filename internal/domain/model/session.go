package model

import "time"

// SessionStatus はセッションの状態
type SessionStatus string

const (
	StatusIdle    SessionStatus = "idle"
	StatusLoading SessionStatus = "loading"
	StatusSuccess SessionStatus = "success"
	StatusFailed  SessionStatus = "failed"
)

// SessionKind はオーケストレーターの種類
type SessionKind string

const (
	KindWeather SessionKind = "weather"
	KindTrip    SessionKind = "trip"
)

// SessionSnapshot はオーケストレーターの状態のコピー（保存・描画用）
type SessionSnapshot struct {
	SessionID    string         `json:"session_id" firestore:"session_id"`
	Kind         SessionKind    `json:"kind" firestore:"kind"`
	Status       SessionStatus  `json:"status" firestore:"status"`
	Generation   int64          `json:"generation" firestore:"generation"`
	Query        string         `json:"query,omitempty" firestore:"query,omitempty"` // 最後に送信された地名 or "origin → destination"
	ErrorMessage string         `json:"error,omitempty" firestore:"error,omitempty"`
	Weather      *WeatherReport `json:"weather,omitempty" firestore:"weather,omitempty"`
	Trip         *TripPlan      `json:"trip,omitempty" firestore:"trip,omitempty"`
	UpdatedAt    time.Time      `json:"updated_at" firestore:"updated_at"`
}

// FirestoreSessionSnapshot はFirestore保存用の構造体
type FirestoreSessionSnapshot struct {
	Snapshot SessionSnapshot `firestore:"snapshot"`
	ExpireAt time.Time       `firestore:"expireAt"`
}

// ToFirestoreSessionSnapshot はTTL付きの保存用構造体に変換する
func (s *SessionSnapshot) ToFirestoreSessionSnapshot(ttlHours int) *FirestoreSessionSnapshot {
	return &FirestoreSessionSnapshot{
		Snapshot: *s,
		ExpireAt: time.Now().Add(time.Duration(ttlHours) * time.Hour),
	}
}

// DocumentID はストア上のキー（セッションIDと種類の組）
func (s *SessionSnapshot) DocumentID() string {
	return SnapshotKey(s.SessionID, s.Kind)
}

// SnapshotKey はセッションIDと種類からストアのキーを作る
func SnapshotKey(sessionID string, kind SessionKind) string {
	return sessionID + "_" + string(kind)
}
