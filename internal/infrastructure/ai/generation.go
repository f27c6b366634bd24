package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"WeatherWise-App/internal/domain/model"
)

// 生成フロー名（GenerationError.Flowに入る）
const (
	FlowWeatherTips = "weatherTips"
	FlowPlanTrip    = "planTrip"
)

// generateJSON はプロンプトをモデルに渡し、出力をJSONとしてoutにデコードする。
// 失敗は全てGenerationErrorになる（キャンセルの場合はctxのエラーをそのまま返す）
func generateJSON(ctx context.Context, textModel TextModel, flow, prompt string, out any) error {
	raw, err := textModel.GenerateContent(ctx, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Printf("❌ %s: モデル呼び出しに失敗: %v", flow, err)
		return &model.GenerationError{Flow: flow, Err: err}
	}

	body := stripCodeFence(raw)
	if body == "" {
		log.Printf("❌ %s: モデルの出力が空です", flow)
		return &model.GenerationError{Flow: flow, Err: ErrNoOutput}
	}

	if err := json.Unmarshal([]byte(body), out); err != nil {
		log.Printf("❌ %s: 出力のJSONパースに失敗: %v", flow, err)
		return &model.GenerationError{Flow: flow, Err: fmt.Errorf("出力のJSONパースに失敗: %w", err)}
	}
	return nil
}

// checkOutput は出力のスキーマ検証エラーをGenerationErrorに変換する
func checkOutput(flow string, err error) error {
	if err == nil {
		return nil
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		log.Printf("❌ %s: 出力がスキーマに一致しません: %v", flow, verr)
	}
	return &model.GenerationError{Flow: flow, Err: err}
}

// stripCodeFence はモデルが付けがちなMarkdownのコードフェンスを取り除く
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// 言語指定（```json など）を読み飛ばす
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
