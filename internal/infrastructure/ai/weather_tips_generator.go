package ai

import (
	"context"
	"log"
	"strings"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/domain/repository"
	"WeatherWise-App/internal/domain/schema"
)

// geminiWeatherTipsRepository はテキストモデルを使用してWeatherTipsGenerationRepositoryを実装
type geminiWeatherTipsRepository struct {
	model TextModel
}

// NewGeminiWeatherTipsRepository は新しいgeminiWeatherTipsRepositoryインスタンスを作成
func NewGeminiWeatherTipsRepository(textModel TextModel) repository.WeatherTipsGenerationRepository {
	return &geminiWeatherTipsRepository{
		model: textModel,
	}
}

// GenerateWeatherTips は現在の天気と好みから3件程度のアドバイスを生成する
func (g *geminiWeatherTipsRepository) GenerateWeatherTips(ctx context.Context, req *model.WeatherTipsRequest) (*model.WeatherTipsResult, error) {
	if err := schema.ValidateWeatherTipsRequest(req); err != nil {
		return nil, err
	}

	prompt, err := BuildWeatherTipsPrompt(req)
	if err != nil {
		return nil, &model.GenerationError{Flow: FlowWeatherTips, Err: err}
	}

	log.Printf("🤖 天気アドバイスを生成中... (地点: %s)", req.Location)

	var result model.WeatherTipsResult
	if err := generateJSON(ctx, g.model, FlowWeatherTips, prompt, &result); err != nil {
		return nil, err
	}

	tips := make([]string, 0, len(result.Tips))
	for _, tip := range result.Tips {
		if tip = strings.TrimSpace(tip); tip != "" {
			tips = append(tips, tip)
		}
	}
	result.Tips = tips

	if err := checkOutput(FlowWeatherTips, schema.ValidateWeatherTipsResult(&result)); err != nil {
		return nil, err
	}

	log.Printf("✅ 天気アドバイス生成完了: %d件", len(result.Tips))
	return &result, nil
}
