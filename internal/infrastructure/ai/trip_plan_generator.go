package ai

import (
	"context"
	"log"
	"strings"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/domain/repository"
	"WeatherWise-App/internal/domain/schema"
)

// geminiTripPlanRepository はテキストモデルを使用してTripPlanGenerationRepositoryを実装
type geminiTripPlanRepository struct {
	model TextModel
}

// NewGeminiTripPlanRepository は新しいgeminiTripPlanRepositoryインスタンスを作成
func NewGeminiTripPlanRepository(textModel TextModel) repository.TripPlanGenerationRepository {
	return &geminiTripPlanRepository{
		model: textModel,
	}
}

// PlanTrip は出発地・目的地から推奨ルート、代替ルート、アドバイスを生成する
func (g *geminiTripPlanRepository) PlanTrip(ctx context.Context, req *model.TripPlanRequest) (*model.TripPlan, error) {
	if err := schema.ValidateTripPlanRequest(req); err != nil {
		return nil, err
	}

	prompt, err := BuildPlanTripPrompt(req)
	if err != nil {
		return nil, &model.GenerationError{Flow: FlowPlanTrip, Err: err}
	}

	log.Printf("🤖 旅行プランを生成中... (%s → %s)", req.Origin, req.Destination)

	var plan model.TripPlan
	if err := generateJSON(ctx, g.model, FlowPlanTrip, prompt, &plan); err != nil {
		return nil, err
	}

	if err := checkOutput(FlowPlanTrip, schema.ValidateTripPlan(&plan)); err != nil {
		return nil, err
	}

	applyMapImageHintDefaults(&plan)

	waypoints := len(plan.SuggestedRoute.Waypoints)
	log.Printf("✅ 旅行プラン生成完了: ウェイポイント%d件 (代替ルート: %t)", waypoints, plan.AlternativeRoute != nil)
	return &plan, nil
}

// applyMapImageHintDefaults は地図URLがあるのにヒントが空（空白のみを含む）のルートへデフォルトのヒントを入れる
func applyMapImageHintDefaults(plan *model.TripPlan) {
	fill := func(route *model.RouteSuggestion, hint string) {
		if route == nil {
			return
		}
		route.MapImageHint = strings.TrimSpace(route.MapImageHint)
		if route.MapImageURL != "" && route.MapImageHint == "" {
			route.MapImageHint = hint
		}
	}
	fill(plan.SuggestedRoute, model.DefaultSuggestedRouteHint)
	fill(plan.AlternativeRoute, model.DefaultAlternativeRouteHint)
}
