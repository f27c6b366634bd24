package ai

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WeatherWise-App/internal/domain/model"
)

// fakeTextModel は決まった出力を返すTextModel
type fakeTextModel struct {
	mu      sync.Mutex
	output  string
	err     error
	prompts []string
}

func (f *fakeTextModel) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.output, f.err
}

func (f *fakeTextModel) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

const validPlanJSON = `{
  "suggestedRoute": {
    "summary": "Fastest route via Mumbai-Pune Expressway",
    "totalDistance": "150 km",
    "totalDuration": "3 hours",
    "waypoints": [
      {"locationName": "Mumbai City Limits", "instruction": "Head east on the expressway", "distanceToNext": "50 km", "estimatedWeather": {"condition": "Sunny", "temperature": "28°C"}},
      {"locationName": "Ghat Section", "instruction": "Drive carefully through the hills", "estimatedWeather": {"condition": "Light rain", "temperature": "22°C"}}
    ],
    "mapImageUrl": "https://placehold.co/600x400.png",
    "mapImageHint": ""
  },
  "alternativeRoute": {
    "summary": "Scenic route via old highway",
    "totalDistance": "170 km",
    "totalDuration": "4 hours",
    "waypoints": [
      {"locationName": "Panvel", "instruction": "Take NH48", "estimatedWeather": {"condition": "Cloudy", "temperature": "25°C"}}
    ],
    "mapImageUrl": "https://placehold.co/800x400.png"
  },
  "generalAdvice": ["Start early to avoid traffic", "Carry water and snacks"]
}`

func tipsRequest() *model.WeatherTipsRequest {
	return &model.WeatherTipsRequest{
		Location:     "Paris",
		TemperatureC: model.Float64(30),
		Condition:    "sunny",
		HumidityPct:  model.Float64(40),
		WindKph:      model.Float64(10),
	}
}

func TestGenerateWeatherTips(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系", func(t *testing.T) {
		fake := &fakeTextModel{output: `{"tips": ["Wear sunscreen.", "  Stay hydrated.  ", "Try a picnic."]}`}
		repo := NewGeminiWeatherTipsRepository(fake)

		result, err := repo.GenerateWeatherTips(ctx, tipsRequest())
		require.NoError(t, err)
		assert.Equal(t, []string{"Wear sunscreen.", "Stay hydrated.", "Try a picnic."}, result.Tips)

		require.Equal(t, 1, fake.calls())
		prompt := fake.prompts[0]
		assert.Contains(t, prompt, "Paris")
		assert.Contains(t, prompt, "30°C")
		assert.Contains(t, prompt, "sunny")
		assert.Contains(t, prompt, "40%")
		assert.Contains(t, prompt, "10 km/h")
		assert.Contains(t, prompt, "No specific preferences provided.")
	})

	t.Run("好みがあればプロンプトに含まれる", func(t *testing.T) {
		fake := &fakeTextModel{output: `{"tips": ["Go hiking."]}`}
		req := tipsRequest()
		req.Preferences = "I like hiking"

		_, err := NewGeminiWeatherTipsRepository(fake).GenerateWeatherTips(ctx, req)
		require.NoError(t, err)
		assert.Contains(t, fake.prompts[0], "I like hiking")
		assert.NotContains(t, fake.prompts[0], "No specific preferences provided.")
	})

	t.Run("コードフェンス付きの出力", func(t *testing.T) {
		fake := &fakeTextModel{output: "```json\n{\"tips\": [\"Bring an umbrella.\"]}\n```"}
		result, err := NewGeminiWeatherTipsRepository(fake).GenerateWeatherTips(ctx, tipsRequest())
		require.NoError(t, err)
		assert.Equal(t, []string{"Bring an umbrella."}, result.Tips)
	})

	t.Run("空のアドバイスはGenerationError", func(t *testing.T) {
		fake := &fakeTextModel{output: `{"tips": ["   "]}`}
		_, err := NewGeminiWeatherTipsRepository(fake).GenerateWeatherTips(ctx, tipsRequest())
		var genErr *model.GenerationError
		require.True(t, errors.As(err, &genErr))
		assert.Equal(t, FlowWeatherTips, genErr.Flow)
	})

	t.Run("JSONでない出力はGenerationError", func(t *testing.T) {
		fake := &fakeTextModel{output: "Here are some tips: wear a hat"}
		_, err := NewGeminiWeatherTipsRepository(fake).GenerateWeatherTips(ctx, tipsRequest())
		var genErr *model.GenerationError
		assert.True(t, errors.As(err, &genErr))
	})

	t.Run("モデルの失敗はGenerationError", func(t *testing.T) {
		fake := &fakeTextModel{err: errors.New("boom")}
		_, err := NewGeminiWeatherTipsRepository(fake).GenerateWeatherTips(ctx, tipsRequest())
		var genErr *model.GenerationError
		require.True(t, errors.As(err, &genErr))
		assert.EqualError(t, genErr.Unwrap(), "boom")
	})

	t.Run("無効な入力はモデルを呼ばない", func(t *testing.T) {
		fake := &fakeTextModel{output: `{"tips": ["x"]}`}
		req := tipsRequest()
		req.Location = ""

		_, err := NewGeminiWeatherTipsRepository(fake).GenerateWeatherTips(ctx, req)
		var verr *model.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.True(t, verr.HasField("location"))
		assert.Equal(t, 0, fake.calls())
	})
}

func TestPlanTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系とヒントのデフォルト", func(t *testing.T) {
		fake := &fakeTextModel{output: validPlanJSON}
		plan, err := NewGeminiTripPlanRepository(fake).PlanTrip(ctx, &model.TripPlanRequest{Origin: "Mumbai", Destination: "Pune"})
		require.NoError(t, err)

		require.NotNil(t, plan.SuggestedRoute)
		assert.Len(t, plan.SuggestedRoute.Waypoints, 2)
		assert.Equal(t, model.DefaultSuggestedRouteHint, plan.SuggestedRoute.MapImageHint)
		require.NotNil(t, plan.AlternativeRoute)
		assert.Equal(t, model.DefaultAlternativeRouteHint, plan.AlternativeRoute.MapImageHint)
		assert.Len(t, plan.GeneralAdvice, 2)

		prompt := fake.prompts[0]
		assert.Contains(t, prompt, "Origin: Mumbai")
		assert.Contains(t, prompt, "Destination: Pune")
		assert.NotContains(t, prompt, "Travel Date:")
		assert.Contains(t, prompt, "https://placehold.co/600x400.png")
	})

	t.Run("空白だけのヒントはデフォルトに置き換える", func(t *testing.T) {
		fake := &fakeTextModel{output: `{"suggestedRoute": {"summary": "s", "totalDistance": "1 km", "totalDuration": "1 min", "waypoints": [{"locationName": "A", "instruction": "Go", "estimatedWeather": {"condition": "Sunny", "temperature": "20°C"}}], "mapImageUrl": "https://placehold.co/600x400.png", "mapImageHint": "   "}}`}
		plan, err := NewGeminiTripPlanRepository(fake).PlanTrip(ctx, &model.TripPlanRequest{Origin: "A", Destination: "B"})
		require.NoError(t, err)
		assert.Equal(t, model.DefaultSuggestedRouteHint, plan.SuggestedRoute.MapImageHint)
	})

	t.Run("ヒントの前後の空白は取り除く", func(t *testing.T) {
		fake := &fakeTextModel{output: `{"suggestedRoute": {"summary": "s", "totalDistance": "1 km", "totalDuration": "1 min", "waypoints": [{"locationName": "A", "instruction": "Go", "estimatedWeather": {"condition": "Sunny", "temperature": "20°C"}}], "mapImageUrl": "https://placehold.co/600x400.png", "mapImageHint": " city highway "}}`}
		plan, err := NewGeminiTripPlanRepository(fake).PlanTrip(ctx, &model.TripPlanRequest{Origin: "A", Destination: "B"})
		require.NoError(t, err)
		assert.Equal(t, "city highway", plan.SuggestedRoute.MapImageHint)
	})

	t.Run("旅行日はプロンプトに含まれる", func(t *testing.T) {
		fake := &fakeTextModel{output: validPlanJSON}
		_, err := NewGeminiTripPlanRepository(fake).PlanTrip(ctx, &model.TripPlanRequest{Origin: "Mumbai", Destination: "Pune", TravelDate: "tomorrow"})
		require.NoError(t, err)
		assert.Contains(t, fake.prompts[0], "Travel Date: tomorrow")
	})

	t.Run("ウェイポイントが空ならGenerationError", func(t *testing.T) {
		fake := &fakeTextModel{output: `{"suggestedRoute": {"summary": "s", "totalDistance": "1 km", "totalDuration": "1 min", "waypoints": [], "mapImageUrl": "https://placehold.co/600x400.png"}}`}
		_, err := NewGeminiTripPlanRepository(fake).PlanTrip(ctx, &model.TripPlanRequest{Origin: "A", Destination: "B"})
		var genErr *model.GenerationError
		require.True(t, errors.As(err, &genErr))
		assert.Equal(t, FlowPlanTrip, genErr.Flow)

		var verr *model.ValidationError
		assert.True(t, errors.As(err, &verr), "原因のスキーマエラーを辿れる")
	})

	t.Run("空の出力はGenerationError", func(t *testing.T) {
		fake := &fakeTextModel{output: "   "}
		_, err := NewGeminiTripPlanRepository(fake).PlanTrip(ctx, &model.TripPlanRequest{Origin: "A", Destination: "B"})
		assert.ErrorIs(t, err, ErrNoOutput)
	})

	t.Run("出発地が空ならモデルを呼ばない", func(t *testing.T) {
		fake := &fakeTextModel{output: validPlanJSON}
		_, err := NewGeminiTripPlanRepository(fake).PlanTrip(ctx, &model.TripPlanRequest{Origin: "", Destination: "Pune"})
		var verr *model.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.True(t, verr.HasField("origin"))
		assert.Equal(t, 0, fake.calls())
	})

	t.Run("キャンセル時はctxのエラー", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		fake := &fakeTextModel{err: errors.New("transport closed")}
		_, err := NewGeminiTripPlanRepository(fake).PlanTrip(cctx, &model.TripPlanRequest{Origin: "A", Destination: "B"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		`{"a":1}`:                  `{"a":1}`,
		"```json\n{\"a\":1}\n```":  `{"a":1}`,
		"```\n{\"a\":1}```":        `{"a":1}`,
		"  \n```json\n{}\n```  \n": `{}`,
		"```":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, stripCodeFence(in), "入力: %q", in)
	}
}
