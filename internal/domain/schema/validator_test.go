package schema

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WeatherWise-App/internal/domain/model"
)

func validRoute() *model.RouteSuggestion {
	return &model.RouteSuggestion{
		Summary:       "Fastest route via Expressway",
		TotalDistance: "150 km",
		TotalDuration: "3 hours",
		Waypoints: []model.TripWaypoint{
			{
				LocationName:     "Mumbai City Limits",
				Instruction:      "Merge onto Mumbai-Pune Expressway",
				DistanceToNext:   "50 km",
				EstimatedWeather: model.EstimatedWeather{Condition: "Sunny", Temperature: "28°C"},
			},
		},
		MapImageURL:  "https://placehold.co/600x400.png",
		MapImageHint: "route map",
	}
}

func asValidationError(t *testing.T, err error) *model.ValidationError {
	t.Helper()
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr), "ValidationErrorが返るべき: %v", err)
	return verr
}

func TestValidateWeatherSearch(t *testing.T) {
	t.Run("2文字以上なら成功", func(t *testing.T) {
		req := &model.WeatherSearchRequest{Location: "  Tokyo "}
		require.NoError(t, ValidateWeatherSearch(req))
		assert.Equal(t, "Tokyo", req.Location)
	})

	t.Run("1文字はエラー", func(t *testing.T) {
		err := ValidateWeatherSearch(&model.WeatherSearchRequest{Location: "L"})
		verr := asValidationError(t, err)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "location", verr.Fields[0].Field)
		assert.Equal(t, "min", verr.Fields[0].Rule)
		assert.Equal(t, "Location must be at least 2 characters.", verr.Fields[0].Message)
	})

	t.Run("マルチバイトは文字数で数える", func(t *testing.T) {
		assert.NoError(t, ValidateWeatherSearch(&model.WeatherSearchRequest{Location: "東京"}))
	})
}

func TestValidateTripPlanRequest(t *testing.T) {
	t.Run("出発地が空", func(t *testing.T) {
		err := ValidateTripPlanRequest(&model.TripPlanRequest{Origin: "   ", Destination: "Pune"})
		verr := asValidationError(t, err)
		assert.True(t, verr.HasField("origin"))
		assert.False(t, verr.HasField("destination"))
		assert.Equal(t, "Origin is required.", verr.Fields[0].Message)
	})

	t.Run("両方空なら2件", func(t *testing.T) {
		verr := asValidationError(t, ValidateTripPlanRequest(&model.TripPlanRequest{}))
		assert.Len(t, verr.Fields, 2)
	})

	t.Run("旅行日は任意", func(t *testing.T) {
		assert.NoError(t, ValidateTripPlanRequest(&model.TripPlanRequest{Origin: "Mumbai", Destination: "Pune"}))
	})
}

func TestValidateWeatherTipsRequest(t *testing.T) {
	req := &model.WeatherTipsRequest{Location: "Paris", TemperatureC: model.Float64(30), Condition: "sunny", HumidityPct: model.Float64(40), WindKph: model.Float64(10)}
	assert.NoError(t, ValidateWeatherTipsRequest(req))

	req.TemperatureC = model.Float64(math.NaN())
	verr := asValidationError(t, ValidateWeatherTipsRequest(req))
	assert.True(t, verr.HasField("temperature"))
	assert.Equal(t, "finite", verr.Fields[0].Rule)

	req.TemperatureC = model.Float64(-12)
	assert.NoError(t, ValidateWeatherTipsRequest(req), "氷点下も有効")

	req.WindKph = model.Float64(0)
	assert.NoError(t, ValidateWeatherTipsRequest(req), "0は指定済みとして扱う")
}

func TestValidateWeatherTipsRequest_MissingNumbers(t *testing.T) {
	req := &model.WeatherTipsRequest{Location: "Paris", Condition: "sunny"}

	verr := asValidationError(t, ValidateWeatherTipsRequest(req))
	require.Len(t, verr.Fields, 3)
	for _, field := range []string{"temperature", "humidity", "windSpeed"} {
		assert.True(t, verr.HasField(field), field)
	}
	for _, fe := range verr.Fields {
		assert.Equal(t, "required", fe.Rule)
	}
}

func TestValidateTripPlan(t *testing.T) {
	t.Run("正常なプラン", func(t *testing.T) {
		plan := &model.TripPlan{SuggestedRoute: validRoute(), GeneralAdvice: []string{"Start early"}}
		assert.NoError(t, ValidateTripPlan(plan))
	})

	t.Run("suggestedRouteは必須", func(t *testing.T) {
		verr := asValidationError(t, ValidateTripPlan(&model.TripPlan{}))
		assert.True(t, verr.HasField("suggestedRoute"))
	})

	t.Run("ウェイポイントが空", func(t *testing.T) {
		route := validRoute()
		route.Waypoints = []model.TripWaypoint{}
		verr := asValidationError(t, ValidateTripPlan(&model.TripPlan{SuggestedRoute: route}))
		assert.True(t, verr.HasField("suggestedRoute.waypoints"))
	})

	t.Run("ウェイポイントの推定天気が欠けている", func(t *testing.T) {
		route := validRoute()
		route.Waypoints[0].EstimatedWeather = model.EstimatedWeather{}
		verr := asValidationError(t, ValidateTripPlan(&model.TripPlan{SuggestedRoute: route}))
		assert.True(t, verr.HasField("suggestedRoute.waypoints[0].estimatedWeather.condition"))
	})

	t.Run("URLが不正", func(t *testing.T) {
		route := validRoute()
		route.MapImageURL = "not a url"
		verr := asValidationError(t, ValidateTripPlan(&model.TripPlan{SuggestedRoute: route}))
		assert.True(t, verr.HasField("suggestedRoute.mapImageUrl"))
	})

	t.Run("ヒントは2語まで", func(t *testing.T) {
		route := validRoute()
		route.MapImageHint = "scenic coastal highway"
		verr := asValidationError(t, ValidateTripPlan(&model.TripPlan{SuggestedRoute: route}))
		assert.Equal(t, "maxwords", verr.Fields[0].Rule)

		route.MapImageHint = ""
		assert.NoError(t, ValidateTripPlan(&model.TripPlan{SuggestedRoute: route}), "空のヒントは後処理で補完される")
	})

	t.Run("代替ルートも検証される", func(t *testing.T) {
		alt := validRoute()
		alt.Summary = ""
		verr := asValidationError(t, ValidateTripPlan(&model.TripPlan{SuggestedRoute: validRoute(), AlternativeRoute: alt}))
		assert.True(t, verr.HasField("alternativeRoute.summary"))
	})
}

func TestValidateWeatherTipsResult(t *testing.T) {
	assert.NoError(t, ValidateWeatherTipsResult(&model.WeatherTipsResult{Tips: []string{"Wear sunscreen."}}))

	verr := asValidationError(t, ValidateWeatherTipsResult(&model.WeatherTipsResult{}))
	assert.True(t, verr.HasField("tips"))
}

func TestValidateWeatherReport(t *testing.T) {
	report := &model.WeatherReport{
		Current: model.WeatherSnapshot{
			LocationName:  "London",
			TemperatureC:  12,
			HumidityPct:   80,
			WindKph:       20,
			ConditionCode: model.ConditionRainy,
			ConditionText: "Light rain",
		},
		Forecast: []model.ForecastDay{
			{Date: "2026-10-19", TempMaxC: 20, TempMinC: 10, ConditionCode: model.ConditionSunny, ConditionText: "Clear sky"},
		},
	}
	assert.NoError(t, ValidateWeatherReport(report))

	report.Current.ConditionCode = "hail"
	verr := asValidationError(t, ValidateWeatherReport(report))
	assert.Equal(t, "condition", verr.Fields[0].Rule)

	report.Current.ConditionCode = model.ConditionRainy
	report.Forecast[0].Date = "19/10/2026"
	verr = asValidationError(t, ValidateWeatherReport(report))
	assert.Equal(t, "datetime", verr.Fields[0].Rule)
}
