package ai

import (
	"fmt"
	"strings"
	"text/template"

	"WeatherWise-App/internal/domain/model"
)

const noPreferencesClause = "No specific preferences provided."

var weatherTipsTemplate = template.Must(template.New("weatherTipsPrompt").Parse(
	`You are a helpful weather assistant providing personalized tips based on the current weather conditions and user preferences.

Current Weather Conditions for {{.Location}}:
- Temperature: {{.TemperatureC}}°C
- Condition: {{.Condition}}
- Humidity: {{.HumidityPct}}%
- Wind Speed: {{.WindKph}} km/h

User Preferences: {{if .Preferences}}{{.Preferences}}{{else}}` + noPreferencesClause + `{{end}}

Based on these conditions and preferences, generate 3 concise and practical weather tips.
Respond with JSON only, matching this shape:
{
  "tips": [
    "Wear sunglasses and sunscreen due to the sunny conditions.",
    "Stay hydrated by drinking plenty of water.",
    "Consider outdoor activities like hiking or biking."
  ]
}
`))

var planTripTemplate = template.Must(template.New("planTripPrompt").Parse(
	`You are an expert AI trip planner. Your task is to generate a plausible travel plan between an origin and a destination.

Origin: {{.Origin}}
Destination: {{.Destination}}
{{if .TravelDate}}Travel Date: {{.TravelDate}}
{{end}}
Please provide the following:
1. Suggested Route ("suggestedRoute"):
   - "summary": a clear summary (e.g., "Fastest route via Expressway, expect some city traffic").
   - "totalDistance": estimated total distance (e.g., "150 km").
   - "totalDuration": estimated total duration (e.g., "3 hours").
   - "waypoints": a list of 3-5 key waypoints or route segments in travel order. For each waypoint:
     - "locationName": a descriptive name (e.g., "City Limits", "Ghat Section", "City Entrance").
     - "instruction": a brief, plausible driving instruction.
     - "distanceToNext": estimated distance for this segment (e.g., "50 km").
     - "estimatedWeather": {"condition": a simulated weather condition, "temperature": a simulated temperature with units such as "28°C"}. Be creative and consider the travel date if provided.
   - "mapImageUrl": a placeholder map image URL using the '{{.MapURLPattern}}' format. Use a width of {{.DefaultWidth}} or {{.WideWidth}} and a height of {{.Height}}. Do NOT include text query parameters in the URL. For example: '{{.ExampleMapURL}}'.
   - "mapImageHint": one or two keywords (maximum two words) for the map image, such as "route map" or "city highway".

2. Alternative Route ("alternativeRoute", optional but recommended):
   - If feasible, suggest one alternative route with the same fields as above. Otherwise omit it.

3. General Advice ("generalAdvice", optional):
   - 2-3 general travel tips relevant to the trip (e.g., "Start early to avoid traffic", "Carry water and snacks").

Respond with JSON only. Ensure all text is plausible for a real trip between the given locations.
The waypoints should represent logical segments of the journey.
`))

// weatherTipsVars はプロンプトに埋め込む変数（数値は検証済みの値を展開する）
type weatherTipsVars struct {
	Location     string
	Condition    string
	Preferences  string
	TemperatureC float64
	HumidityPct  float64
	WindKph      float64
}

// planTripVars はプロンプトに埋め込む変数
type planTripVars struct {
	*model.TripPlanRequest
	MapURLPattern string
	DefaultWidth  int
	WideWidth     int
	Height        int
	ExampleMapURL string
}

// RenderPrompt はテンプレートと変数からプロンプト文字列を生成する純粋関数
func RenderPrompt(tmpl *template.Template, vars any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("プロンプト %s の生成に失敗: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}

// BuildWeatherTipsPrompt は天気アドバイス用のプロンプトを生成する
func BuildWeatherTipsPrompt(req *model.WeatherTipsRequest) (string, error) {
	return RenderPrompt(weatherTipsTemplate, weatherTipsVars{
		Location:     req.Location,
		Condition:    req.Condition,
		Preferences:  req.Preferences,
		TemperatureC: valueOf(req.TemperatureC),
		HumidityPct:  valueOf(req.HumidityPct),
		WindKph:      valueOf(req.WindKph),
	})
}

func valueOf(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// BuildPlanTripPrompt は旅行プラン用のプロンプトを生成する
func BuildPlanTripPrompt(req *model.TripPlanRequest) (string, error) {
	return RenderPrompt(planTripTemplate, planTripVars{
		TripPlanRequest: req,
		MapURLPattern:   fmt.Sprintf("https://%s/WIDTHxHEIGHT.png", model.MapImageHost),
		DefaultWidth:    model.DefaultMapImageWidth,
		WideWidth:       model.WideMapImageWidth,
		Height:          model.DefaultMapImageHeight,
		ExampleMapURL:   model.MapImageURL(model.DefaultMapImageWidth, model.DefaultMapImageHeight),
	})
}
