package mockweather

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/domain/repository"
)

// SentinelLocation はLookupErrorを意図的に発生させる地名（大文字小文字は区別しない）
const SentinelLocation = "error"

// archetype は天気の型（コード・表示テキスト・数値の範囲）
type archetype struct {
	code          model.ConditionCode
	text          string
	tempRange     [2]int // 両端を含む
	humidityRange [2]int
	windRange     [2]int
	precipitation float64
}

var archetypes = []archetype{
	{code: model.ConditionSunny, text: "Clear sky", tempRange: [2]int{25, 35}, humidityRange: [2]int{30, 50}, windRange: [2]int{5, 15}, precipitation: 0},
	{code: model.ConditionPartlyCloudy, text: "Partly cloudy", tempRange: [2]int{20, 30}, humidityRange: [2]int{40, 60}, windRange: [2]int{10, 20}, precipitation: 0.1},
	{code: model.ConditionCloudy, text: "Cloudy", tempRange: [2]int{15, 25}, humidityRange: [2]int{50, 70}, windRange: [2]int{10, 20}, precipitation: 0.2},
	{code: model.ConditionRainy, text: "Light rain", tempRange: [2]int{10, 20}, humidityRange: [2]int{70, 90}, windRange: [2]int{15, 25}, precipitation: 5},
	{code: model.ConditionThunderstorm, text: "Thunderstorm", tempRange: [2]int{18, 28}, humidityRange: [2]int{60, 80}, windRange: [2]int{20, 30}, precipitation: 10},
	{code: model.ConditionSnowy, text: "Snowy", tempRange: [2]int{-5, 2}, humidityRange: [2]int{80, 95}, windRange: [2]int{10, 20}, precipitation: 3},
	{code: model.ConditionWindy, text: "Windy", tempRange: [2]int{15, 25}, humidityRange: [2]int{40, 60}, windRange: [2]int{30, 50}, precipitation: 0.1},
	{code: model.ConditionFoggy, text: "Foggy", tempRange: [2]int{5, 15}, humidityRange: [2]int{90, 100}, windRange: [2]int{0, 10}, precipitation: 0.5},
}

// 予報で使う天気コードと表示テキスト
var forecastConditions = []model.ConditionCode{
	model.ConditionSunny,
	model.ConditionPartlyCloudy,
	model.ConditionCloudy,
	model.ConditionRainy,
}

var forecastConditionTexts = map[model.ConditionCode]string{
	model.ConditionSunny:        "Clear sky",
	model.ConditionPartlyCloudy: "Partly cloudy",
	model.ConditionCloudy:       "Overcast",
	model.ConditionRainy:        "Showers",
}

// 地名候補の生成パターン
var suggestionPatterns = []struct {
	format  string
	country string
}{
	{format: "%s City", country: "US"},
	{format: "%sville", country: "CA"},
	{format: "Old %s Town", country: "GB"},
	{format: "New %sport", country: "AU"},
}

const maxSuggestions = 5

// Options はモックの遅延・乱数・時計の設定
type Options struct {
	CurrentLatency  time.Duration
	ForecastLatency time.Duration
	SuggestLatency  time.Duration
	Rand            *rand.Rand
	Now             func() time.Time
}

// DefaultOptions は実際のAPIを模した遅延を持つ設定を返す
func DefaultOptions() Options {
	return Options{
		CurrentLatency:  1000 * time.Millisecond,
		ForecastLatency: 1200 * time.Millisecond,
		SuggestLatency:  300 * time.Millisecond,
	}
}

// NoLatencyOptions は遅延なしの設定を返す（開発・テスト用）
func NoLatencyOptions() Options {
	return Options{}
}

// Provider は天気APIの代わりにランダムなデータを返すモック
type Provider struct {
	opts Options
	mu   sync.Mutex // rand.Randはgoroutineセーフではない
	rng  *rand.Rand
	now  func() time.Time
}

// NewProvider は新しいモックプロバイダーを作成
func NewProvider(opts Options) *Provider {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Provider{
		opts: opts,
		rng:  rng,
		now:  now,
	}
}

// Name はプロバイダー名を返す
func (p *Provider) Name() string {
	return "Mock Weather"
}

// GetCurrentWeather はランダムな天気の型から現在の天気を生成する
func (p *Provider) GetCurrentWeather(ctx context.Context, location string) (*model.WeatherSnapshot, error) {
	if err := p.wait(ctx, p.opts.CurrentLatency); err != nil {
		return nil, err
	}

	if strings.EqualFold(location, SentinelLocation) {
		log.Printf("⚠️ 天気取得エラー（センチネル地名）: %s", location)
		return nil, &model.LookupError{Location: location, Message: model.LookupFailedMessage}
	}

	p.mu.Lock()
	a := archetypes[p.rng.IntN(len(archetypes))]
	temp := p.between(a.tempRange)
	humidity := p.between(a.humidityRange)
	wind := p.between(a.windRange)
	p.mu.Unlock()

	return &model.WeatherSnapshot{
		LocationName:      location,
		TemperatureC:      float64(temp),
		HumidityPct:       float64(humidity),
		WindKph:           float64(wind),
		PrecipitationMm:   a.precipitation,
		ConditionCode:     a.code,
		ConditionText:     a.text,
		CapturedAtEpochMs: p.now().UnixMilli(),
	}, nil
}

// GetForecast は今日から5日分の予報を生成する（日が進むほど少し涼しくなる）
func (p *Provider) GetForecast(ctx context.Context, location string) ([]model.ForecastDay, error) {
	if err := p.wait(ctx, p.opts.ForecastLatency); err != nil {
		return nil, err
	}

	today := p.now().UTC()
	forecast := make([]model.ForecastDay, 0, model.ForecastDays)

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := 0; i < model.ForecastDays; i++ {
		code := forecastConditions[p.rng.IntN(len(forecastConditions))]
		text, ok := forecastConditionTexts[code]
		if !ok {
			text = "Mixed weather"
		}
		forecast = append(forecast, model.ForecastDay{
			Date:          today.AddDate(0, 0, i).Format(time.DateOnly),
			TempMaxC:      float64(20 + p.rng.IntN(10) - i),
			TempMinC:      float64(10 + p.rng.IntN(5) - i),
			ConditionCode: code,
			ConditionText: text,
		})
	}
	return forecast, nil
}

// SuggestLocations は入力文字列から地名候補を合成する
func (p *Provider) SuggestLocations(ctx context.Context, query string) ([]model.LocationSuggestion, error) {
	if err := p.wait(ctx, p.opts.SuggestLatency); err != nil {
		return nil, err
	}

	suggestions := []model.LocationSuggestion{}
	if query == "" {
		return suggestions, nil
	}

	lowerQuery := strings.ToLower(query)
	for i, pattern := range suggestionPatterns {
		name := fmt.Sprintf(pattern.format, query)
		if !strings.Contains(strings.ToLower(name), lowerQuery) {
			continue
		}
		suggestions = append(suggestions, model.LocationSuggestion{
			ID:      fmt.Sprintf("%d", i+1),
			Name:    name,
			Country: pattern.country,
		})
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions, nil
}

// between は両端を含む範囲から整数を選ぶ（呼び出し側でロック済み）
func (p *Provider) between(r [2]int) int {
	return p.rng.IntN(r[1]-r[0]+1) + r[0]
}

// wait は疑似的な通信遅延。キャンセルされた場合はctxのエラーを返す
func (p *Provider) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ repository.WeatherRepository = (*Provider)(nil)
