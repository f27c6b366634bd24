package mockweather

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WeatherWise-App/internal/domain/model"
)

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newTestProvider(seed uint64) *Provider {
	opts := NoLatencyOptions()
	opts.Rand = rand.New(rand.NewPCG(seed, seed+1))
	opts.Now = func() time.Time { return fixedNow }
	return NewProvider(opts)
}

func inRange(v float64, r [2]int) bool {
	return v >= float64(r[0]) && v <= float64(r[1])
}

func TestGetCurrentWeather_ArchetypeBounds(t *testing.T) {
	p := newTestProvider(42)
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		snapshot, err := p.GetCurrentWeather(ctx, "Tokyo")
		require.NoError(t, err)

		// コードに一致する型の範囲内に全ての数値が収まる
		var matched *archetype
		for j := range archetypes {
			if archetypes[j].code == snapshot.ConditionCode {
				matched = &archetypes[j]
				break
			}
		}
		require.NotNil(t, matched, "未知のコード: %s", snapshot.ConditionCode)
		assert.True(t, inRange(snapshot.TemperatureC, matched.tempRange), "気温 %v", snapshot.TemperatureC)
		assert.True(t, inRange(snapshot.HumidityPct, matched.humidityRange), "湿度 %v", snapshot.HumidityPct)
		assert.True(t, inRange(snapshot.WindKph, matched.windRange), "風速 %v", snapshot.WindKph)
		assert.Equal(t, matched.text, snapshot.ConditionText)
		assert.Equal(t, matched.precipitation, snapshot.PrecipitationMm)
		assert.Equal(t, "Tokyo", snapshot.LocationName)
		assert.Equal(t, fixedNow.UnixMilli(), snapshot.CapturedAtEpochMs)
	}
}

func TestGetCurrentWeather_CoversAllArchetypes(t *testing.T) {
	p := newTestProvider(7)
	seen := map[model.ConditionCode]bool{}
	for i := 0; i < 1000; i++ {
		snapshot, err := p.GetCurrentWeather(context.Background(), "London")
		require.NoError(t, err)
		seen[snapshot.ConditionCode] = true
	}
	assert.Len(t, seen, len(archetypes))
}

func TestGetCurrentWeather_SentinelLocation(t *testing.T) {
	p := newTestProvider(1)
	for _, loc := range []string{"error", "ERROR", "Error"} {
		snapshot, err := p.GetCurrentWeather(context.Background(), loc)
		assert.Nil(t, snapshot)

		var lookupErr *model.LookupError
		require.True(t, errors.As(err, &lookupErr), "%s はLookupErrorになるべき", loc)
		assert.Equal(t, model.LookupFailedMessage, lookupErr.Message)
	}

	// 部分一致はエラーにならない
	_, err := p.GetCurrentWeather(context.Background(), "errors")
	assert.NoError(t, err)
}

func TestGetForecast(t *testing.T) {
	p := newTestProvider(99)

	for run := 0; run < 50; run++ {
		forecast, err := p.GetForecast(context.Background(), "Paris")
		require.NoError(t, err)
		require.Len(t, forecast, model.ForecastDays)

		for i, day := range forecast {
			assert.Equal(t, fixedNow.AddDate(0, 0, i).Format("2006-01-02"), day.Date)
			assert.GreaterOrEqual(t, day.TempMaxC, float64(20-i))
			assert.LessOrEqual(t, day.TempMaxC, float64(29-i))
			assert.GreaterOrEqual(t, day.TempMinC, float64(10-i))
			assert.LessOrEqual(t, day.TempMinC, float64(14-i))
			assert.GreaterOrEqual(t, day.TempMaxC, day.TempMinC)
			assert.Contains(t, forecastConditions, day.ConditionCode)
			assert.Equal(t, forecastConditionTexts[day.ConditionCode], day.ConditionText)
		}
	}
}

func TestGetForecast_MonthBoundary(t *testing.T) {
	opts := NoLatencyOptions()
	opts.Now = func() time.Time { return time.Date(2026, 12, 30, 23, 0, 0, 0, time.UTC) }
	p := NewProvider(opts)

	forecast, err := p.GetForecast(context.Background(), "Oslo")
	require.NoError(t, err)
	dates := make([]string, 0, len(forecast))
	for _, day := range forecast {
		dates = append(dates, day.Date)
	}
	assert.Equal(t, []string{"2026-12-30", "2026-12-31", "2027-01-01", "2027-01-02", "2027-01-03"}, dates)
}

func TestSuggestLocations(t *testing.T) {
	p := newTestProvider(3)
	ctx := context.Background()

	t.Run("空のクエリは空", func(t *testing.T) {
		suggestions, err := p.SuggestLocations(ctx, "")
		require.NoError(t, err)
		assert.NotNil(t, suggestions)
		assert.Empty(t, suggestions)
	})

	t.Run("york", func(t *testing.T) {
		suggestions, err := p.SuggestLocations(ctx, "york")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(suggestions), maxSuggestions)
		require.NotEmpty(t, suggestions)
		for _, s := range suggestions {
			assert.Contains(t, strings.ToLower(s.Name), "york")
		}
		assert.Equal(t, "york City", suggestions[0].Name)
		assert.Equal(t, "US", suggestions[0].Country)
	})
}

func TestLatencyHonoursCancellation(t *testing.T) {
	opts := DefaultOptions()
	p := NewProvider(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.GetCurrentWeather(ctx, "Tokyo")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), opts.CurrentLatency)
}
