package view

import (
	"strings"

	"WeatherWise-App/internal/domain/model"
)

// アイコン識別子（描画はクライアント側）
const (
	IconThermometerSun       = "thermometer-sun"
	IconThermometerSnowflake = "thermometer-snowflake"
	IconThermometer          = "thermometer"
	IconCloud                = "cloud"
	IconCloudSun             = "cloud-sun"
	IconCloudRain            = "cloud-rain"
	IconCloudLightning       = "cloud-lightning"
	IconCloudFog             = "cloud-fog"
	IconCloudy               = "cloudy"
	IconWind                 = "wind"
	IconSun                  = "sun"
	IconUmbrella             = "umbrella"
	IconSnowflake            = "snowflake"
	IconZap                  = "zap"
	IconHelpCircle           = "help-circle"
	IconDroplets             = "droplets"
	IconGauge                = "gauge"
)

var conditionIcons = map[model.ConditionCode]string{
	model.ConditionSunny:        IconThermometerSun,
	model.ConditionCloudy:       IconCloud,
	model.ConditionPartlyCloudy: IconCloudSun,
	model.ConditionRainy:        IconCloudRain,
	model.ConditionSnowy:        IconThermometerSnowflake,
	model.ConditionThunderstorm: IconCloudLightning,
	model.ConditionWindy:        IconWind,
	model.ConditionFoggy:        IconCloudFog,
}

// ConditionIcon は天気コードからアイコンを選ぶ。未知のコードはhelp-circle
func ConditionIcon(code model.ConditionCode) string {
	if icon, ok := conditionIcons[code]; ok {
		return icon
	}
	return IconHelpCircle
}

// waypointIconRules は上から順に評価する
var waypointIconRules = []struct {
	keywords []string
	icon     string
}{
	{keywords: []string{"sun", "clear"}, icon: IconSun},
	{keywords: []string{"cloud"}, icon: IconCloudy},
	{keywords: []string{"rain", "drizzle"}, icon: IconUmbrella},
	{keywords: []string{"snow"}, icon: IconSnowflake},
	{keywords: []string{"thunder", "storm"}, icon: IconZap},
	{keywords: []string{"wind"}, icon: IconWind},
	{keywords: []string{"fog"}, icon: IconCloudy},
}

// WaypointWeatherIcon はモデルが生成した自由記述の天気からキーワードでアイコンを選ぶ
func WaypointWeatherIcon(condition string) string {
	lower := strings.ToLower(condition)
	for _, rule := range waypointIconRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.icon
			}
		}
	}
	return IconThermometer
}
