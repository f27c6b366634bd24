package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers はルーターに登録するハンドラーの組
type Handlers struct {
	Weather *WeatherHandler
	Trip    *TripHandler
	Session *SessionHandler
}

// NewRouter はGinルーターをセットアップする
func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "WeatherWise-App",
		})
	})

	weather := r.Group("/weather")
	{
		weather.GET("/current", h.Weather.GetCurrentWeather)
		weather.GET("/forecast", h.Weather.GetForecast)
		weather.POST("/tips", h.Weather.PostWeatherTips)
	}
	r.GET("/locations/suggest", h.Weather.SuggestLocations)

	trips := r.Group("/trips")
	{
		trips.POST("/plan", h.Trip.PostTripPlan)
	}

	sessions := r.Group("/sessions")
	{
		sessions.POST("", h.Session.PostSession)
		sessions.DELETE("/:id", h.Session.DeleteSession)
		sessions.GET("/:id/weather", h.Session.GetWeather)
		sessions.POST("/:id/weather/search", h.Session.PostWeatherSearch)
		sessions.POST("/:id/weather/tips", h.Session.PostWeatherTips)
		sessions.GET("/:id/trip", h.Session.GetTrip)
		sessions.POST("/:id/trip/plan", h.Session.PostTripPlan)
	}

	return r
}
