package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/you/hotel-reservations/internal/domain"
	"github.com/you/hotel-reservations/internal/weather"
	"github.com/you/hotel-reservations/pkg/cache"
	"github.com/you/hotel-reservations/pkg/config"
)

// ForecastClient is the external weather provider; the call carries the
// timeout configured on the underlying HTTP client.
type ForecastClient interface {
	DailyForecast(ctx context.Context, lat, lon float64, date time.Time) (weather.Daily, error)
}

// WeatherAssessment is the cached outcome of a suitability check for one
// location and date. It is derived data, never persisted as an entity.
type WeatherAssessment struct {
	Temperature       float64 `json:"temperature"`
	WindSpeed         float64 `json:"wind_speed"`
	Description       string  `json:"description"`
	SuitableForTravel bool    `json:"suitable_for_travel"`
	Date              string  `json:"date"`
}

type WeatherSvc struct {
	client ForecastClient
	cache  cache.Cache
	cfg    config.App
}

func NewWeatherSvc(client ForecastClient, c cache.Cache, cfg config.App) *WeatherSvc {
	return &WeatherSvc{client: client, cache: c, cfg: cfg}
}

// Assess returns the travel-suitability verdict for the given coordinates and
// date, reading through the cache. Provider failures, timeouts and empty
// responses all surface as WeatherCheckFailed.
func (s *WeatherSvc) Assess(ctx context.Context, lat, lon float64, date time.Time) (WeatherAssessment, error) {
	key := weatherCacheKey(lat, lon, date)

	if a, ok, err := cache.GetJSON[WeatherAssessment](ctx, s.cache, key); err == nil && ok {
		return a, nil
	}

	d, err := s.client.DailyForecast(ctx, lat, lon, date)
	if err != nil {
		return WeatherAssessment{}, domain.ErrWeatherCheckFailed("unable to retrieve weather forecast", err)
	}

	avgTemp := (d.TempMax + d.TempMin) / 2
	severe := weather.Severe(d.Code)
	suitable := !severe &&
		d.WindMax < s.cfg.MaxWindSpeedKmh &&
		avgTemp >= s.cfg.MinTemperatureC &&
		avgTemp <= s.cfg.MaxTemperatureC

	a := WeatherAssessment{
		Temperature:       avgTemp,
		WindSpeed:         d.WindMax,
		Description:       weather.Describe(d.Code),
		SuitableForTravel: suitable,
		Date:              date.Format("2006-01-02"),
	}

	if err := cache.PutJSON(ctx, s.cache, key, a, s.cfg.CacheTTL()); err != nil {
		log.Printf("[weather] cache put %s failed: %v", key, err)
	}
	return a, nil
}

func weatherCacheKey(lat, lon float64, date time.Time) string {
	return fmt.Sprintf("weather:%s:%s:%s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
		date.Format("2006-01-02"))
}
