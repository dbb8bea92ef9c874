package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/hotel-reservations/internal/domain"
	"github.com/you/hotel-reservations/internal/weather"
	"github.com/you/hotel-reservations/pkg/cache"
	"github.com/you/hotel-reservations/pkg/config"
)

type fakeForecast struct {
	daily weather.Daily
	err   error
	calls int
}

func (f *fakeForecast) DailyForecast(_ context.Context, _, _ float64, _ time.Time) (weather.Daily, error) {
	f.calls++
	return f.daily, f.err
}

func testConfig() config.App {
	return config.App{
		MaxReservationDays:      30,
		CancellationHoursBefore: 48,
		CacheTTLMinutes:         10,
		MaxWindSpeedKmh:         50,
		MinTemperatureC:         -10,
		MaxTemperatureC:         45,
	}
}

func TestAssessSuitable(t *testing.T) {
	fc := &fakeForecast{daily: weather.Daily{TempMin: 15, TempMax: 25, WindMax: 5, Code: 0}}
	svc := NewWeatherSvc(fc, cache.NewMemory(), testConfig())

	a, err := svc.Assess(context.Background(), 13.75, 100.5, date(2025, 6, 1))
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if !a.SuitableForTravel {
		t.Fatal("clear sky with light wind should be suitable")
	}
	if a.Temperature != 20 {
		t.Fatalf("temperature = %.1f, want 20.0", a.Temperature)
	}
	if a.Description != "Clear sky" {
		t.Fatalf("description = %q", a.Description)
	}
	if a.Date != "2025-06-01" {
		t.Fatalf("date = %q", a.Date)
	}
}

func TestAssessUnsuitable(t *testing.T) {
	cases := []struct {
		name  string
		daily weather.Daily
	}{
		{"thunderstorm", weather.Daily{TempMin: 15, TempMax: 25, WindMax: 5, Code: 95}},
		{"high wind", weather.Daily{TempMin: 15, TempMax: 25, WindMax: 60, Code: 0}},
		{"too cold", weather.Daily{TempMin: -30, TempMax: -20, WindMax: 5, Code: 0}},
		{"too hot", weather.Daily{TempMin: 45, TempMax: 55, WindMax: 5, Code: 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := NewWeatherSvc(&fakeForecast{daily: c.daily}, cache.NewMemory(), testConfig())
			a, err := svc.Assess(context.Background(), 0, 0, date(2025, 6, 1))
			if err != nil {
				t.Fatalf("assess: %v", err)
			}
			if a.SuitableForTravel {
				t.Fatal("conditions should be unsuitable")
			}
		})
	}
}

func TestAssessWindBoundary(t *testing.T) {
	// wind equal to the threshold is already unsuitable
	fc := &fakeForecast{daily: weather.Daily{TempMin: 15, TempMax: 25, WindMax: 50, Code: 0}}
	svc := NewWeatherSvc(fc, cache.NewMemory(), testConfig())

	a, err := svc.Assess(context.Background(), 0, 0, date(2025, 6, 1))
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if a.SuitableForTravel {
		t.Fatal("wind at threshold should be unsuitable")
	}
}

func TestAssessCached(t *testing.T) {
	fc := &fakeForecast{daily: weather.Daily{TempMin: 15, TempMax: 25, WindMax: 5, Code: 0}}
	svc := NewWeatherSvc(fc, cache.NewMemory(), testConfig())

	ctx := context.Background()
	if _, err := svc.Assess(ctx, 13.75, 100.5, date(2025, 6, 1)); err != nil {
		t.Fatalf("first assess: %v", err)
	}
	if _, err := svc.Assess(ctx, 13.75, 100.5, date(2025, 6, 1)); err != nil {
		t.Fatalf("second assess: %v", err)
	}
	if fc.calls != 1 {
		t.Fatalf("provider called %d times, want 1", fc.calls)
	}

	// different date misses the cache
	if _, err := svc.Assess(ctx, 13.75, 100.5, date(2025, 6, 2)); err != nil {
		t.Fatalf("third assess: %v", err)
	}
	if fc.calls != 2 {
		t.Fatalf("provider called %d times, want 2", fc.calls)
	}
}

func TestAssessProviderFailure(t *testing.T) {
	fc := &fakeForecast{err: errors.New("connection refused")}
	svc := NewWeatherSvc(fc, cache.NewMemory(), testConfig())

	_, err := svc.Assess(context.Background(), 0, 0, date(2025, 6, 1))
	if domain.KindOf(err) != domain.KindWeatherCheckFailed {
		t.Fatalf("got %v, want WeatherCheckFailed", err)
	}
}
