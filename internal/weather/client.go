package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const dailyFields = "temperature_2m_max,temperature_2m_min,wind_speed_10m_max,weather_code"

// Daily is the single-day forecast consumed by the suitability gate.
type Daily struct {
	TempMin float64
	TempMax float64
	WindMax float64
	Code    int
}

type forecastResponse struct {
	Daily struct {
		Time    []string  `json:"time"`
		TempMax []float64 `json:"temperature_2m_max"`
		TempMin []float64 `json:"temperature_2m_min"`
		WindMax []float64 `json:"wind_speed_10m_max"`
		Code    []int     `json:"weather_code"`
	} `json:"daily"`
}

// Client fetches daily forecasts from an Open-Meteo compatible endpoint.
type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// DailyForecast requests the forecast for a single date. The provider returns
// per-day arrays aligned to the requested range; index 0 is the only day here.
func (c *Client) DailyForecast(ctx context.Context, lat, lon float64, date time.Time) (Daily, error) {
	day := date.Format("2006-01-02")

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("daily", dailyFields)
	q.Set("timezone", "auto")
	q.Set("start_date", day)
	q.Set("end_date", day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/forecast?"+q.Encode(), nil)
	if err != nil {
		return Daily{}, err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return Daily{}, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return Daily{}, fmt.Errorf("forecast request failed: %s (%d)", string(body), res.StatusCode)
	}

	var fr forecastResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return Daily{}, fmt.Errorf("parse forecast json failed: %w", err)
	}
	d := fr.Daily
	if len(d.TempMax) == 0 || len(d.TempMin) == 0 || len(d.WindMax) == 0 || len(d.Code) == 0 {
		return Daily{}, fmt.Errorf("no forecast data for %s", day)
	}

	return Daily{
		TempMin: d.TempMin[0],
		TempMax: d.TempMax[0],
		WindMax: d.WindMax[0],
		Code:    d.Code[0],
	}, nil
}
