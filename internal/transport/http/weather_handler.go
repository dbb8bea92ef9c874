package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/hotel-reservations/internal/service"
)

type WeatherHandler struct {
	svc *service.WeatherSvc
}

func NewWeatherHandler(svc *service.WeatherSvc) *WeatherHandler {
	return &WeatherHandler{svc: svc}
}

// GET /v1/weather?lat=...&lon=...&date=YYYY-MM-DD
func (h *WeatherHandler) Get(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat must be a number"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lon must be a number"})
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	a, err := h.svc.Assess(c.Request.Context(), lat, lon, date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
