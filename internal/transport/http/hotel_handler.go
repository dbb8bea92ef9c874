package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/hotel-reservations/internal/domain"
	"github.com/you/hotel-reservations/internal/service"
)

type HotelHandler struct {
	svc *service.HotelSvc
}

func NewHotelHandler(svc *service.HotelSvc) *HotelHandler {
	return &HotelHandler{svc: svc}
}

type hotelInput struct {
	Name        string  `json:"name" binding:"required"`
	Address     string  `json:"address" binding:"required"`
	City        string  `json:"city" binding:"required"`
	Country     string  `json:"country" binding:"required"`
	StarRating  int     `json:"star_rating"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	PhoneNumber string  `json:"phone_number"`
	Email       string  `json:"email"`
}

func (in hotelInput) toDomain() *domain.Hotel {
	return &domain.Hotel{
		Name:        in.Name,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		StarRating:  in.StarRating,
		Description: in.Description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
	}
}

// GET /v1/hotels?page=1&page_size=20&city=...&name=...
func (h *HotelHandler) List(c *gin.Context) {
	if city := c.Query("city"); city != "" {
		hs, err := h.svc.ByCity(c.Request.Context(), city)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, hs)
		return
	}
	if name := c.Query("name"); name != "" {
		hs, err := h.svc.SearchByName(c.Request.Context(), name)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, hs)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	hs, err := h.svc.List(c.Request.Context(), page-1, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hs)
}

// GET /v1/hotels/:id
func (h *HotelHandler) Get(c *gin.Context) {
	hotel, err := h.svc.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// POST /v1/hotels
func (h *HotelHandler) Create(c *gin.Context) {
	var in hotelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hotel, err := h.svc.Create(c.Request.Context(), in.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hotel)
}

// PUT /v1/hotels/:id
func (h *HotelHandler) Update(c *gin.Context) {
	var in hotelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hotel, err := h.svc.Update(c.Request.Context(), c.Param("id"), in.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// DELETE /v1/hotels/:id
func (h *HotelHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
