package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/you/hotel-reservations/internal/domain"
	"github.com/you/hotel-reservations/internal/service"
)

type RoomHandler struct {
	svc *service.RoomSvc
}

func NewRoomHandler(svc *service.RoomSvc) *RoomHandler {
	return &RoomHandler{svc: svc}
}

type roomInput struct {
	HotelID       string          `json:"hotel_id" binding:"required"`
	RoomNumber    string          `json:"room_number" binding:"required"`
	RoomType      string          `json:"room_type" binding:"required"`
	PricePerNight decimal.Decimal `json:"price_per_night" binding:"required"`
	MaxOccupancy  int             `json:"max_occupancy"`
	Description   string          `json:"description"`
	IsAvailable   bool            `json:"is_available"`
	FloorNumber   int             `json:"floor_number"`
}

func (in roomInput) toDomain() *domain.Room {
	return &domain.Room{
		HotelID:       in.HotelID,
		RoomNumber:    in.RoomNumber,
		RoomType:      domain.RoomType(in.RoomType),
		PricePerNight: in.PricePerNight,
		MaxOccupancy:  in.MaxOccupancy,
		Description:   in.Description,
		IsAvailable:   in.IsAvailable,
		FloorNumber:   in.FloorNumber,
	}
}

// GET /v1/hotels/:id/rooms
func (h *RoomHandler) ListByHotel(c *gin.Context) {
	rooms, err := h.svc.ByHotel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GET /v1/hotels/:id/rooms/available?check_in=...&check_out=...
func (h *RoomHandler) ListAvailable(c *gin.Context) {
	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be YYYY-MM-DD"})
		return
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be YYYY-MM-DD"})
		return
	}

	rooms, err := h.svc.FindAvailable(c.Request.Context(), c.Param("id"), checkIn, checkOut)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GET /v1/rooms/:id
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.svc.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// POST /v1/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var in roomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.svc.Create(c.Request.Context(), in.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// PUT /v1/rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	var in roomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.svc.Update(c.Request.Context(), c.Param("id"), in.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DELETE /v1/rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
