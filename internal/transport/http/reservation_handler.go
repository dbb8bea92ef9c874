package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/hotel-reservations/internal/domain"
	"github.com/you/hotel-reservations/internal/service"
)

const dateLayout = "2006-01-02"

type ReservationHandler struct {
	svc *service.ReservationSvc
}

func NewReservationHandler(svc *service.ReservationSvc) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

// POST /v1/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	var in struct {
		GuestID         string `json:"guest_id" binding:"required"`
		RoomID          string `json:"room_id" binding:"required"`
		CheckIn         string `json:"check_in" binding:"required"`  // 2006-01-02
		CheckOut        string `json:"check_out" binding:"required"` // 2006-01-02
		NumberOfGuests  int    `json:"number_of_guests" binding:"required,min=1"`
		SpecialRequests string `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, err := parseDate(in.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be YYYY-MM-DD"})
		return
	}
	checkOut, err := parseDate(in.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be YYYY-MM-DD"})
		return
	}

	res, err := h.svc.Create(c.Request.Context(), service.CreateReservationInput{
		GuestID:         in.GuestID,
		RoomID:          in.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumberOfGuests:  in.NumberOfGuests,
		SpecialRequests: in.SpecialRequests,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /v1/reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	res, err := h.svc.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /v1/reservations/code/:code
func (h *ReservationHandler) GetByCode(c *gin.Context) {
	res, err := h.svc.ByConfirmationCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /v1/reservations?page=1&page_size=20&guest_id=...&room_id=...&status=...
func (h *ReservationHandler) List(c *gin.Context) {
	if st := c.Query("status"); st != "" {
		list, err := h.svc.ByStatus(c.Request.Context(), domain.ReservationStatus(st))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reservations": list, "total": int64(len(list))})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}

	list, total, err := h.svc.List(c.Request.Context(), page-1, size, c.Query("guest_id"), c.Query("room_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": list, "total": total})
}

// POST /v1/reservations/:id/confirm
func (h *ReservationHandler) Confirm(c *gin.Context) {
	h.mutate(c, h.svc.Confirm)
}

// POST /v1/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *gin.Context) {
	h.mutate(c, h.svc.Cancel)
}

// POST /v1/reservations/:id/check-in
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	h.mutate(c, h.svc.CheckIn)
}

// POST /v1/reservations/:id/check-out
func (h *ReservationHandler) CheckOut(c *gin.Context) {
	h.mutate(c, h.svc.CheckOut)
}

// PATCH /v1/reservations/:id
func (h *ReservationHandler) Update(c *gin.Context) {
	var in struct {
		CheckIn         *string `json:"check_in"`
		CheckOut        *string `json:"check_out"`
		NumberOfGuests  *int    `json:"number_of_guests"`
		SpecialRequests *string `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var upd service.UpdateReservationInput
	if in.CheckIn != nil {
		t, err := parseDate(*in.CheckIn)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be YYYY-MM-DD"})
			return
		}
		upd.CheckIn = &t
	}
	if in.CheckOut != nil {
		t, err := parseDate(*in.CheckOut)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be YYYY-MM-DD"})
			return
		}
		upd.CheckOut = &t
	}
	upd.NumberOfGuests = in.NumberOfGuests
	upd.SpecialRequests = in.SpecialRequests

	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /v1/reservations/expire
func (h *ReservationHandler) Expire(c *gin.Context) {
	n, err := h.svc.ExpirePending(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": n})
}

func (h *ReservationHandler) mutate(c *gin.Context, op func(ctx context.Context, id string) (*domain.Reservation, error)) {
	res, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
