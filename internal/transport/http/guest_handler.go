package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/hotel-reservations/internal/domain"
	"github.com/you/hotel-reservations/internal/service"
)

type GuestHandler struct {
	svc          *service.GuestSvc
	reservations *service.ReservationSvc
}

func NewGuestHandler(svc *service.GuestSvc, reservations *service.ReservationSvc) *GuestHandler {
	return &GuestHandler{svc: svc, reservations: reservations}
}

type guestInput struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	PhoneNumber    string `json:"phone_number"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Nationality    string `json:"nationality"`
}

func (in guestInput) toDomain() *domain.Guest {
	return &domain.Guest{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		PhoneNumber:    in.PhoneNumber,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		Nationality:    in.Nationality,
	}
}

// GET /v1/guests?page=1&page_size=20&email=...
func (h *GuestHandler) List(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		g, err := h.svc.ByEmail(c.Request.Context(), email)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, g)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	gs, total, err := h.svc.List(c.Request.Context(), page-1, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guests": gs, "total": total})
}

// GET /v1/guests/:id
func (h *GuestHandler) Get(c *gin.Context) {
	g, err := h.svc.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// GET /v1/guests/:id/reservations
func (h *GuestHandler) Reservations(c *gin.Context) {
	list, err := h.reservations.ByGuest(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /v1/guests
func (h *GuestHandler) Create(c *gin.Context) {
	var in guestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := h.svc.Create(c.Request.Context(), in.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// PUT /v1/guests/:id
func (h *GuestHandler) Update(c *gin.Context) {
	var in guestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := h.svc.Update(c.Request.Context(), c.Param("id"), in.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// DELETE /v1/guests/:id
func (h *GuestHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
