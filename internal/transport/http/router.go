package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/you/hotel-reservations/internal/service"
)

// NewRouter wires every handler into a gin engine.
func NewRouter(
	reservations *service.ReservationSvc,
	hotels *service.HotelSvc,
	rooms *service.RoomSvc,
	guests *service.GuestSvc,
	weather *service.WeatherSvc,
) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	rh := NewReservationHandler(reservations)
	hh := NewHotelHandler(hotels)
	oh := NewRoomHandler(rooms)
	gh := NewGuestHandler(guests, reservations)
	wh := NewWeatherHandler(weather)

	v1 := r.Group("/v1")
	{
		v1.GET("/hotels", hh.List)
		v1.POST("/hotels", hh.Create)
		v1.GET("/hotels/:id", hh.Get)
		v1.PUT("/hotels/:id", hh.Update)
		v1.DELETE("/hotels/:id", hh.Delete)
		v1.GET("/hotels/:id/rooms", oh.ListByHotel)
		v1.GET("/hotels/:id/rooms/available", oh.ListAvailable)

		v1.POST("/rooms", oh.Create)
		v1.GET("/rooms/:id", oh.Get)
		v1.PUT("/rooms/:id", oh.Update)
		v1.DELETE("/rooms/:id", oh.Delete)

		v1.GET("/guests", gh.List)
		v1.POST("/guests", gh.Create)
		v1.GET("/guests/:id", gh.Get)
		v1.PUT("/guests/:id", gh.Update)
		v1.DELETE("/guests/:id", gh.Delete)
		v1.GET("/guests/:id/reservations", gh.Reservations)

		v1.GET("/reservations", rh.List)
		v1.POST("/reservations", rh.Create)
		v1.POST("/reservations/expire", rh.Expire)
		v1.GET("/reservations/code/:code", rh.GetByCode)
		v1.GET("/reservations/:id", rh.Get)
		v1.PATCH("/reservations/:id", rh.Update)
		v1.POST("/reservations/:id/confirm", rh.Confirm)
		v1.POST("/reservations/:id/cancel", rh.Cancel)
		v1.POST("/reservations/:id/check-in", rh.CheckIn)
		v1.POST("/reservations/:id/check-out", rh.CheckOut)

		v1.GET("/weather", wh.Get)
	}

	return r
}
