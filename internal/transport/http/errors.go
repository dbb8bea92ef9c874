package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/hotel-reservations/internal/domain"
)

var kindStatus = map[domain.ErrorKind]int{
	domain.KindInvalidDateRange:       http.StatusBadRequest,
	domain.KindNotFound:               http.StatusNotFound,
	domain.KindRoomNotAvailable:       http.StatusConflict,
	domain.KindWeatherCheckFailed:     http.StatusServiceUnavailable,
	domain.KindInvalidStateTransition: http.StatusConflict,
	domain.KindInternal:               http.StatusInternalServerError,
}

func writeError(c *gin.Context, err error) {
	status, ok := kindStatus[domain.KindOf(err)]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
