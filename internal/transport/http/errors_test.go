package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/hotel-reservations/internal/domain"
)

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid dates", domain.ErrInvalidDateRange("check-out date must be after check-in date"), http.StatusBadRequest},
		{"not found", domain.ErrNotFound("reservation", "abc"), http.StatusNotFound},
		{"room taken", domain.ErrRoomNotAvailable("r1"), http.StatusConflict},
		{"weather gate", domain.ErrWeatherCheckFailed("unable to retrieve weather forecast", nil), http.StatusServiceUnavailable},
		{"bad transition", domain.ErrInvalidStateTransition("CHECKED_OUT", "CONFIRMED"), http.StatusConflict},
		{"internal", domain.ErrInternal("save reservation", errors.New("disk full")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeError(c, tc.err)

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			if body := w.Body.String(); body == "" || body == "{}" {
				t.Fatalf("body %q should carry the error message", body)
			}
		})
	}
}
