package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/you/hotel-reservations/internal/repository"
	"github.com/you/hotel-reservations/internal/service"
	thttp "github.com/you/hotel-reservations/internal/transport/http"
	"github.com/you/hotel-reservations/internal/weather"
	"github.com/you/hotel-reservations/pkg/cache"
	"github.com/you/hotel-reservations/pkg/config"
	"github.com/you/hotel-reservations/pkg/db"
	"github.com/you/hotel-reservations/pkg/mq"
	"github.com/you/hotel-reservations/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())

	shutdownTracer := obs.InitTracer("hotel-reservations")
	defer func() { _ = shutdownTracer(context.Background()) }()

	// DB
	gdb := db.Open(cfg.PGHotelDSN)
	hotelRepo := repository.NewHotelRepo(gdb)
	must(0, hotelRepo.Migrate())
	roomRepo := repository.NewRoomRepo(gdb)
	guestRepo := repository.NewGuestRepo(gdb)
	resRepo := repository.NewReservationRepo(gdb)

	// Cache
	store := cache.NewRedis(cfg.RedisURL)
	defer store.Close()

	// Publisher for reservation.* events
	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.ReservationExchange))
	defer pub.Close()

	// Services
	forecast := weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherTimeout())
	weatherSvc := service.NewWeatherSvc(forecast, store, cfg)
	hotelSvc := service.NewHotelSvc(hotelRepo, store, cfg)
	roomSvc := service.NewRoomSvc(roomRepo, hotelRepo, store, cfg)
	guestSvc := service.NewGuestSvc(guestRepo)
	resSvc := service.NewReservationSvc(resRepo, roomRepo, guestRepo, hotelRepo, weatherSvc, store, pub, cfg)

	r := thttp.NewRouter(resSvc, hotelSvc, roomSvc, guestSvc, weatherSvc)
	srv := &http.Server{Addr: cfg.HotelHTTPAddr, Handler: r}

	go func() {
		log.Println("[hotel] HTTP listening on", cfg.HotelHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Println("[hotel] stopped")
}
