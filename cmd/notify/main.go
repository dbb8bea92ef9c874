package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/you/hotel-reservations/internal/notify"
	"github.com/you/hotel-reservations/pkg/config"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	consumer := notify.NewConsumer(notify.Config{
		RabbitURL:   cfg.RabbitURL,
		Exchange:    cfg.ReservationExchange,
		Queue:       "reservation.notifications",
		Bindings:    []string{"reservation.*"},
		Prefetch:    8,
		UseDLX:      true,
		DLXName:     cfg.ReservationExchange + ".dlx",
		DLXQueue:    "reservation.notifications.dead",
		ServiceName: "notify",
	}, notify.NewConsole())

	// the broker may come up after us
	for {
		if err := consumer.Connect(); err == nil {
			break
		} else {
			log.Println("[notify] connect:", err, "retrying in 3s")
			time.Sleep(3 * time.Second)
		}
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- consumer.Run(ctx) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sig:
		log.Println("[notify] shutting down")
		cancel()
		<-done
	case err := <-done:
		if err != nil {
			log.Fatal(err)
		}
	}
	log.Println("[notify] stopped")
}
