package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wavearena/internal/config"
	"wavearena/internal/network"
	"wavearena/internal/protocol"
	"wavearena/internal/room"
)

func main() {
	var envFile string
	flag.StringVar(&envFile, "env", ".env", "environment file")
	flag.Parse()

	if err := config.InitEnv(envFile); err != nil {
		log.Fatal(err)
	}
	env := config.LoadServerEnv()

	tuning, weapons, err := config.LoadAll(env.ConfigDir)
	if err != nil {
		log.Fatal(err)
	}

	rooms := room.NewManager(room.Options{
		TickHz:      env.TickHz,
		BroadcastHz: protocol.BroadcastHz,
		Tuning:      tuning,
		Weapons:     weapons,
		Seed:        env.Seed,
		Sink:        room.LogSink{},
	})
	defer rooms.Close()

	srv := &http.Server{
		Addr:              env.Addr,
		Handler:           network.NewServer(rooms).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	log.Printf("listening on %s (ws endpoint: /ws?room=CODE, %d Hz)", env.Addr, env.TickHz)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
