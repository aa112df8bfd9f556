package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/df07/go-offline-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	debug := flag.Bool("debug", false, "Log every completed tile")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	webServer := server.NewServer(*port, log.Logger)
	log.Info().Msgf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Fatal().Err(err).Msg("http server crashed")
	}
}
