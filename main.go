package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/oviedojeepclub/clubhub/internal/event"
	"github.com/oviedojeepclub/clubhub/internal/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatal().Err(err).Msg("cannot parse configuration from environment variables")
	}

	// "clubhub upload-events <file>" validates a local events JSON file and
	// replaces the calendar blob with it, then exits.
	if len(os.Args) == 3 && os.Args[1] == "upload-events" {
		uploadEvents(cfg, os.Args[2])
		return
	}

	run(cfg)
}

func uploadEvents(cfg Config, path string) {
	store, err := storage.NewBlobStore(cfg.AzureStorageConnectionString)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to blob storage")
	}

	if err := event.ProcessFile(context.Background(), afero.NewOsFs(), path, store); err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("events file rejected")
	}
	fmt.Printf("%s uploaded\n", path)
}
