package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	pkg "github.com/plumehq/plume/pkg/internal"
	"github.com/plumehq/plume/pkg/internal/cache"
	"github.com/plumehq/plume/pkg/internal/database"
	"github.com/plumehq/plume/pkg/internal/http"
	"github.com/plumehq/plume/pkg/internal/security"
	"github.com/plumehq/plume/pkg/internal/services"
	"github.com/plumehq/plume/pkg/internal/store"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.CyanString(" ____  _\n|  _ \\| |_   _ _ __ ___   ___\n| |_) | | | | | '_ ` _ \\ / _ \\\n|  __/| | |_| | | | | | |  __/\n|_|   |_|\\__,_|_| |_| |_|\\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiCyan).Add(color.Bold).Sprintf("Plume"), pkg.AppVersion)
	fmt.Printf("The social content platform backend\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Prepare in-process cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	dataSrc := store.NewGorm(database.C)

	tokens := security.TokenConfig{
		Secret:          []byte(viper.GetString("security.jwt_secret")),
		AccessDuration:  viper.GetDuration("security.access_token_duration"),
		RefreshDuration: viper.GetDuration("security.refresh_token_duration"),
	}
	if len(tokens.Secret) == 0 {
		log.Fatal().Msg("Refuse to start without security.jwt_secret configured.")
	}
	if tokens.AccessDuration <= 0 {
		tokens.AccessDuration = time.Hour
	}
	if tokens.RefreshDuration <= 0 {
		tokens.RefreshDuration = 30 * 24 * time.Hour
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoDatabaseCleanup)
	quartz.Start()

	// Server
	go http.NewServer(dataSrc, tokens).Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
