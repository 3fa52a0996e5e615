package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/plumehq/plume/pkg/internal"
	"github.com/plumehq/plume/pkg/internal/http/api"
	"github.com/plumehq/plume/pkg/internal/security"
	"github.com/plumehq/plume/pkg/internal/services"
	"github.com/plumehq/plume/pkg/internal/store"
)

type App struct {
	app *fiber.App
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, store.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		code = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		code = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrParentComment):
		code = fiber.StatusBadRequest
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

func NewServer(dataSrc store.Store, tokens security.TokenConfig) *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Plume",
		AppName:               "Plume v" + internal.AppVersion,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             50 * 1024 * 1024,
		ErrorHandler:          errorHandler,
	})

	app.Use(logger.New(logger.Config{
		Format: "${status} | ${latency} | ${method} ${path}\n",
		Output: log.Logger,
	}))

	api.MapAPIs(app, "/api/v1", dataSrc, tokens)

	return &App{app}
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}
