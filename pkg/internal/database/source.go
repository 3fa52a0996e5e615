package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var C *gorm.DB

type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...any) {
	log.Warn().Msgf(format, args...)
}

func NewGorm() error {
	var err error
	dsn := viper.GetString("database.dsn")

	C, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Error translation lets the store layer detect unique-index
		// violations as gorm.ErrDuplicatedKey.
		TranslateError: true,
		Logger:         logger.New(gormLogWriter{}, logger.Config{LogLevel: logger.Warn}),
	})
	if err != nil {
		return fmt.Errorf("unable to open database: %w", err)
	}

	return nil
}
