// Package db contains things related to the relational store
package db

import (
	"errors"
	"fmt"

	"truthlink/message-api/internal/model"

	v "github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the store selected by storage.type and migrates the schema. The
// handle is owned by the caller and injected everywhere else, never cached in
// a package global.
func New() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	dsn := v.GetString("storage.dsn")

	switch v.GetString("storage.type") {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	case "postgres":
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	default:
		return nil, errors.New("invalid storage type provided")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Message{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
