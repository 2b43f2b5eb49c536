package main

import (
	"github.com/sopheak-dev/agencyflow/internal/config"
	"github.com/sopheak-dev/agencyflow/internal/database"
	"github.com/sopheak-dev/agencyflow/internal/env"
	"github.com/sopheak-dev/agencyflow/internal/model"
	"go.uber.org/zap"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Database configuration: %+v", cfg.DB)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	db.Exec(`CREATE EXTENSION IF NOT EXISTS citext`)

	migrateErr := db.AutoMigrate(&model.User{}, &model.Project{}, &model.ProjectFile{}, &model.Notification{})
	if migrateErr != nil {
		logger.Panic(migrateErr)
	}
}
