package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"netops_reports/config"
	reportmodels "netops_reports/internal/api/report/models"
	"netops_reports/internal/database"
	"netops_reports/internal/global"
)

// InitGlobal initializes the global state: collection names, validator,
// server config, database connection and the reports output directory.
func InitGlobal() {
	initColNames()
	initValidator()
	initConfig()
	initDatabase_MongoDB()
	initReportsDir()
}

// initColNames sets the MongoDB collection names.
func initColNames() {
	global.MongoDB_ColNames.Reports = "reports"

	logrus.Info("Initialized collection names")
}

// initValidator registers the custom validators (no_xss, report_type, exists).
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// initConfig loads and parses the server configuration.
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initDatabase_MongoDB connects to MongoDB, ensures the collections exist
// and creates the indexes declared on the models.
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.Connect(global.ServerConfig.MongoDB_ConnectionURI)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	dbName := global.ServerConfig.MongoDB_DBName
	reportsCol := global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Reports)
	if err := database.CreateIndexes(context.TODO(), reportsCol, reportmodels.Report{}); err != nil {
		logrus.Fatalf("Failed to create report indexes: %v", err)
	}
	logrus.Info("Created report indexes")
}

// initReportsDir makes sure the PDF output directory exists.
func initReportsDir() {
	if err := os.MkdirAll(global.ServerConfig.ReportsDir, 0o755); err != nil {
		logrus.Fatalf("Failed to create reports directory %s: %v", global.ServerConfig.ReportsDir, err)
	}
	logrus.Infof("Reports directory ready: %s", global.ServerConfig.ReportsDir)
}
