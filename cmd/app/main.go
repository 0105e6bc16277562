package main

import (
	"fmt"
	"log/slog"
	"os"

	"freightflow/cmd"
	_ "freightflow/docs"
	httpin "freightflow/internal/adapters/in/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := connectToDatabase(configs)
	if err != nil {
		logger.Error("Database connection failed", "error", err)
		os.Exit(1)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		logger.Error("Composition failed", "error", err)
		os.Exit(1)
	}

	orchestrator, err := app.CreateOrchestrator()
	if err != nil {
		logger.Error("Orchestrator setup failed", "error", err)
		os.Exit(1)
	}

	jobManager := app.CreateJobManager(orchestrator)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Starting scheduled jobs failed", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	server, err := app.CreateHTTPServer(orchestrator)
	if err != nil {
		logger.Error("HTTP server setup failed", "error", err)
		os.Exit(1)
	}

	startWebServer(server, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		NotifierWebhookURL: os.Getenv("NOTIFIER_WEBHOOK_URL"),

		TenderBidWindowHours:        os.Getenv("TENDER_BID_WINDOW_HOURS"),
		TenderEvaluationWindowHours: os.Getenv("TENDER_EVALUATION_WINDOW_HOURS"),
		TenderReminderLeadHours:     os.Getenv("TENDER_REMINDER_LEAD_HOURS"),
		MaxMatchedSuppliers:         os.Getenv("MAX_MATCHED_SUPPLIERS"),
		AutoSelectThreshold:         os.Getenv("AUTO_SELECT_THRESHOLD"),
		OrderMarkupPercent:          os.Getenv("ORDER_MARKUP_PERCENT"),
		SideEffectTimeoutSeconds:    os.Getenv("SIDE_EFFECT_TIMEOUT_SECONDS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func connectToDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns unique index violations into gorm.ErrDuplicatedKey,
	// which the order repository relies on.
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func startWebServer(server *httpin.Server, port string) {
	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
