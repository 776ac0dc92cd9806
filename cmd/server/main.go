package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/exampilot/exampilot/internal/api"
	"github.com/exampilot/exampilot/internal/db"
	"github.com/exampilot/exampilot/internal/gemini"
	"github.com/exampilot/exampilot/internal/middleware"
	"github.com/exampilot/exampilot/internal/services"
	"github.com/exampilot/exampilot/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	logger := utils.NewLogger(os.Getenv("EXAMPILOT_LOG_PATH"))
	defer func() { _ = logger.Sync() }()
	utils.RegisterMetrics()

	addr := utils.SafeEnv("EXAMPILOT_ADDR", ":8080")
	dbPath := utils.SafeEnv("EXAMPILOT_DB_PATH", "./data/exampilot.db")
	commit := os.Getenv("EXAMPILOT_COMMIT")
	buildTime := os.Getenv("EXAMPILOT_BUILD_TIME")

	store, err := db.Open(dbPath)
	if err != nil {
		logger.Fatal("open_store_failed", zap.String("path", dbPath), zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	tracker := services.NewTrackerService(store, logger)
	client := gemini.NewClient(
		os.Getenv("GEMINI_API_KEY"),
		os.Getenv("GEMINI_MODEL"),
		os.Getenv("GEMINI_BASE_URL"),
	)
	mentor := services.NewMentorService(client, logger)

	mux := http.NewServeMux()
	api.NewRouter(tracker, mentor, logger).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		locale := middleware.LocaleFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"name":   "ExamPilot API",
			"locale": locale,
			"msg":    utils.T(locale, "health.ok"),
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	handler := middleware.Recovery(logger)(
		middleware.RequestLogger(logger)(
			middleware.SecureHeaders(
				middleware.CORS(
					middleware.NoStore(
						middleware.Locale(mux))))))

	logger.Info("server_listening", zap.String("addr", addr), zap.String("db", dbPath))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("server_error", zap.Error(err))
	}
}
