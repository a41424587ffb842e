package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "github.com/Poscom2010/Fleetrack-sub000/internal/api/http"
	"github.com/Poscom2010/Fleetrack-sub000/internal/config"
	"github.com/Poscom2010/Fleetrack-sub000/internal/logger"
	"github.com/Poscom2010/Fleetrack-sub000/internal/repository"
	"github.com/Poscom2010/Fleetrack-sub000/internal/repository/memory"
	"github.com/Poscom2010/Fleetrack-sub000/internal/repository/postgres"
	"github.com/Poscom2010/Fleetrack-sub000/internal/service"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
)

type store struct {
	repository.VehicleRepository
	repository.ServiceRecordRepository
	repository.AssignmentRepository
	repository.DriverRepository
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Fleetrack server...", "log_level", cfg.Log.Level, "store", cfg.Store.Type)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	var st store
	switch cfg.Store.Type {
	case "memory":
		logger.Info("Using in-memory store (data is not persisted)")
		mem := memory.NewStore()
		st = store{mem.VehicleRepository, mem.ServiceRecordRepository, mem.AssignmentRepository, mem.DriverRepository}
	default:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Error("Failed to ping database", "error", err)
			log.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")

		pg := postgres.NewStore(db)
		st = store{pg.VehicleRepository, pg.ServiceRecordRepository, pg.AssignmentRepository, pg.DriverRepository}
	}

	fleetSvc := service.NewFleetService(
		st.VehicleRepository,
		st.ServiceRecordRepository,
		st.AssignmentRepository,
		st.DriverRepository,
	)

	router := mux.NewRouter()
	httpapi.RegisterRoutes(router, fleetSvc)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
