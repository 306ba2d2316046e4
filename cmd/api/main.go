package main

import (
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"stockbot/internal/config"
	dbpkg "stockbot/internal/db"
	"stockbot/internal/routes"
	"stockbot/internal/tasks"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := dbpkg.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var result map[string]interface{}
	db.Raw("SELECT 1").Scan(&result)

	if err := dbpkg.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	router := routes.SetupRouter(db, cfg, tasks.NewAsynqEnqueuer(asynqClient))

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
