// Команда проставляет статус Available объектам, созданным до введения статусов.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-RealtyService/internal/config"
	"github.com/m04kA/SMC-RealtyService/internal/infra/cache/propertycache"
	propertyRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/property"
	propertiesService "github.com/m04kA/SMC-RealtyService/internal/service/properties"
	"github.com/m04kA/SMC-RealtyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RealtyService/pkg/logger"

	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	// Результаты поиска со старыми статусами нужно сбросить
	var cache propertiesService.SearchCache = propertycache.Disabled{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		cache = propertycache.New(redisClient, time.Duration(cfg.Redis.TTL)*time.Second, nil)
	}

	// Файлы не трогаются, хранилище не нужно
	svc := propertiesService.NewService(
		propertyRepo.NewRepository(dbmetrics.Wrap(db, nil, "backfill")),
		nil,
		cache,
		log,
		1,
	)

	updated, err := svc.BackfillStatus(ctx)
	if err != nil {
		log.Fatal("Backfill failed: %v", err)
	}

	log.Info("Backfill completed: %d properties updated", updated)
}
