package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pupbiru/humanitix-auto-codes/internal/config"
	"github.com/pupbiru/humanitix-auto-codes/internal/logger"
	"github.com/pupbiru/humanitix-auto-codes/internal/rollout"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	service, err := rollout.BuildService(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	report, err := service.Run(context.Background())
	if err != nil {
		log.Error("ROLLOUT", fmt.Sprintf("Run aborted: %v", err))
		os.Exit(1)
	}

	pushed, uploaded := 0, 0
	for _, e := range report.Events {
		if e.DiscountsPushed {
			pushed++
		}
		if e.CodesUploaded {
			uploaded++
		}
	}
	log.LogRollout(report.RunID, fmt.Sprintf("Processed %d events: %d discount updates, %d code uploads", len(report.Events), pushed, uploaded))
}
