package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/pupbiru/humanitix-auto-codes/internal/config"
	"github.com/pupbiru/humanitix-auto-codes/internal/settings"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	client := &http.Client{Timeout: cfg.Console.Timeout}

	raw, err := settings.FetchConsoleConfig(client, cfg.Console.BaseURL+"/signin")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := settings.WriteConsoleConfig(cfg.Settings.SettingsPath, raw); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", cfg.Settings.SettingsPath)
}
