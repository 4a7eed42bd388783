package config

import (
	"log/slog"

	"github.com/subosito/gotenv"
)

func LoadEnv() {
	if err := gotenv.Load(); err != nil {
		slog.Warn("No .env file found, using OS environment")
	}
}
