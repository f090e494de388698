package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"gm-poster/internal/bootstrap"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	ctx := context.Background()

	// ---- Configuration (read only here; missing secrets stop the process) ----
	cfg, err := bootstrap.LoadConfig(ctx, os.Getenv)
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	h, err := bootstrap.NewHandler(cfg)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	slog.Info("handler ready", "model", cfg.Model, "param_store", cfg.ParamPrefix != "")
	lambda.Start(h.Handle)
}
