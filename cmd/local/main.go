// Command gmpost runs a single generate-and-publish invocation outside Lambda.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gm-poster/internal/bootstrap"
)

const dryRunPostID = "dry-run"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:          "gmpost",
		Short:        "Generate one GM tweet and publish it",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("load env file %s: %w", envFile, err)
				}
			}
			ctx := cmd.Context()

			cfg, err := bootstrap.LoadConfig(ctx, os.Getenv)
			if err != nil {
				return err
			}
			var opts []bootstrap.Option
			if dryRun {
				opts = append(opts, bootstrap.WithPublisher(dryRunPublisher{}))
			}
			h, err := bootstrap.NewHandler(cfg, opts...)
			if err != nil {
				return err
			}

			resp, err := h.Handle(ctx, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", resp.StatusCode, resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("invocation failed with status %d", resp.StatusCode)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file loaded before configuration is read")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "generate and validate the tweet without publishing it")
	return cmd
}

// dryRunPublisher logs the text instead of posting it.
type dryRunPublisher struct{}

func (dryRunPublisher) Publish(ctx context.Context, text string) (string, error) {
	slog.InfoContext(ctx, "dry run: tweet not published", "text", text)
	return dryRunPostID, nil
}
