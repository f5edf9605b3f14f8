// Command migrate applies the declarative schema in migrations/schema.sql to
// the configured database via the atlas CLI.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"stayhub/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "print the planned DDL without applying it")
	devURL := flag.String("dev-url", "docker://postgres/16/dev", "scratch database atlas uses to plan the diff")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		slog.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.SchemaApply(context.Background(), &atlasexec.SchemaApplyParams{
		URL:         cfg.DB.BuildDSN(),
		To:          "file://migrations/schema.sql",
		DevURL:      *devURL,
		DryRun:      *dryRun,
		AutoApprove: !*dryRun,
	})
	if err != nil {
		slog.Error("schema apply failed", "error", err)
		os.Exit(1)
	}

	if res.Changes.Error != nil {
		slog.Error("schema apply reported a failed statement",
			"stmt", res.Changes.Error.Stmt,
			"error", res.Changes.Error.Text)
		os.Exit(1)
	}

	slog.Info("schema applied",
		"applied", len(res.Changes.Applied),
		"pending", len(res.Changes.Pending))
}
