package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"proplines/internal/ingest/overrides"
	"proplines/internal/ingest/prizepicks"
	"proplines/internal/ingest/vlrgg"
	"proplines/internal/notify"
	"proplines/internal/pkg/config"
	"proplines/internal/pkg/export"
	"proplines/internal/pkg/logging"
	"proplines/internal/pkg/models"
	"proplines/internal/pkg/performance"
	"proplines/internal/pkg/validation"
	"proplines/internal/resolve"
)

const (
	defaultConfigPath = "configs/production.yaml"
)

func main() {
	var configPath string

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if _, err := logging.SetupLogger(&cfg.Logging, "proplines"); err != nil {
		log.Printf("Warning: failed to setup logging: %v, continuing with default logger", err)
	} else {
		slog.Info("Logging initialized", "service", "proplines")
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Telegram.BotToken = token
		slog.Info("Using Telegram bot token from environment")
	}
	if chatIDStr := os.Getenv("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		if chatID, err := strconv.ParseInt(chatIDStr, 10, 64); err == nil {
			cfg.Telegram.ChatID = chatID
			slog.Info("Using Telegram chat ID from environment", "chat_id", chatID)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, stopping...")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Run failed", "error", err)
		log.Fatalf("proplines: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	tracker := performance.NewTracker()

	var lines []models.LineRecord
	var refs []models.ReferenceEntity
	var ovs []models.OverrideRecord
	err := tracker.Stage("ingest", func() error {
		var err error
		if lines, err = prizepicks.NewProvider(cfg.Ingest).Lines(ctx); err != nil {
			return fmt.Errorf("failed to load lines: %w", err)
		}
		if refs, err = vlrgg.NewProvider(cfg.Ingest.PlayerMapsCSV).References(ctx); err != nil {
			return fmt.Errorf("failed to load references: %w", err)
		}
		if ovs, err = overrides.NewLoader(cfg.Ingest.OverridesCSV).Overrides(); err != nil {
			return fmt.Errorf("failed to load overrides: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("Inputs loaded", "lines", len(lines), "references", len(refs), "overrides", len(ovs))

	sanitizer := validation.NewSanitizer()
	for i := range lines {
		sanitizer.SanitizeLine(&lines[i])
	}
	for i := range refs {
		sanitizer.SanitizeReference(&refs[i])
	}

	resolver, err := resolve.NewResolver(cfg.Resolver, cfg.Aliases)
	if err != nil {
		return fmt.Errorf("failed to create resolver: %w", err)
	}
	var result *resolve.Result
	_ = tracker.Stage("resolve", func() error {
		result = resolver.Resolve(lines, refs, ovs)
		return nil
	})

	err = tracker.Stage("export", func() error {
		if err := export.NewExporter(cfg.Export).WriteFiles(result); err != nil {
			return fmt.Errorf("failed to write exports: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Println(export.RenderSummary(result))
	tracker.RecordCounts(len(lines), len(refs), len(result.Canonical), len(result.Unmatched))
	tracker.PrintSummary()

	if cfg.Telegram.Enabled {
		notifier := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err := notifier.NotifyRun(result); err != nil {
			slog.Error("Failed to send telegram notification", "error", err)
		}
	}

	return nil
}
