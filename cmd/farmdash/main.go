// Package main implements the farmdash terminal dashboard.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Hemanth040/farm-management-system/internal/app"
	"github.com/Hemanth040/farm-management-system/internal/credential"
	"github.com/Hemanth040/farm-management-system/internal/ingest"
	"github.com/Hemanth040/farm-management-system/internal/ingest/weather"
	"github.com/Hemanth040/farm-management-system/internal/logging"
	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/notify"
	"github.com/Hemanth040/farm-management-system/internal/store"
	appsync "github.com/Hemanth040/farm-management-system/internal/sync"
)

var (
	configPath string
	dbPath     string
	logLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "farmdash",
	Short:        "Farm management dashboard with reminders and warnings",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/farmdash/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func run() error {
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	logPath, err := logging.DefaultLogPath()
	if err != nil {
		return err
	}
	log, logCloser, err := logging.New(logPath, logLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	feed := notify.NewInAppAdapter(0)
	dispatcher := notify.NewDispatcher(log, buildAdapters(cfg, feed, log)...)

	interval := time.Duration(cfg.Display.RefreshIntervalSec) * time.Second
	scheduler := appsync.New(st, dispatcher, cfg.Location(), interval, log)

	if cfg.Advisories.URL != "" {
		importer := ingest.NewImporter(st, log)
		importer.Register(weather.NewAdapter(weather.NewClient(cfg.Advisories.URL, cfg.Advisories.Region)))
		scheduler.SetImporter(importer)
	}

	log.Info().Str("db", cfg.DBPath).Str("config", configPath).Msg("farmdash starting")

	p := tea.NewProgram(app.New(st, cfg, scheduler, feed, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	scheduler.Stop()
	return nil
}

// buildAdapters wires every channel adapter that has enough configuration
// to deliver. The in-app feed always works; email and webhooks need their
// endpoints configured and secrets present in the keyring.
func buildAdapters(cfg *model.AppConfig, feed *notify.InAppAdapter, log zerolog.Logger) []notify.Adapter {
	adapters := []notify.Adapter{feed}

	if cfg.SMTP.Host != "" {
		password, err := credential.Get(credential.KeySMTPPassword)
		if err != nil {
			log.Warn().Err(err).Msg("smtp password unavailable, email channel disabled")
		} else {
			adapters = append(adapters, notify.NewEmailAdapter(cfg.SMTP, password))
		}
	}

	if cfg.Webhooks.PushURL != "" {
		token, err := credential.Get(credential.KeyPushToken)
		if err != nil {
			log.Warn().Err(err).Msg("push token unavailable, push channel disabled")
		} else {
			adapters = append(adapters, notify.NewWebhookAdapter(model.ChannelPush, cfg.Webhooks.PushURL, token))
		}
	}

	if cfg.Webhooks.SMSURL != "" {
		token, err := credential.Get(credential.KeySMSToken)
		if err != nil {
			log.Warn().Err(err).Msg("sms token unavailable, sms channel disabled")
		} else {
			adapters = append(adapters, notify.NewWebhookAdapter(model.ChannelSMS, cfg.Webhooks.SMSURL, token))
		}
	}

	return adapters
}
