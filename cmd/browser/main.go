package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"poi-map-service/internal/adapters/apiclient"
	"poi-map-service/internal/adapters/notify"
	"poi-map-service/internal/config"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
	"poi-map-service/internal/session"
	"poi-map-service/internal/sheet"
	"poi-map-service/internal/tui"
)

var (
	configPath string
	apiURL     string
	user       string
	logPath    string
	desktop    bool
	static     bool
)

// Anyang, where the seed data lives.
var defaultCenter = domain.Coordinates{Lat: 37.3848, Lon: 126.9322}

var rootCmd = &cobra.Command{
	Use:           "browser",
	Short:         "Browse nearby places on a terminal map",
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	config.LoadEnv()

	f := rootCmd.Flags()
	f.StringVar(&configPath, "config", config.Get("BROWSER_CONFIG", "browser.yaml"), "browser config file")
	f.StringVar(&apiURL, "api", config.Get("API_URL", ""), "items API base URL (overrides config)")
	f.StringVar(&user, "user", config.Get("BROWSER_USER", ""), "user name for rating (overrides config)")
	f.StringVar(&logPath, "log", config.Get("BROWSER_LOG", "browser.log"), "log file")
	f.BoolVar(&desktop, "notify", config.GetBool("BROWSER_NOTIFY", false), "mirror error notices as desktop notifications")
	f.BoolVar(&static, "no-animation", false, "resize the sheet without animation")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// stdout belongs to the UI.
	lf, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %q: %w", logPath, err)
	}
	defer lf.Close()
	log.SetOutput(lf)

	cfg, err := config.LoadBrowser(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if user != "" {
		cfg.User = user
	}
	if cmd.Flags().Changed("notify") || os.Getenv("BROWSER_NOTIFY") != "" {
		cfg.Notify = desktop
	}

	resolver, err := cfg.Resolver()
	if err != nil {
		return err
	}

	client := apiclient.New(cfg.APIURL, cfg.User, 10*time.Second)

	var notifier ports.Notifier
	if cfg.Notify {
		notifier = notify.NewDesktop(true)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := tui.New(ctx, tui.Options{
		Source:   client,
		Sink:     client,
		Auth:     client,
		Notifier: notifier,
		Session: session.Options{
			Snaps:       cfg.Snaps(),
			InitialSnap: sheet.SnapPoint(cfg.InitialSnap),
			Resolver:    resolver,
			NarrowWidth: cfg.NarrowWidth,
		},
		Categories: cfg.Categories,
		Center:     defaultCenter,
		User:       cfg.User,
		Static:     static,
	})

	log.Printf("browser starting api=%s user=%q policy=%s", cfg.APIURL, cfg.User, cfg.SnapPolicy)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}
	return nil
}
