package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pomodux/pomodux/internal/config"
	"github.com/pomodux/pomodux/internal/confwatch"
	"github.com/pomodux/pomodux/internal/digest"
	"github.com/pomodux/pomodux/internal/domain"
	"github.com/pomodux/pomodux/internal/notify"
	"github.com/pomodux/pomodux/internal/run"
	"github.com/pomodux/pomodux/internal/session"
	"github.com/pomodux/pomodux/internal/timer"
	"github.com/pomodux/pomodux/internal/userstate"
	"github.com/pomodux/pomodux/tui"
	"github.com/pomodux/pomodux/web/api"
)

var (
	servePort int
	tuiUser   int64
)

func init() {
	// serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)

	// tui command
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the terminal dashboard",
		RunE:  runTUI,
	}
	tuiCmd.Flags().Int64Var(&tuiUser, "user", 1, "user ID to run as")
	rootCmd.AddCommand(tuiCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

// buildCore assembles the store, registry, hub and service all surfaces
// share.
func buildCore(cfg *config.Config) (*run.Service, *notify.Hub, *userstate.Store) {
	store := userstate.New(cfg.DefaultIntervals())
	registry := session.NewRegistry()
	hub := notify.NewHub()

	notifiers := []notify.Notifier{hub}
	if cfg.Notifications.Desktop {
		notifiers = append(notifiers, notify.NewDesktopNotifier(true))
	}
	if cfg.Notifications.SlackWebhook != "" {
		notifiers = append(notifiers, notify.NewSlackNotifier(cfg.Notifications.SlackWebhook))
	}

	var notifier notify.Notifier = notifiers[0]
	if len(notifiers) > 1 {
		notifier = notify.NewMultiNotifier(notifiers...)
	}

	svc := run.NewService(store, registry, notifier, timer.DefaultTick)
	return svc, hub, store
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, hub, store := buildCore(cfg)

	port := servePort
	if port == 0 {
		port = cfg.Web.Port
	}
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, port)
	server := api.NewServer(svc, hub, addr)

	// Handle shutdown
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	g, ctx := errgroup.WithContext(rootCtx)

	var digester *digest.Scheduler
	if cfg.Digest.Enabled {
		digester, err = digest.NewScheduler(store, hub, cfg.Digest.Cron)
		if err != nil {
			return err
		}
		g.Go(func() error {
			digester.Start()
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			digester.Stop()
			return nil
		})
	}

	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	watcher, err := confwatch.New(path, func(next *config.Config) {
		store.SetDefaults(next.DefaultIntervals())
		if digester != nil && next.Digest.Cron != "" {
			if err := digester.SetSchedule(next.Digest.Cron); err != nil {
				log.Printf("digest schedule not updated: %v", err)
			}
		}
		log.Printf("config reloaded from %s", path)
	})
	if err != nil {
		log.Printf("config watching disabled: %v", err)
	} else {
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	fmt.Printf("Starting API at http://%s\n", addr)
	g.Go(func() error { return server.Start(ctx) })
	return g.Wait()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, hub, _ := buildCore(cfg)

	events, cancel := hub.Subscribe()
	defer cancel()

	model := tui.NewModel(tui.ModelConfig{
		Service: svc,
		User:    domain.UserID(tuiUser),
		Events:  events,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
