package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"launchpads/internal/api"
	"launchpads/internal/config"
	"launchpads/internal/domain"
	"launchpads/internal/eventbus"
	"launchpads/internal/loader"
	"launchpads/internal/logging"
	"launchpads/internal/ui"
	"launchpads/internal/ui/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		apiURL     string
		pageSize   int
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.StringVar(&apiURL, "url", "", "Launchpads query endpoint")
	flag.IntVar(&pageSize, "page-size", 0, "Launchpads per page")
	flag.Parse()

	configSvc := config.NewConfigService()
	if configPath != "" {
		configSvc = config.NewConfigServiceForPath(configPath)
	}
	cfg, created, err := loadOrCreateConfig(configSvc)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return err
	}
	if apiURL != "" {
		cfg.API.URL = apiURL
	}
	if pageSize != 0 {
		cfg.UI.PageSize = pageSize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Set up logging
	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := logging.New(logFile, cfg.Log.Level)
	if err != nil {
		return err
	}
	if created {
		logger.Info().Str("path", configSvc.Path()).Msg("Created default config")
	}
	logger.Info().Str("url", cfg.API.URL).Int("page_size", cfg.UI.PageSize).Msg("Starting launchpads")

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New(logger)
	defer bus.Close()
	subscribeLogging(bus, logger)

	indicator := loader.New(bus)

	opts := []api.Option{api.WithTimeout(cfg.API.Timeout())}
	if cfg.API.RateLimitPerSecond > 0 {
		opts = append(opts, api.WithRateLimit(cfg.API.RateLimitPerSecond, cfg.API.RateLimitBurst))
	}
	client := api.NewClient(cfg.API.URL, opts...)

	params := domain.DefaultQueryParams()
	params.PageSize = cfg.UI.PageSize

	results := pipeline.New(client, indicator, logging.NewSink(logger),
		pipeline.WithDebounce(cfg.UI.Debounce()),
		pipeline.WithBus(bus),
		pipeline.WithContext(ctx),
		pipeline.WithParams(params),
	)

	pager := ui.NewPagerOps()
	model := ui.NewModel(results, indicator, pager, cfg.UI.PageSizeOptions)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	pager.SetProgram(p)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info().Msg("Stopped launchpads")
	return nil
}

// loadOrCreateConfig loads the config file, writing the defaults out when it
// does not exist yet
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, bool, error) {
	_, statErr := os.Stat(configSvc.Path())
	cfg, err := configSvc.Load()
	if err != nil {
		return nil, false, fmt.Errorf("error loading config: %w", err)
	}
	if !errors.Is(statErr, fs.ErrNotExist) {
		return cfg, false, nil
	}
	if err := configSvc.Save(cfg); err != nil {
		// Writing the defaults out is best effort
		return cfg, false, nil
	}
	return cfg, true, nil
}

// subscribeLogging records pipeline activity in the log file
func subscribeLogging(bus eventbus.EventBus, logger zerolog.Logger) {
	bus.Subscribe(eventbus.EventFetchStarted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FetchStartedEvent); ok {
			logger.Debug().
				Uint64("generation", event.Generation).
				Str("filter", event.Params.FilterValue).
				Int("page", event.Params.CurrentPage).
				Int("page_size", event.Params.PageSize).
				Msg("Fetching launchpads")
		}
	})
	bus.Subscribe(eventbus.EventPageLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PageLoadedEvent); ok {
			logger.Debug().
				Uint64("generation", event.Generation).
				Int("docs", event.Docs).
				Int("total", event.TotalDocs).
				Msg("Launchpads loaded")
		}
	})
	bus.Subscribe(eventbus.EventFetchSuperseded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FetchSupersededEvent); ok {
			logger.Debug().
				Uint64("generation", event.Generation).
				Uint64("current", event.Current).
				Msg("Dropped superseded response")
		}
	})
	bus.Subscribe(eventbus.EventLoaderChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.LoaderChangedEvent); ok {
			logger.Trace().Bool("visible", event.Visible).Msg("Loader")
		}
	})
}
