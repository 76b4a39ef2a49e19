package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/vista/internal/config"
	"github.com/mmcdole/vista/internal/domain"
	"github.com/mmcdole/vista/internal/library"
	"github.com/mmcdole/vista/internal/log"
	"github.com/mmcdole/vista/internal/player"
	"github.com/mmcdole/vista/internal/playlist"
	"github.com/mmcdole/vista/internal/query"
	"github.com/mmcdole/vista/internal/sample"
	"github.com/mmcdole/vista/internal/store"
	"github.com/mmcdole/vista/internal/summary"
	"github.com/mmcdole/vista/internal/tui"
	"github.com/mmcdole/vista/internal/upload"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	configFile string
	seed       bool
	list       bool
	req        query.Request
	sort       string
}

func main() {
	var (
		showVersion bool
		opts        options
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.configFile, "config", "", "path to config file")
	flag.BoolVar(&opts.seed, "seed", false, "replace the gallery with the sample items")
	flag.BoolVar(&opts.list, "list", false, "print matching items and exit")
	flag.StringVar(&opts.req.Query, "q", "", "search query for -list")
	flag.StringVar(&opts.req.Category, "category", query.All, "category filter for -list")
	flag.StringVar(&opts.req.Type, "type", query.All, "type filter for -list (video, image)")
	flag.StringVar(&opts.sort, "sort", "", "sort order: relevance, title_asc, title_desc, rating, newest")
	flag.Parse()

	if showVersion {
		fmt.Printf("vista %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting vista", "version", Version, "backend", cfg.Data.Backend, "dataDir", cfg.Data.Dir)

	backend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	docs := store.NewDocuments(backend, logger)
	defer func() {
		if err := docs.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	items := store.NewItemStore(docs, logger)
	ratings := store.NewRatingStore(docs, logger)
	playlists := store.NewPlaylistStore(docs, logger)

	summarizer := summary.New(summary.Config{
		Provider:          summary.Provider(cfg.AI.Provider),
		GoogleAPIKey:      cfg.AI.GoogleAPIKey,
		GroqAPIKey:        cfg.AI.GroqAPIKey,
		GeminiModel:       cfg.AI.GeminiModel,
		GroqModel:         cfg.AI.GroqModel,
		Timeout:           cfg.AI.Timeout,
		RequestsPerSecond: cfg.AI.RequestsPerSecond,
		MaxRetries:        cfg.AI.MaxRetries,
	}, logger)
	logger.Info("summary provider", "provider", summarizer.Provider(), "configured", summarizer.Configured())

	uploader := upload.NewService(afero.NewOsFs(), cfg.Data.UploadsDir, logger)
	librarySvc := library.NewService(items, ratings, uploader, summarizer, logger)
	playlistSvc := playlist.NewService(playlists, items, logger)

	if opts.seed {
		sampleItems, err := sample.Items()
		if err != nil {
			return err
		}
		if err := librarySvc.Seed(sampleItems); err != nil {
			return fmt.Errorf("failed to seed gallery: %w", err)
		}
		logger.Info("seeded gallery", "items", len(sampleItems))
	}

	sortName := opts.sort
	if sortName == "" {
		sortName = cfg.UI.DefaultSort
	}
	sortOpt, ok := query.ParseSort(sortName)
	if !ok {
		logger.Warn("unknown sort order, using relevance", "sort", sortName)
	}

	if opts.list || !term.IsTerminal(int(os.Stdout.Fd())) {
		opts.req.Sort = sortOpt
		printList(os.Stdout, librarySvc.Browse(opts.req))
		return nil
	}

	launcher := player.NewLauncher(cfg.Player.Command, cfg.Player.Args, cfg.Player.StartFlag, logger)
	model := tui.NewModel(librarySvc, playlistSvc, launcher, sortOpt, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// openBackend returns the document backend selected by data.backend
func openBackend(cfg *config.Config) (store.Backend, error) {
	if cfg.Data.Backend == config.BackendBolt {
		backend, err := store.NewBoltBackend(cfg.Data.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt store: %w", err)
		}
		return backend, nil
	}
	return store.NewFileBackend(afero.NewOsFs(), cfg.Data.Dir), nil
}

// printList writes the query result as a plain table
func printList(w io.Writer, views []domain.ItemView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No items.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "CATEGORY", "TYPE", "RATING")
	for _, v := range views {
		t.Row(v.Item.ID, v.Item.Title, v.Item.Category, string(v.Item.Type), v.FormattedRating())
	}
	fmt.Fprintln(w, t.Render())
}
