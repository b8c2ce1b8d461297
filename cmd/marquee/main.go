package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/solenne/marquee/pkg/cache"
	"github.com/solenne/marquee/pkg/config"
	"github.com/solenne/marquee/pkg/fetch"
	"github.com/solenne/marquee/pkg/loader"
	"github.com/solenne/marquee/pkg/model"
	"github.com/solenne/marquee/pkg/ui"
	"github.com/solenne/marquee/pkg/watcher"
)

func main() {
	url := flag.String("url", "", "Base URL of the content service")
	file := flag.String("file", "", "Path to a local catalog JSON file")
	cfgPath := flag.String("config", "", "Path to a marquee config file")
	help := flag.Bool("help", false, "Show help")
	version := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *help {
		fmt.Println("Usage: marquee [options]")
		fmt.Println("\nA TUI browser for streaming home-screen catalogs.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *version {
		fmt.Println("marquee version 0.1.0")
		os.Exit(0)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Printf("Error reading config: %v\n", err)
		os.Exit(1)
	}
	if *url != "" {
		cfg.BaseURL = *url
	}

	if *file == "" && cfg.BaseURL == "" {
		fmt.Println("Nothing to browse. Pass -url for a content service or -file for a local catalog.")
		os.Exit(1)
	}

	var client *fetch.Client
	if cfg.BaseURL != "" {
		client = fetch.NewClientWithTimeout(cfg.BaseURL, cache.New(), cfg.FetchTimeout.Std())
	}

	var loadCatalog func() ([]model.CatalogRow, error)
	if *file != "" {
		path := *file
		loadCatalog = func() ([]model.CatalogRow, error) {
			return loader.LoadCatalog(path)
		}
	} else {
		loadCatalog = func() ([]model.CatalogRow, error) {
			return client.FetchCatalog(context.Background())
		}
	}

	m := ui.NewBrowserModel(cfg, client, loadCatalog)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// In file mode, reload when the catalog file changes on disk.
	if *file != "" {
		w, err := watcher.WatchCatalog(*file, func() {
			p.Send(ui.CatalogChangedMsg{})
		})
		if err != nil {
			fmt.Printf("Warning: can't watch %s: %v\n", *file, err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running marquee: %v\n", err)
		os.Exit(1)
	}
}
