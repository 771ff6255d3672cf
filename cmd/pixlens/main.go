package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/pixlens/internal/analyzer"
	"github.com/jask/pixlens/internal/clip"
	"github.com/jask/pixlens/internal/config"
	"github.com/jask/pixlens/internal/logging"
	"github.com/jask/pixlens/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = closeLog() }()

	client := analyzer.New(cfg.Server.BaseURL, time.Duration(cfg.Server.TimeoutSeconds)*time.Second, logger)

	app := tui.New(ctx, cfg, client, clip.System{}, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
