package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agamurian/fiander/internal/config"
	"github.com/agamurian/fiander/internal/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging unavailable: %v\n", err)
	}
	defer logger.Close()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic: %v", r)
			fmt.Fprintf(os.Stderr, "fiander crashed; details in %s\n", logger.Path())
			os.Exit(1)
		}
	}()

	cfg := config.Load()
	logger.Info("fiander starting")

	p := tea.NewProgram(initialModel(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("program error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v (log: %s)\n", err, logger.Path())
		os.Exit(1)
	}
	logger.Info("fiander exiting")
}
