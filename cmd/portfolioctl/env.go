package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/di"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
)

var (
	rawOutput = false
	verbose   = false
)

// openContainer loads the same configuration as the server. Logs go to stderr
// so they never mix with the rendered document.
func openContainer(ctx context.Context) (*config.Config, *di.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger := logging.New(logging.Config{Level: level, Pretty: true, Output: os.Stderr})
	logging.SetGlobalLogger(logger)

	container, err := di.Build(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, container, nil
}

// printMarkdown renders md for the terminal, or prints it as is with -raw.
func printMarkdown(md string) {
	if rawOutput {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(140))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
