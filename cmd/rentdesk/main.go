package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/rentdesk/rentdesk/api"
	"github.com/rentdesk/rentdesk/auth"
	"github.com/rentdesk/rentdesk/internal/config"
	"github.com/rentdesk/rentdesk/routes"
	"github.com/rentdesk/rentdesk/session"
	"github.com/rentdesk/rentdesk/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running console: %s\n", err)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	if err := config.Load(".env"); err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	c := config.New()
	displayAppname(c.GetAppName())

	logger := newLogger(c.GetLogLevel())

	store := session.NewFileStore(c.GetCredentialsFile(), logger)
	client := api.New(c.GetAPIBaseURL(), store,
		api.WithRequestTimeout(c.GetRequestTimeout()),
		api.WithLogger(logger),
	)
	manager := auth.NewManager(store, client,
		auth.WithLoginTimeout(c.GetLoginTimeout()),
		auth.WithLogger(logger),
	)
	nav := routes.NewNavigator(manager, logger)
	client.SetRedirector(nav)

	program := tea.NewProgram(
		tui.NewModel(client, manager, nav, logger),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program.Run: %w", err)
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	// Log to a file: the terminal belongs to the TUI.
	logFile, err := os.OpenFile("rentdesk.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(logFile).Level(logLevel).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
