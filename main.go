package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/punchwatch/internal/attendance"
	"github.com/sadopc/punchwatch/internal/notify"
	"github.com/sadopc/punchwatch/internal/poller"
	"github.com/sadopc/punchwatch/internal/store"
	"github.com/sadopc/punchwatch/internal/tui"
)

// defaultAPIURL is the attendance endpoint polled for today's punches.
// Override with -api or the api_url setting.
const defaultAPIURL = "https://hr.example.com/api/v1/attendance/me"

func main() {
	var (
		dbPath   = flag.String("db", "", "database path (default: user config dir)")
		apiURL   = flag.String("api", "", "attendance API URL")
		headless = flag.Bool("headless", false, "run the poller without the UI")
		once     = flag.Bool("once", false, "run a single check and exit")
	)
	flag.Parse()

	path := *dbPath
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := store.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	url := *apiURL
	if url == "" {
		url = s.GetStateDefault(store.KeyAPIURL, "")
	}
	if url == "" {
		url = defaultAPIURL
	}

	client := attendance.NewClient(url)
	sink := notify.NewDesktop("punchwatch")
	p := poller.New(s, client, sink)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *once {
		p.Poll(ctx)
		return
	}

	if *headless {
		log.Printf("punchwatch: polling %s", url)
		p.Run(ctx)
		return
	}

	// The TUI owns the terminal; send log output to a file beside the db.
	logPath := filepath.Join(filepath.Dir(path), "punchwatch.log")
	if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
		defer f.Close()
		log.SetOutput(f)
	}

	go p.Run(ctx)

	app := tui.NewApp(s, p)
	prog := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
