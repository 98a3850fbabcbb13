package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aberthier/semainier/internal/store"
	"github.com/aberthier/semainier/internal/svg"
	"github.com/aberthier/semainier/internal/tui"
)

func main() {
	var (
		dbFlag    = flag.String("db", "", "path to the journal database (default ~/.config/semainier/journal.db)")
		styleFlag = flag.String("style", "", "path to a YAML style file for SVG export")
	)
	flag.Parse()

	dbPath := *dbFlag
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	style := svg.DefaultStyle()
	if *styleFlag != "" {
		style, err = svg.LoadStyle(*styleFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading style: %v\n", err)
			os.Exit(1)
		}
	}

	app := tui.NewApp(s, style)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
