package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fsindex/app"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	inputStyle = lipgloss.NewStyle().
			Margin(1, 0, 1, 0)
	tableStyle = lipgloss.NewStyle().
			Margin(0, 0, 1, 0)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

func main() {
	dbPath := flag.String("db", "index.db", "Path to the index database")
	flag.Parse()

	if _, err := os.Stat(*dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Index database not found: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'fsindex index <dir>' first to build an index.")
		os.Exit(1)
	}

	searcher, err := app.NewSearcher(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open index: %v", err)
	}
	defer searcher.Close()

	ti := textinput.New()
	ti.Placeholder = "Search by file name..."
	ti.Focus()
	ti.CharLimit = 255

	columns := []table.Column{
		{Title: "Path", Width: 70},
		{Title: "Size", Width: 12},
		{Title: "Modified", Width: 17},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(20),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	m := model{
		textInput:    ti,
		minSizeInput: newSizeInput("min bytes"),
		maxSizeInput: newSizeInput("max bytes"),
		table:        t,
		searcher:     searcher,
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("TUI error: %v", err)
	}
}

func newSizeInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 20
	ti.Width = 12
	return ti
}
