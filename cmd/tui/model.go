package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fsindex/app"
	"fsindex/models"
)

type model struct {
	textInput    textinput.Model
	minSizeInput textinput.Model
	maxSizeInput textinput.Model
	table        table.Model
	searcher     *app.Searcher
	results      []models.FileRecord
	err          error
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	var enter = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("⏎", "submit/open"),
	)
	var toggleFocus = key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "toggle focus"),
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, enter):
			if m.table.Focused() && len(m.results) > 0 {
				selected := m.table.Cursor()
				if selected < len(m.results) {
					if err := openFile(m.results[selected].Path); err != nil {
						m.err = err
					}
				}
				return m, nil
			}
			return m.runSearch(), nil
		case key.Matches(msg, toggleFocus):
			m.cycleFocus()
			return m, nil
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			return m, tea.Quit
		}

		if m.textInput.Focused() {
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
		if m.minSizeInput.Focused() {
			m.minSizeInput, cmd = m.minSizeInput.Update(msg)
			return m, cmd
		}
		if m.maxSizeInput.Focused() {
			m.maxSizeInput, cmd = m.maxSizeInput.Update(msg)
			return m, cmd
		}
		if m.table.Focused() {
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(msg.Height - 9)
		return m, nil
	}

	return m, nil
}

func (m model) runSearch() model {
	q := &models.SearchQuery{
		NameLike: m.textInput.Value(),
		Limit:    200,
	}
	if v := m.minSizeInput.Value(); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			q.MinSize = &n
		}
	}
	if v := m.maxSizeInput.Value(); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			q.MaxSize = &n
		}
	}

	results, err := m.searcher.Search(context.Background(), q)
	if err != nil {
		m.err = err
		return m
	}

	m.err = nil
	m.results = results
	m.updateTable()
	m.textInput.Blur()
	m.table.Focus()
	return m
}

func (m *model) cycleFocus() {
	switch {
	case m.textInput.Focused():
		m.textInput.Blur()
		m.minSizeInput.Focus()
	case m.minSizeInput.Focused():
		m.minSizeInput.Blur()
		m.maxSizeInput.Focus()
	case m.maxSizeInput.Focused():
		m.maxSizeInput.Blur()
		m.table.Focus()
	default:
		m.table.Blur()
		m.textInput.Focus()
	}
}

func (m *model) updateTable() {
	rows := []table.Row{}
	for _, result := range m.results {
		rows = append(rows, table.Row{
			result.Path,
			formatSize(result.Size),
			result.ModTime.Format("2006-01-02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m model) View() string {
	var b strings.Builder

	inputView := inputStyle.Width(m.table.Width() - 4).Render(m.textInput.View())
	b.WriteString(inputView)
	b.WriteString("\n")

	sizeInputs := lipgloss.JoinHorizontal(lipgloss.Top,
		"Min size: "+m.minSizeInput.View(),
		"  Max size: "+m.maxSizeInput.View(),
	)
	b.WriteString(sizeInputs)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(fmt.Sprintf("Error: %v\n", m.err))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	instructions := "Press Enter to search (in input) or open file (in table), Tab to switch focus, Esc to quit."
	return baseStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			b.String(),
			helpStyle.Render(instructions),
		),
	)
}
