package tui

import (
	"context"
	"strings"

	"vcfheader/internal/header"
	"vcfheader/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgHeadersReady indicates that the merge has completed.
type MsgHeadersReady header.Result

// MsgError indicates an error occurred.
type MsgError struct{ Err error }

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 4 // minus footer/header
		return m, nil

	case MsgHeadersReady:
		m.Loading = false
		m.Result = header.Result(msg)
		m.Rows = buildRows(m.Result)
		m.applyFilter()
		return m, nil

	case MsgError:
		m.Err = msg.Err
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.applyFilter()
				return m, nil
			case tea.KeyEsc:
				m.clearSearch()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.SearchActive {
				m.clearSearch()
				return m, nil
			}
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
		case "down", "j":
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
			}
		case "tab":
			// Cycle: both -> INFO -> FORMAT -> both
			switch m.KindFilter {
			case "":
				m.KindFilter = model.KindInfo
			case model.KindInfo:
				m.KindFilter = model.KindFormat
			default:
				m.KindFilter = ""
			}
			m.applyFilter()
		case "/":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		}
	}

	return m, cmd
}

func (m *AppModel) clearSearch() {
	m.InputMode = false
	m.InputBuffer.Blur()
	m.InputBuffer.SetValue("")
	m.applyFilter()
}

// applyFilter recomputes FilteredIndices from the namespace filter and the
// search term. The term matches ids by prefix and descriptions by substring.
func (m *AppModel) applyFilter() {
	term := strings.ToLower(strings.TrimSpace(m.InputBuffer.Value()))
	m.SearchActive = term != ""

	var result []int
	for i, row := range m.Rows {
		if m.KindFilter != "" && row.Kind != m.KindFilter {
			continue
		}
		if term != "" &&
			!strings.HasPrefix(strings.ToLower(row.Def.ID), term) &&
			!strings.Contains(strings.ToLower(row.Def.Description), term) {
			continue
		}
		result = append(result, i)
	}
	m.FilteredIndices = result

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		if len(m.FilteredIndices) > 0 {
			m.SelectedIdx = len(m.FilteredIndices) - 1
		} else {
			m.SelectedIdx = 0
		}
	}
}

// LoadHeadersCmd runs the merge in background.
func LoadHeadersCmd(orch *header.Orchestrator, pattern string) tea.Cmd {
	return func() tea.Msg {
		res, err := orch.Run(context.Background(), pattern)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgHeadersReady(res)
	}
}
