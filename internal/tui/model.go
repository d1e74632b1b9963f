package tui

import (
	"vcfheader/internal/header"
	"vcfheader/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Row is one declaration as listed in the left panel.
type Row struct {
	Kind model.Kind
	Def  model.FieldDefinition
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Pattern string
	Result  header.Result
	Rows    []Row
	Loading bool
	Err     error

	orch *header.Orchestrator

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg

	// View Modes
	KindFilter model.Kind // "" shows both namespaces

	// Search State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of Rows to show
	SearchActive    bool

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state.
func InitialModel(orch *header.Orchestrator, pattern string) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Field id or description..."
	ti.CharLimit = 50
	ti.Width = 30

	return AppModel{
		Pattern:     pattern,
		Loading:     true,
		InputBuffer: ti,
		SelectedIdx: 0,
		orch:        orch,
	}
}

// Init starts loading headers in the background.
func (m AppModel) Init() tea.Cmd {
	return LoadHeadersCmd(m.orch, m.Pattern)
}

// buildRows flattens a result into INFO rows followed by FORMAT rows.
func buildRows(res header.Result) []Row {
	var rows []Row
	for _, kind := range model.Kinds {
		fields := res.Fields.Fields(kind)
		for _, id := range res.Fields.IDs(kind) {
			rows = append(rows, Row{Kind: kind, Def: fields[id]})
		}
	}
	return rows
}
