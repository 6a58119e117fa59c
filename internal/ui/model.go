package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"launchpads/internal/domain"
	"launchpads/internal/loader"
	"launchpads/internal/ui/pipeline"
	"launchpads/internal/ui/views"
)

const statusTimeout = 3 * time.Second

// Model is the launchpad list view
type Model struct {
	pipeline *pipeline.Pipeline
	loader   loader.Service
	pager    Pager
	renderer *views.Renderer

	keys      keyMap
	help      help.Model
	filter    textinput.Model
	paginator paginator.Model
	spinner   spinner.Model

	pageSizeOptions []int
	selected        int
	status          string
	statusAt        time.Time

	width  int
	height int
	closed bool
}

// NewModel creates the list view. pager may be nil, in which case the details
// key does nothing.
func NewModel(p *pipeline.Pipeline, l loader.Service, pager Pager, pageSizeOptions []int) *Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "name or region"
	ti.CharLimit = 128

	pg := paginator.New()
	pg.Type = paginator.Arabic

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if len(pageSizeOptions) == 0 {
		pageSizeOptions = []int{p.Params().PageSize}
	}

	m := &Model{
		pipeline:        p,
		loader:          l,
		pager:           pager,
		renderer:        views.NewRenderer(),
		keys:            newKeyMap(),
		help:            help.New(),
		filter:          ti,
		paginator:       pg,
		spinner:         sp,
		pageSizeOptions: pageSizeOptions,
	}
	m.syncPaginator()
	return m
}

// Init starts the result pipeline and the spinner
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.pipeline.Init(), m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.filter.Width = msg.Width / 2
		return m, nil

	case tea.KeyMsg:
		if m.filter.Focused() {
			return m, m.handleFilterKey(msg)
		}
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerClosedMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Could not show launches of %s: %v", msg.name, msg.err))
		}
		return m, nil

	case clearStatusMsg:
		if msg.at.Equal(m.statusAt) {
			m.status = ""
		}
		return m, nil
	}

	if cmd, handled := m.pipeline.Update(msg); handled {
		m.clampSelection()
		m.syncPaginator()
		return m, cmd
	}

	// Everything else (cursor blink etc.) belongs to the text input
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// View renders the UI
func (m *Model) View() string {
	params := m.pipeline.Params()

	helpView := ""
	if m.filter.Focused() {
		helpView = m.help.View(filterKeyMap{keys: m.keys})
	} else {
		helpView = m.help.View(m.keys)
	}

	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Launchpads:    m.pipeline.Docs(),
		SelectedIndex: m.selected,
		FilterValue:   params.FilterValue,
		FilterInput:   m.filter.View(),
		Filtering:     m.filter.Focused(),
		Loading:       m.loader.Visible(),
		Spinner:       m.spinner.View(),
		PageIndex:     m.pipeline.PageIndex(),
		PageSize:      params.PageSize,
		TotalItems:    m.pipeline.TotalItems(),
		Paginator:     m.paginatorView(),
		StatusMessage: m.status,
		Help:          helpView,
	})
}

// Close tears the view down. Safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.filter.Blur()
	m.pipeline.Close()
}

// SelectedLaunchpad returns the launchpad under the cursor
func (m *Model) SelectedLaunchpad() (domain.Launchpad, bool) {
	docs := m.pipeline.Docs()
	if m.selected < 0 || m.selected >= len(docs) {
		return domain.Launchpad{}, false
	}
	return docs[m.selected], true
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "ctrl+c":
		return m.quit()
	case key.Matches(msg, m.keys.DoneFilter):
		m.filter.Blur()
		return nil
	case key.Matches(msg, m.keys.ClearFilter):
		if m.filter.Value() == "" {
			return nil
		}
		m.filter.SetValue("")
		return m.filterChanged()
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.filterChanged())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	params := m.pipeline.Params()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Filter):
		return m.filter.Focus()

	case key.Matches(msg, m.keys.ClearFilter):
		if m.filter.Value() == "" {
			return nil
		}
		m.filter.SetValue("")
		return m.filterChanged()

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.pipeline.Docs())-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.NextPage):
		next := m.pipeline.PageIndex() + 1
		if next < totalPages(m.pipeline.TotalItems(), params.PageSize) {
			return m.changePage(next, params.PageSize)
		}

	case key.Matches(msg, m.keys.PrevPage):
		if idx := m.pipeline.PageIndex(); idx > 0 {
			return m.changePage(idx-1, params.PageSize)
		}

	case key.Matches(msg, m.keys.BiggerPage):
		if size, ok := nextOption(m.pageSizeOptions, params.PageSize, 1); ok {
			return m.changePage(0, size)
		}

	case key.Matches(msg, m.keys.SmallerPage):
		if size, ok := nextOption(m.pageSizeOptions, params.PageSize, -1); ok {
			return m.changePage(0, size)
		}

	case key.Matches(msg, m.keys.Details):
		return m.showDetails()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// changePage forwards a paginator event (zero-based index) to the pipeline
func (m *Model) changePage(pageIndex, pageSize int) tea.Cmd {
	cmd := m.pipeline.HandlePageChange(pageIndex, pageSize)
	m.selected = 0
	m.syncPaginator()
	return cmd
}

func (m *Model) filterChanged() tea.Cmd {
	cmd := m.pipeline.SetFilter(m.filter.Value())
	m.selected = 0
	m.syncPaginator()
	return cmd
}

func (m *Model) showDetails() tea.Cmd {
	pad, ok := m.SelectedLaunchpad()
	if !ok || m.pager == nil {
		return nil
	}
	content := m.renderer.RenderDetails(pad)
	pager := m.pager
	return func() tea.Msg {
		return pagerClosedMsg{name: pad.Name, err: pager.Show(content)}
	}
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}

func (m *Model) setStatus(status string) tea.Cmd {
	m.status = status
	m.statusAt = time.Now()
	at := m.statusAt
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{at: at}
	})
}

func (m *Model) clampSelection() {
	n := len(m.pipeline.Docs())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) syncPaginator() {
	params := m.pipeline.Params()
	m.paginator.PerPage = params.PageSize
	m.paginator.TotalPages = max(1, totalPages(m.pipeline.TotalItems(), params.PageSize))
	m.paginator.Page = m.pipeline.PageIndex()
}

func (m *Model) paginatorView() string {
	if m.paginator.TotalPages <= 1 {
		return ""
	}
	return "page " + m.paginator.View()
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// nextOption returns the neighbour of current in options, stepping by dir
func nextOption(options []int, current, dir int) (int, bool) {
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	if idx == -1 {
		// Current size is not an option, snap to the closest one in that direction
		for i := range options {
			j := i
			if dir < 0 {
				j = len(options) - 1 - i
			}
			if (dir > 0 && options[j] > current) || (dir < 0 && options[j] < current) {
				return options[j], true
			}
		}
		return 0, false
	}
	next := idx + dir
	if next < 0 || next >= len(options) {
		return 0, false
	}
	return options[next], true
}
