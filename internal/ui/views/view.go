package views

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"launchpads/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Launchpads    []domain.Launchpad
	SelectedIndex int
	FilterValue   string
	FilterInput   string // rendered text input
	Filtering     bool
	Loading       bool
	Spinner       string
	PageIndex     int
	PageSize      int
	TotalItems    int
	Paginator     string
	StatusMessage string
	Help          string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render renders the whole list view
func (r *Renderer) Render(state ViewState) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("Launchpads"))
	b.WriteString("\n")
	b.WriteString(r.renderFilter(state))
	b.WriteString("\n\n")

	if state.Loading {
		b.WriteString(r.styles.Loading.Render(state.Spinner + " Loading launchpads..."))
	}
	b.WriteString("\n")

	b.WriteString(r.renderRows(state))

	b.WriteString("\n")
	b.WriteString(r.renderFooter(state))

	if state.StatusMessage != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Status.Render(state.StatusMessage))
	}
	if state.Help != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Help.Render(state.Help))
	}

	main := r.styles.Main
	if state.Width > 0 {
		main = main.MaxWidth(state.Width)
	}
	if state.Height > 0 {
		main = main.MaxHeight(state.Height)
	}
	return main.Render(b.String())
}

func (r *Renderer) renderFilter(state ViewState) string {
	label := r.styles.FilterLabel.Render("Filter: ")
	if state.Filtering {
		return label + state.FilterInput
	}
	if state.FilterValue == "" {
		return label + r.styles.Dim.Render("press / to filter by name or region")
	}
	return label + r.styles.Filter.Render(state.FilterValue)
}

func (r *Renderer) renderRows(state ViewState) string {
	if len(state.Launchpads) == 0 {
		if state.Loading {
			return ""
		}
		return r.styles.Empty.Render("No launchpads found") + "\n"
	}

	nameWidth := 0
	for _, pad := range state.Launchpads {
		if w := lipgloss.Width(pad.Name); w > nameWidth {
			nameWidth = w
		}
	}

	var b strings.Builder
	for i, pad := range state.Launchpads {
		selected := i == state.SelectedIndex
		b.WriteString(r.renderRow(pad, nameWidth, selected, state.FilterValue))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderRow(pad domain.Launchpad, nameWidth int, selected bool, filter string) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	name := highlight(pad.Name, filter, r.styles.Name, r.styles.Highlight)
	if gap := nameWidth - lipgloss.Width(pad.Name); gap > 0 {
		name += strings.Repeat(" ", gap)
	}
	region := highlight(pad.Region, filter, r.styles.Region, r.styles.Highlight)
	count := r.styles.Count.Render(fmt.Sprintf("%d %s", pad.LaunchCount(), plural(pad.LaunchCount(), "launch", "launches")))

	line := fmt.Sprintf("%s%s  %s  %s", cursor, name, region, count)
	if selected {
		return r.styles.SelectionBg.Render(line)
	}
	return line
}

func (r *Renderer) renderFooter(state ViewState) string {
	parts := []string{
		RangeLabel(state.PageIndex, state.PageSize, len(state.Launchpads), state.TotalItems),
		fmt.Sprintf("%d per page", state.PageSize),
	}
	if state.Paginator != "" {
		parts = append([]string{state.Paginator}, parts...)
	}
	return r.styles.Dim.Render(strings.Join(parts, "  ·  "))
}

// RangeLabel describes the visible slice of the result set, e.g. "6 – 10 of 12"
func RangeLabel(pageIndex, pageSize, shown, total int) string {
	if total == 0 || shown == 0 {
		return fmt.Sprintf("0 of %d", total)
	}
	start := pageIndex*pageSize + 1
	end := start + shown - 1
	if end > total {
		end = total
	}
	return fmt.Sprintf("%d – %d of %d", start, end, total)
}

// highlight renders text with every case-insensitive match of filter emphasised
func highlight(text, filter string, base, emph lipgloss.Style) string {
	if filter == "" || text == "" {
		return base.Render(text)
	}
	re, err := regexp.Compile("(?i)" + filter)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(filter))
	}
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return base.Render(text)
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m[0] == m[1] {
			continue
		}
		b.WriteString(base.Render(text[last:m[0]]))
		b.WriteString(emph.Render(text[m[0]:m[1]]))
		last = m[1]
	}
	b.WriteString(base.Render(text[last:]))
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
