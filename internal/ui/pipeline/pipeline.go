// Package pipeline turns list state changes into launchpad fetches.
//
// Every change to the query params restarts a debounce window. When the window
// elapses without further changes, the params are compared with the ones the
// previous fetch was started for and, if they differ, a new fetch is issued.
// Fetches are numbered; only the result of the most recently started fetch is
// applied, older ones are cancelled and their results dropped on arrival.
//
// All methods must be called from the Bubble Tea update loop.
package pipeline

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"launchpads/internal/domain"
	"launchpads/internal/eventbus"
)

// DefaultDebounce is the quiescence window before a fetch starts
const DefaultDebounce = 500 * time.Millisecond

// Fetcher issues one launchpads query
type Fetcher interface {
	GetLaunchpads(ctx context.Context, query domain.Query, options domain.RequestOptions) (*domain.PaginationPage, error)
}

// Loader is the loading indicator toggled around each fetch
type Loader interface {
	Show()
	Hide()
}

// ErrorSink receives fetch failures
type ErrorSink interface {
	LogError(msg string, err error)
}

// debounceMsg fires when a debounce window elapses
type debounceMsg struct {
	seq uint64
}

// resultMsg carries the outcome of one fetch
type resultMsg struct {
	gen    uint64
	params domain.QueryParams
	page   *domain.PaginationPage
	err    error
}

// Pipeline owns the query params and the latest result page
type Pipeline struct {
	fetcher  Fetcher
	loader   Loader
	sink     ErrorSink
	bus      eventbus.EventBus
	parent   context.Context
	debounce time.Duration

	params      domain.QueryParams
	debounceSeq uint64

	fetched     bool
	lastFetched domain.QueryParams

	gen    uint64
	cancel context.CancelFunc

	docs  []domain.Launchpad
	total int

	closed bool
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithDebounce overrides the debounce window. Zero fetches on the next update.
func WithDebounce(d time.Duration) Option {
	return func(p *Pipeline) {
		if d >= 0 {
			p.debounce = d
		}
	}
}

// WithBus publishes fetch lifecycle events on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(p *Pipeline) {
		p.bus = bus
	}
}

// WithContext derives every fetch context from ctx
func WithContext(ctx context.Context) Option {
	return func(p *Pipeline) {
		p.parent = ctx
	}
}

// WithParams replaces the initial query params
func WithParams(params domain.QueryParams) Option {
	return func(p *Pipeline) {
		p.params = params
	}
}

// New creates a pipeline starting from the default query params
func New(fetcher Fetcher, loader Loader, sink ErrorSink, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:  fetcher,
		loader:   loader,
		sink:     sink,
		parent:   context.Background(),
		debounce: DefaultDebounce,
		params:   domain.DefaultQueryParams(),
		docs:     []domain.Launchpad{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init schedules the first fetch for the initial params
func (p *Pipeline) Init() tea.Cmd {
	if p.closed {
		return nil
	}
	return p.schedule()
}

// SetFilter applies new filter text and goes back to the first page
func (p *Pipeline) SetFilter(text string) tea.Cmd {
	if p.closed {
		return nil
	}
	p.params.CurrentPage = 1
	p.params.FilterValue = text
	return p.schedule()
}

// HandlePageChange applies a paginator event. pageIndex is zero-based; the
// stored page number is one-based.
func (p *Pipeline) HandlePageChange(pageIndex, pageSize int) tea.Cmd {
	if p.closed {
		return nil
	}
	if pageIndex < 0 {
		pageIndex = 0
	}
	p.params.CurrentPage = pageIndex + 1
	if pageSize > 0 {
		p.params.PageSize = pageSize
	}
	return p.schedule()
}

// Update handles the pipeline's own messages. The second return value reports
// whether msg belonged to the pipeline.
func (p *Pipeline) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case debounceMsg:
		return p.handleDebounce(msg), true
	case resultMsg:
		p.handleResult(msg)
		return nil, true
	}
	return nil, false
}

// Close stops the pipeline: the in-flight fetch is cancelled and later
// filter or page changes are ignored
func (p *Pipeline) Close() {
	if p.closed {
		return
	}
	p.closed = true
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Params returns the current query params
func (p *Pipeline) Params() domain.QueryParams {
	return p.params
}

// PageIndex returns the zero-based page the params point at
func (p *Pipeline) PageIndex() int {
	if p.params.CurrentPage <= 1 {
		return 0
	}
	return p.params.CurrentPage - 1
}

// Docs returns the launchpads of the latest applied page
func (p *Pipeline) Docs() []domain.Launchpad {
	return p.docs
}

// TotalItems returns the total document count of the latest applied page
func (p *Pipeline) TotalItems() int {
	return p.total
}

// Generation returns the number of fetches started so far
func (p *Pipeline) Generation() uint64 {
	return p.gen
}

func (p *Pipeline) schedule() tea.Cmd {
	p.debounceSeq++
	seq := p.debounceSeq
	if p.debounce == 0 {
		return func() tea.Msg { return debounceMsg{seq: seq} }
	}
	return tea.Tick(p.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

func (p *Pipeline) handleDebounce(msg debounceMsg) tea.Cmd {
	if p.closed || msg.seq != p.debounceSeq {
		return nil
	}
	if p.fetched && p.params == p.lastFetched {
		return nil
	}
	return p.start(p.params)
}

func (p *Pipeline) start(params domain.QueryParams) tea.Cmd {
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(p.parent)
	p.cancel = cancel

	p.gen++
	gen := p.gen
	p.fetched = true
	p.lastFetched = params

	query := domain.BuildQuery(params.FilterValue)
	options := domain.BuildRequestOptions(params)

	p.loader.Show()
	p.publish(eventbus.FetchStartedEvent{Generation: gen, Params: params})

	fetcher := p.fetcher
	return func() tea.Msg {
		page, err := fetcher.GetLaunchpads(ctx, query, options)
		return resultMsg{gen: gen, params: params, page: page, err: err}
	}
}

func (p *Pipeline) handleResult(msg resultMsg) {
	// Every started fetch hides the loader exactly once, current or not
	p.loader.Hide()

	if msg.gen != p.gen || p.closed {
		p.publish(eventbus.FetchSupersededEvent{Generation: msg.gen, Current: p.gen})
		return
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}

	page := msg.page
	if msg.err == nil && page == nil {
		msg.err = errors.New("empty response")
	}
	if msg.err != nil {
		p.sink.LogError("Error fetching launchpads", msg.err)
		p.publish(eventbus.FetchFailedEvent{Generation: msg.gen, Params: msg.params, Err: msg.err})
		page = domain.EmptyPage()
	} else {
		p.publish(eventbus.PageLoadedEvent{
			Generation: msg.gen,
			Params:     msg.params,
			Docs:       len(page.Docs),
			TotalDocs:  page.TotalDocs,
		})
	}

	docs := page.Docs
	if docs == nil {
		docs = []domain.Launchpad{}
	}
	p.docs = docs
	p.total = page.TotalDocs
}

func (p *Pipeline) publish(event eventbus.DomainEvent) {
	if p.bus != nil {
		p.bus.Publish(event)
	}
}
