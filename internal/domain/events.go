package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFetchStarted    EventType = "FetchStarted"
	EventPageLoaded      EventType = "PageLoaded"
	EventFetchFailed     EventType = "FetchFailed"
	EventFetchSuperseded EventType = "FetchSuperseded"
	EventLoaderChanged   EventType = "LoaderChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FetchStartedEvent is emitted when the pipeline issues a request
type FetchStartedEvent struct {
	Generation uint64
	Params     QueryParams
}

func (e FetchStartedEvent) Type() EventType { return EventFetchStarted }

// PageLoadedEvent is emitted when the latest request returned a page
type PageLoadedEvent struct {
	Generation uint64
	Params     QueryParams
	Docs       int
	TotalDocs  int
}

func (e PageLoadedEvent) Type() EventType { return EventPageLoaded }

// FetchFailedEvent is emitted when the latest request failed and an empty page was shown
type FetchFailedEvent struct {
	Generation uint64
	Params     QueryParams
	Err        error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// FetchSupersededEvent is emitted when a result arrives for a request that is no longer current
type FetchSupersededEvent struct {
	Generation uint64
	Current    uint64
}

func (e FetchSupersededEvent) Type() EventType { return EventFetchSuperseded }

// LoaderChangedEvent is emitted when the loading indicator flips visibility
type LoaderChangedEvent struct {
	Visible bool
}

func (e LoaderChangedEvent) Type() EventType { return EventLoaderChanged }
