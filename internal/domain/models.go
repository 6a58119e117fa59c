package domain

// Launchpad represents a launch facility as returned by the launchpads API
type Launchpad struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	FullName string   `json:"full_name,omitempty"`
	Region   string   `json:"region"`
	Locality string   `json:"locality,omitempty"`
	Status   string   `json:"status,omitempty"`
	Launches []Launch `json:"launches"`
}

// Launch is a launch record populated into a launchpad
type Launch struct {
	ID    string      `json:"id,omitempty"`
	Name  string      `json:"name"`
	Links LaunchLinks `json:"links"`
}

// LaunchLinks holds the link resources of a launch
type LaunchLinks struct {
	Patch     PatchLinks  `json:"patch"`
	Reddit    RedditLinks `json:"reddit"`
	Webcast   string      `json:"webcast,omitempty"`
	YoutubeID string      `json:"youtube_id,omitempty"`
	Article   string      `json:"article,omitempty"`
	Wikipedia string      `json:"wikipedia,omitempty"`
}

// PatchLinks are the mission patch images
type PatchLinks struct {
	Small string `json:"small,omitempty"`
	Large string `json:"large,omitempty"`
}

// RedditLinks are the reddit threads of a launch
type RedditLinks struct {
	Campaign string `json:"campaign,omitempty"`
	Launch   string `json:"launch,omitempty"`
	Media    string `json:"media,omitempty"`
	Recovery string `json:"recovery,omitempty"`
}

// PaginationPage is the response envelope of a paginated query.
// Only Docs and TotalDocs drive the list view.
type PaginationPage struct {
	Docs        []Launchpad `json:"docs"`
	TotalDocs   int         `json:"totalDocs"`
	Limit       int         `json:"limit,omitempty"`
	Page        int         `json:"page,omitempty"`
	TotalPages  int         `json:"totalPages,omitempty"`
	HasNextPage bool        `json:"hasNextPage,omitempty"`
	HasPrevPage bool        `json:"hasPrevPage,omitempty"`
}

// EmptyPage returns the page substituted for a failed fetch
func EmptyPage() *PaginationPage {
	return &PaginationPage{Docs: []Launchpad{}, TotalDocs: 0}
}

// LaunchCount returns the number of populated launches
func (l Launchpad) LaunchCount() int {
	return len(l.Launches)
}
