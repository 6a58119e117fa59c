package domain

import (
	"regexp"
	"strings"
)

// Default query parameters of a freshly opened list
const (
	DefaultPageSize = 5
	// CurrentPage 0 means "first page" and leaves the page out of the request
	DefaultCurrentPage = 0
)

// Launchpad field keys used in projections
const (
	LaunchpadKeyID       = "id"
	LaunchpadKeyName     = "name"
	LaunchpadKeyRegion   = "region"
	LaunchpadKeyLaunches = "launches"
)

// Launch field keys used in projections
const (
	LaunchKeyName  = "name"
	LaunchKeyLinks = "links"
)

// QueryParams is the list state that decides what gets fetched.
// It is compared by value to suppress duplicate fetches.
type QueryParams struct {
	PageSize    int
	CurrentPage int
	FilterValue string
}

// DefaultQueryParams returns the params a list starts with
func DefaultQueryParams() QueryParams {
	return QueryParams{
		PageSize:    DefaultPageSize,
		CurrentPage: DefaultCurrentPage,
		FilterValue: "",
	}
}

// Populate asks the API to expand a related collection
type Populate struct {
	Path   string   `json:"path"`
	Select []string `json:"select,omitempty"`
}

// RequestOptions is the projection and pagination descriptor sent with a query
type RequestOptions struct {
	Select   []string   `json:"select,omitempty"`
	Populate []Populate `json:"populate,omitempty"`
	Limit    int        `json:"limit,omitempty"`
	Page     int        `json:"page,omitempty"`
}

// BuildRequestOptions derives the options for one request.
// Limit and Page are only set when the params carry a non-zero value.
func BuildRequestOptions(params QueryParams) RequestOptions {
	opts := RequestOptions{
		Select: []string{
			LaunchpadKeyID,
			LaunchpadKeyName,
			LaunchpadKeyRegion,
			LaunchpadKeyLaunches,
		},
		Populate: []Populate{
			{
				Path:   LaunchpadKeyLaunches,
				Select: []string{LaunchKeyName, LaunchKeyLinks},
			},
		},
	}
	if params.PageSize != 0 {
		opts.Limit = params.PageSize
	}
	if params.CurrentPage != 0 {
		opts.Page = params.CurrentPage
	}
	return opts
}

// RegexCondition is a field-level regex match with flags
type RegexCondition struct {
	Regex   string `json:"$regex"`
	Options string `json:"$options,omitempty"`
}

// FieldCondition maps a field name to its condition
type FieldCondition map[string]RegexCondition

// Query is the filter expression of a request. The zero value matches everything
// and serialises as {}.
type Query struct {
	Or []FieldCondition `json:"$or,omitempty"`
}

// BuildQuery returns the filter for the given text: a case-insensitive regex
// on name OR region, or an empty query when the text is empty
func BuildQuery(filterValue string) Query {
	if filterValue == "" {
		return Query{}
	}
	cond := RegexCondition{Regex: filterValue, Options: "i"}
	return Query{
		Or: []FieldCondition{
			{LaunchpadKeyName: cond},
			{LaunchpadKeyRegion: cond},
		},
	}
}

// IsEmpty reports whether the query matches everything
func (q Query) IsEmpty() bool {
	return len(q.Or) == 0
}

// Match evaluates the query against a launchpad the way the API does
func (q Query) Match(l Launchpad) bool {
	if q.IsEmpty() {
		return true
	}
	for _, fc := range q.Or {
		for field, cond := range fc {
			var value string
			switch field {
			case LaunchpadKeyName:
				value = l.Name
			case LaunchpadKeyRegion:
				value = l.Region
			case LaunchpadKeyID:
				value = l.ID
			default:
				continue
			}
			if cond.matches(value) {
				return true
			}
		}
	}
	return false
}

func (c RegexCondition) matches(value string) bool {
	insensitive := strings.Contains(c.Options, "i")
	pattern := c.Regex
	if insensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		// Not a valid regex, fall back to a literal substring
		if insensitive {
			return strings.Contains(strings.ToLower(value), strings.ToLower(c.Regex))
		}
		return strings.Contains(value, c.Regex)
	}
	return re.MatchString(value)
}
