// Package apitest provides an in-process launchpads query endpoint for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"launchpads/internal/domain"
)

// Request is a decoded request body as seen by the server
type Request struct {
	Query     domain.Query          `json:"query"`
	Options   domain.RequestOptions `json:"options"`
	RequestID string                `json:"-"`
}

// Server serves a fixed set of launchpads, filtering and paginating them the
// way the real endpoint does
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	pads     []domain.Launchpad
	requests []Request
	status   int
}

// NewServer starts a server over pads
func NewServer(pads []domain.Launchpad) *Server {
	s := &Server{pads: pads}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// FailWith makes every following request answer with status. 0 restores normal answers.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Requests returns the requests received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.RequestID = r.Header.Get("X-Request-ID")

	s.mu.Lock()
	s.requests = append(s.requests, req)
	status := s.status
	pads := s.pads
	s.mu.Unlock()

	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Paginate(pads, req.Query, req.Options))
}

// Paginate filters pads with query and cuts the page described by options
func Paginate(pads []domain.Launchpad, query domain.Query, options domain.RequestOptions) domain.PaginationPage {
	matched := make([]domain.Launchpad, 0, len(pads))
	for _, p := range pads {
		if query.Match(p) {
			matched = append(matched, p)
		}
	}

	limit := options.Limit
	if limit <= 0 {
		limit = 10
	}
	page := options.Page
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	totalPages := (len(matched) + limit - 1) / limit
	return domain.PaginationPage{
		Docs:        matched[start:end],
		TotalDocs:   len(matched),
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Fixtures returns a small launchpad data set modelled on the public API
func Fixtures() []domain.Launchpad {
	return []domain.Launchpad{
		{ID: "5e9e4501f5090910d4566f83", Name: "VAFB SLC 3W", Region: "California", Launches: []domain.Launch{}},
		{
			ID: "5e9e4501f509094ba4566f84", Name: "CCSFS SLC 40", Region: "Florida",
			Launches: []domain.Launch{
				{Name: "CRS-1", Links: domain.LaunchLinks{Webcast: "https://www.youtube.com/watch?v=-Vk3hiV_zXU", Wikipedia: "https://en.wikipedia.org/wiki/SpaceX_CRS-1"}},
				{Name: "Starlink-15 (v1.0)", Links: domain.LaunchLinks{Article: "https://spaceflightnow.com/2020/10/24/"}},
			},
		},
		{ID: "5e9e4502f5090927f8566f85", Name: "STLS", Region: "Texas", Launches: []domain.Launch{}},
		{
			ID: "5e9e4502f5090995de566f86", Name: "Kwajalein Atoll", Region: "Marshall Islands",
			Launches: []domain.Launch{{Name: "FalconSat", Links: domain.LaunchLinks{Wikipedia: "https://en.wikipedia.org/wiki/FalconSAT"}}},
		},
		{
			ID: "5e9e4502f509092b78566f87", Name: "VAFB SLC 4E", Region: "California",
			Launches: []domain.Launch{{Name: "CASSIOPE", Links: domain.LaunchLinks{Reddit: domain.RedditLinks{Launch: "https://www.reddit.com/r/spacex/comments/1ni1u8/"}}}},
		},
		{
			ID: "5e9e4502f509094188566f88", Name: "KSC LC 39A", Region: "Florida",
			Launches: []domain.Launch{{Name: "Demo-2", Links: domain.LaunchLinks{Patch: domain.PatchLinks{Small: "https://images2.imgbox.com/ab/79/Wyc9K7fv_o.png"}}}},
		},
	}
}
