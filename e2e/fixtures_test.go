//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
)

type launchpad struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Region   string        `json:"region"`
	Launches []interface{} `json:"launches"`
}

type queryBody struct {
	Query struct {
		Or []map[string]struct {
			Regex string `json:"$regex"`
		} `json:"$or"`
	} `json:"query"`
	Options struct {
		Limit int `json:"limit"`
		Page  int `json:"page"`
	} `json:"options"`
}

// fakeAPI serves the launchpads query endpoint from a fixed set of pads
type fakeAPI struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	pads   []launchpad
}

func newFakeAPI() *fakeAPI {
	api := &fakeAPI{status: http.StatusOK, pads: []launchpad{
		{ID: "1", Name: "VAFB SLC 3W", Region: "California"},
		{ID: "2", Name: "CCSFS SLC 40", Region: "Florida", Launches: []interface{}{map[string]string{"name": "CRS-1"}}},
		{ID: "3", Name: "STLS", Region: "Texas"},
		{ID: "4", Name: "Kwajalein Atoll", Region: "Marshall Islands"},
		{ID: "5", Name: "VAFB SLC 4E", Region: "California"},
		{ID: "6", Name: "KSC LC 39A", Region: "Florida"},
	}}
	api.Server = httptest.NewServer(http.HandlerFunc(api.handle))
	return api
}

// FailWith makes every following request answer with status
func (a *fakeAPI) FailWith(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = status
}

func (a *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	status := a.status
	pads := a.pads
	a.mu.Unlock()

	if status != http.StatusOK {
		http.Error(w, "unavailable", status)
		return
	}

	var body queryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := ""
	for _, cond := range body.Query.Or {
		for _, c := range cond {
			filter = strings.ToLower(c.Regex)
		}
	}

	matched := []launchpad{}
	for _, p := range pads {
		if filter == "" ||
			strings.Contains(strings.ToLower(p.Name), filter) ||
			strings.Contains(strings.ToLower(p.Region), filter) {
			matched = append(matched, p)
		}
	}

	limit, page := body.Options.Limit, body.Options.Page
	if limit <= 0 {
		limit = 10
	}
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

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"docs":       matched[start:end],
		"totalDocs":  len(matched),
		"limit":      limit,
		"page":       page,
		"totalPages": (len(matched) + limit - 1) / limit,
	})
}

// CreateTestWorkspace creates an isolated home directory and API server for the app
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "launchpads-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = dir
	tf.api = newFakeAPI()
	return dir, nil
}

// StartAgainstAPI launches the app against the workspace's API server
func (tf *TUITestFramework) StartAgainstAPI(args ...string) error {
	return tf.StartApp(append([]string{"-url", tf.api.URL}, args...)...)
}
