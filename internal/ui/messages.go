package ui

import "time"

// pagerClosedMsg is sent when the details pager exits
type pagerClosedMsg struct {
	name string
	err  error
}

// clearStatusMsg clears a transient status message
type clearStatusMsg struct {
	at time.Time
}
