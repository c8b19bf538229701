package model

import "time"

// Page is the result of fetching a listing page.
type Page struct {
	URL        string
	StatusCode int
	Body       string
	// Date is the response Date header, zero when absent or unparseable.
	Date time.Time
}

func (p *Page) OK() bool {
	return p.StatusCode >= 200 && p.StatusCode < 300
}
