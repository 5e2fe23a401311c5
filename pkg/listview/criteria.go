// Package listview holds the state machines behind every filtered list
// page: pending vs. applied filter snapshots, debounced free-text search
// and supersession of overlapping fetches.
package listview

import "sync"

// Criteria separates what the user is editing (pending) from what was last
// sent to the backend (applied). Structured filters only move on an
// explicit Apply; pagination mutates applied directly.
type Criteria struct {
	mu       sync.Mutex
	defaults map[string]string
	pending  map[string]string
	applied  map[string]string

	page         int
	limit        int
	defaultLimit int
}

func NewCriteria(defaults map[string]string, defaultLimit int) *Criteria {
	c := &Criteria{
		defaults:     cloneMap(defaults),
		defaultLimit: defaultLimit,
	}
	c.resetLocked()
	return c
}

func (c *Criteria) resetLocked() {
	c.pending = cloneMap(c.defaults)
	c.applied = cloneMap(c.defaults)
	c.page = 1
	c.limit = c.defaultLimit
}

// SetPending edits one criterion without triggering a fetch.
func (c *Criteria) SetPending(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[key] = value
}

// Apply copies pending over applied and rewinds to the first page. The
// caller triggers exactly one fetch afterwards.
func (c *Criteria) Apply() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applied = cloneMap(c.pending)
	c.page = 1
}

// ApplySearch is the debounced free-text path: it bypasses the pending
// stage for the search key only.
func (c *Criteria) ApplySearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending["search_key"] = text
	c.applied["search_key"] = text
	c.page = 1
}

// Clear resets both snapshots to defaults. One fetch follows.
func (c *Criteria) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// SetPage mutates the applied snapshot directly; there is no pending stage
// for pagination.
func (c *Criteria) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page >= 1 {
		c.page = page
	}
}

// SetLimit changes the page size and rewinds to the first page.
func (c *Criteria) SetLimit(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if limit >= 1 {
		c.limit = limit
		c.page = 1
	}
}

func (c *Criteria) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Criteria) Limit() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limit
}

func (c *Criteria) Pending() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneMap(c.pending)
}

func (c *Criteria) Applied() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneMap(c.applied)
}

// Payload renders the applied snapshot in the backend's pagination
// contract: skip/limit/page plus every non-empty filter.
func (c *Criteria) Payload() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload := map[string]any{
		"skip":  (c.page - 1) * c.limit,
		"limit": c.limit,
		"page":  c.page,
	}
	for key, value := range c.applied {
		if value == "" {
			continue
		}
		payload[key] = value
	}
	return payload
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
