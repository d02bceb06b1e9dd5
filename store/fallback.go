package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/mm-relief/lostfound-bot/schema"
)

// FallbackStore is the in-process tier that keeps finalized reports alive
// while the primary store is unreachable. It is constructed once at process
// start and handed to the façade; nothing else touches it. Handlers for
// different chats run concurrently, so every access goes through the mutex.
type FallbackStore struct {
	mu      sync.RWMutex
	reports map[string]schema.Report
}

func NewFallbackStore() *FallbackStore {
	return &FallbackStore{
		reports: make(map[string]schema.Report),
	}
}

// Put stores a copy of the report keyed by its uppercased report id.
func (f *FallbackStore) Put(r *schema.Report) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[strings.ToUpper(r.ReportID)] = *r
}

func (f *FallbackStore) Get(reportID string) (*schema.Report, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	r, ok := f.reports[strings.ToUpper(reportID)]
	if !ok {
		return nil, false
	}
	return &r, true
}

// Search does a case-insensitive substring match over details, optionally
// narrowed by report type, most recent first.
func (f *FallbackStore) Search(query string, typeFilter schema.ReportType, limit int) []schema.Report {
	f.mu.RLock()
	defer f.mu.RUnlock()

	needle := strings.ToLower(query)
	matches := []schema.Report{}
	for _, r := range f.reports {
		if typeFilter != "" && r.ReportType != typeFilter {
			continue
		}
		if !strings.Contains(strings.ToLower(r.Details), needle) {
			continue
		}
		matches = append(matches, r)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// SetStatus updates the stored copy's status if the report exists and belongs
// to requesterID.
func (f *FallbackStore) SetStatus(reportID string, status schema.ReportStatus, requesterID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.ToUpper(reportID)
	r, ok := f.reports[key]
	if !ok || r.UserID != requesterID {
		return false
	}
	r.Status = status
	f.reports[key] = r
	return true
}

func (f *FallbackStore) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.reports)
}
