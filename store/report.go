package store

import (
	"sort"
	"strings"
	"time"

	"github.com/mm-relief/lostfound-bot/schema"
)

// SaveReport commits a finalized report. A primary-store failure is not a
// caller-visible error: the record lands in the fallback tier under the same
// report id and the caller-facing contract stays "your report is safely
// recorded". Only a duplicate report id is surfaced, so the caller can
// regenerate.
func (s *LostFoundStore) SaveReport(r *schema.Report) (*schema.Report, error) {
	r.ReportID = strings.ToUpper(r.ReportID)
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if r.Status == "" {
		r.Status = schema.DefaultStatus(r.ReportType)
	}

	if err := s.primary.insert(r); err != nil {
		if err == ErrDuplicateReportID {
			return nil, err
		}
		s.log.WithError(err).Warnf("primary store rejected report %s, keeping it in the fallback tier", r.ReportID)
		s.fallback.Put(r)
	}

	return r, nil
}

// GetReport looks a report up by id, ignoring case. Primary-store errors are
// swallowed in favor of the fallback tier; only a record absent from both
// tiers yields ErrReportNotFound.
func (s *LostFoundStore) GetReport(reportID string) (*schema.Report, error) {
	reportID = strings.ToUpper(strings.TrimSpace(reportID))

	report, err := s.primary.byReportID(reportID)
	if err == nil {
		return report, nil
	}
	if err != ErrReportNotFound {
		s.log.WithError(err).Warnf("primary store lookup failed for %s, trying fallback tier", reportID)
	}

	if report, ok := s.fallback.Get(reportID); ok {
		return report, nil
	}
	return nil, ErrReportNotFound
}

// SearchReports matches the query against report details in both tiers,
// most recent first. A primary-store failure degrades to fallback-only
// results; a miss is an empty slice, never an error.
func (s *LostFoundStore) SearchReports(query string, typeFilter schema.ReportType) ([]schema.Report, error) {
	results, err := s.primary.search(query, typeFilter, maxSearchResults)
	if err != nil {
		s.log.WithError(err).Warn("primary store search failed, serving fallback tier only")
		results = nil
	}

	seen := make(map[string]bool, len(results))
	for _, r := range results {
		seen[r.ReportID] = true
	}
	for _, r := range s.fallback.Search(query, typeFilter, maxSearchResults) {
		if !seen[r.ReportID] {
			results = append(results, r)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results, nil
}

// UpdateReportStatus changes a report's lifecycle status. The write is
// owner-gated: a requester other than the stored owner gets ErrNotOwner and
// no tier is touched. When the report exists in both tiers, both copies are
// updated so later reads cannot go stale.
func (s *LostFoundStore) UpdateReportStatus(reportID string, status schema.ReportStatus, requesterID int64) error {
	reportID = strings.ToUpper(strings.TrimSpace(reportID))

	primaryCopy, primaryErr := s.primary.byReportID(reportID)
	fallbackCopy, inFallback := s.fallback.Get(reportID)

	if primaryErr != nil && primaryErr != ErrReportNotFound {
		s.log.WithError(primaryErr).Warnf("primary store lookup failed for %s during status update", reportID)
	}
	if primaryCopy == nil && !inFallback {
		return ErrReportNotFound
	}
	if primaryCopy != nil && primaryCopy.UserID != requesterID {
		return ErrNotOwner
	}
	if inFallback && fallbackCopy.UserID != requesterID {
		return ErrNotOwner
	}

	if primaryCopy != nil {
		if ok, err := s.primary.setStatus(reportID, status, requesterID); err != nil {
			s.log.WithError(err).Warnf("primary store status update failed for %s", reportID)
			// Keep the updated copy retrievable through the façade.
			primaryCopy.Status = status
			s.fallback.Put(primaryCopy)
		} else if !ok {
			return ErrNotOwner
		}
	}
	if inFallback {
		s.fallback.SetStatus(reportID, status, requesterID)
	}

	return nil
}
