package store

import (
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"github.com/mm-relief/lostfound-bot/schema"
)

var (
	ErrReportNotFound    = fmt.Errorf("no report found with that id")
	ErrNotOwner          = fmt.Errorf("only the original submitter may update a report")
	ErrDuplicateReportID = fmt.Errorf("a report with that id already exists")
)

// Maximum reports returned by a free-text search; results go into a single
// chat reply so the set has to stay small.
const maxSearchResults = 10

// LostFoundCore is the single entry point for report persistence. Callers
// never see a primary-store outage: writes and reads degrade to the
// in-process fallback tier and only a genuinely absent record yields
// ErrReportNotFound.
type LostFoundCore interface {
	Ping() error

	SaveReport(r *schema.Report) (*schema.Report, error)
	GetReport(reportID string) (*schema.Report, error)
	SearchReports(query string, typeFilter schema.ReportType) ([]schema.Report, error)
	UpdateReportStatus(reportID string, status schema.ReportStatus, requesterID int64) error

	Close() error
}

// LostFoundStore is an implementation of LostFoundCore backed by postgres
// with an injected in-memory fallback tier.
type LostFoundStore struct {
	primary  reportTable
	fallback *FallbackStore
	log      *logrus.Entry
}

func NewLostFoundStore(ormDB *gorm.DB, fallback *FallbackStore) *LostFoundStore {
	return &LostFoundStore{
		primary:  &ormTable{db: ormDB},
		fallback: fallback,
		log:      logrus.WithField("prefix", "store"),
	}
}

// Ping is to check the primary storage health status.
func (s *LostFoundStore) Ping() error {
	return s.primary.ping()
}

func (s *LostFoundStore) Close() error {
	return s.primary.close()
}
