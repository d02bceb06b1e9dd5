package store

import (
	"fmt"
	"sync"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"

	"github.com/mm-relief/lostfound-bot/schema"
)

// reportTable is the primary-tier surface the façade needs. It exists so the
// failover logic can be exercised against a broken primary without a live
// database.
type reportTable interface {
	ping() error
	insert(r *schema.Report) error
	byReportID(reportID string) (*schema.Report, error)
	search(query string, typeFilter schema.ReportType, limit int) ([]schema.Report, error)
	setStatus(reportID string, status schema.ReportStatus, requesterID int64) (bool, error)
	close() error
}

// errNoPrimary marks operations attempted while the bot runs without a
// database connection; the façade degrades them to the fallback tier.
var errNoPrimary = fmt.Errorf("primary store not connected")

// ormTable backs reportTable with gorm/postgres. A nil db is legal: it
// means the primary was unreachable at boot and every call reports
// errNoPrimary.
type ormTable struct {
	db        *gorm.DB
	closeOnce sync.Once
	closeErr  error
}

func (t *ormTable) ping() error {
	if t.db == nil {
		return errNoPrimary
	}
	return t.db.DB().Ping()
}

func (t *ormTable) insert(r *schema.Report) error {
	if t.db == nil {
		return errNoPrimary
	}
	if err := t.db.Create(r).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateReportID
		}
		return err
	}
	return nil
}

func (t *ormTable) byReportID(reportID string) (*schema.Report, error) {
	if t.db == nil {
		return nil, errNoPrimary
	}

	var report schema.Report
	if err := t.db.Where("UPPER(report_id) = ?", reportID).First(&report).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (t *ormTable) search(query string, typeFilter schema.ReportType, limit int) ([]schema.Report, error) {
	if t.db == nil {
		return nil, errNoPrimary
	}

	reports := []schema.Report{}

	q := t.db.Where("details ILIKE ?", "%"+query+"%")
	if typeFilter != "" {
		q = q.Where("report_type = ?", typeFilter)
	}

	if err := q.Order("created_at desc").Limit(limit).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// setStatus updates the status only when the row belongs to requesterID,
// returning whether a row was touched.
func (t *ormTable) setStatus(reportID string, status schema.ReportStatus, requesterID int64) (bool, error) {
	if t.db == nil {
		return false, errNoPrimary
	}

	result := t.db.Model(schema.Report{}).
		Where("UPPER(report_id) = ? AND user_id = ?", reportID, requesterID).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (t *ormTable) close() error {
	t.closeOnce.Do(func() {
		if t.db != nil {
			t.closeErr = t.db.Close()
		}
	})
	return t.closeErr
}
