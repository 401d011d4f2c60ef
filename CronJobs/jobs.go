package CronJobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"Meridian/Models"
)

// OverdueSweeper flips pending invoices past their due date to overdue on a
// nightly schedule.
type OverdueSweeper struct {
	db             *gorm.DB
	cronScheduler  *cron.Cron
	runImmediately bool
	jobID          cron.EntryID
}

func NewOverdueSweeper(db *gorm.DB, runImmediately bool) *OverdueSweeper {
	return &OverdueSweeper{
		db:             db,
		cronScheduler:  cron.New(cron.WithSeconds()),
		runImmediately: runImmediately,
	}
}

// Start schedules the sweep for 1:00 AM daily.
func (s *OverdueSweeper) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 0 1 * * *", func() {
		s.Sweep()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	Models.Log.Info("overdue sweep scheduled for 1:00 AM daily")

	if s.runImmediately {
		s.Sweep()
	}
	return nil
}

func (s *OverdueSweeper) Stop() {
	s.cronScheduler.Stop()
}

// Sweep marks pending invoices with a due date before today as overdue.
// Invoices without a due date are never swept.
func (s *OverdueSweeper) Sweep() {
	today := time.Now().Format("2006-01-02")
	result := s.db.Model(&Models.InvoiceHeader{}).
		Where("payment_status = ?", Models.InvoicePending).
		Where("due_date IS NOT NULL AND due_date < ?", today).
		Update("payment_status", Models.InvoiceOverdue)
	if result.Error != nil {
		Models.Log.WithError(result.Error).Error("overdue sweep failed")
		return
	}
	if result.RowsAffected > 0 {
		Models.Log.WithField("invoices", result.RowsAffected).Info("invoices marked overdue")
	}
}
