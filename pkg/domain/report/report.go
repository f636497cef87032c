package report

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusDismissed Status = "dismissed"
	StatusActioned  Status = "actioned"
)

type Report struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReportedUserID uuid.UUID `json:"reported_user_id" gorm:"type:uuid;index"`
	ReporterID     uuid.UUID `json:"reporter_id" gorm:"type:uuid;index"`
	Reason         string    `json:"reason"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}

func (r *Report) TableName() string {
	return "public.reports"
}
