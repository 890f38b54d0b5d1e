package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medtrack/medtrack/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type MedicationRequest struct {
	Name            string     `validate:"required,min=1,max=200"`
	Dose            string     `validate:"max=200"`
	FrequencyPerDay int        `validate:"required,min=1,max=24"`
	Category        string     `validate:"max=100"`
	FamilyMember    string     `validate:"max=100"`
	StartDate       time.Time  `validate:"required"`
	EndDate         *time.Time ``
	ReminderTimes   []string   `validate:"dive,hhmm"`
	Color           string     `validate:"omitempty,hexcolor"`
}

type ReportFilter struct {
	// Trailing window in days, counted back from now over scheduled_time
	Days int
	// Nil means all medications
	MedicationID *uuid.UUID
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type MedicationsServiceI interface {
	// Validates fields and creates medication owned by uid
	CreateMedication(ctx context.Context, uid uuid.UUID, req *MedicationRequest) (*entity.Medication, error)
	// Lists medications owned by uid, newest first
	GetUserMedications(ctx context.Context, uid uuid.UUID) ([]*entity.Medication, error)
	GetMedication(ctx context.Context, medID, uid uuid.UUID) (*entity.Medication, error)
	UpdateMedication(ctx context.Context, medID, uid uuid.UUID, req *MedicationRequest) (*entity.Medication, error)
	// Deletes medication. Historical dose logs keep referencing it by id
	DeleteMedication(ctx context.Context, medID, uid uuid.UUID) error
}

type DosesServiceI interface {
	// Records the dose scheduled at scheduledTime as taken now. Returns the
	// written log and a milestone when the trailing-week taken count hits a
	// multiple of seven
	MarkTaken(ctx context.Context, medID, uid uuid.UUID, scheduledTime time.Time) (*entity.DoseLog, *entity.Milestone, error)
	// Lists uid's dose logs ordered by scheduled_time descending
	GetLogs(ctx context.Context, uid uuid.UUID) ([]entity.DoseLog, error)
	// Projects the scheduled doses of one calendar day
	GetDaySchedule(ctx context.Context, uid uuid.UUID, day time.Time) ([]entity.ScheduledDose, error)
}

type AnalyticsServiceI interface {
	GetStats(ctx context.Context, uid uuid.UUID) (*entity.AdherenceStats, error)
	GetHeatmap(ctx context.Context, uid uuid.UUID) ([]entity.HeatmapEntry, error)
	// Per-medication adherence ranked by missed count descending
	GetMedicationAdherence(ctx context.Context, uid uuid.UUID) ([]entity.MedicationAdherence, error)
}

type ReportsServiceI interface {
	// Renders filtered dose logs as a quoted CSV table
	ExportCSV(ctx context.Context, uid uuid.UUID, filter ReportFilter) ([]byte, error)
	// Renders a paginated textual summary document
	ExportSummary(ctx context.Context, uid uuid.UUID, filter ReportFilter) ([]byte, error)
}
