package entity

import (
	"time"

	"github.com/google/uuid"
)

type DoseStatus string

const (
	StatusPending DoseStatus = "pending"
	StatusTaken   DoseStatus = "taken"
	StatusMissed  DoseStatus = "missed"
	StatusLate    DoseStatus = "late"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

type Medication struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"uid"`
	Name            string     `json:"name"`
	Dose            string     `json:"dose"`
	FrequencyPerDay int        `json:"frequency_per_day"`
	Category        string     `json:"category"`
	FamilyMember    string     `json:"family_member,omitempty"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	// Times of day in "HH:MM" 24-hour format, no date component
	ReminderTimes []string  `json:"reminder_times"`
	Color         string    `json:"color"`
	CreatedAt     time.Time `json:"created_at"`
}

// DoseLog is append-only. MedicationID is a weak reference: the medication
// may be deleted later while its logs stay.
type DoseLog struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"uid"`
	MedicationID  uuid.UUID  `json:"medication_id"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	TakenTime     *time.Time `json:"taken_time,omitempty"`
	Status        DoseStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ScheduledDose is a per-day projection, recomputed on every view and
// never stored.
type ScheduledDose struct {
	MedicationID   uuid.UUID  `json:"medication_id"`
	MedicationName string     `json:"medication"`
	Dose           string     `json:"dose"`
	Color          string     `json:"color"`
	ScheduledTime  time.Time  `json:"scheduled_time"`
	Status         DoseStatus `json:"status"`
}

type AdherenceStats struct {
	OverallPercentage int `json:"overall_percentage"`
	WeeklyPercentage  int `json:"weekly_percentage"`
	Streak            int `json:"streak"`
	TotalDoses        int `json:"total_doses"`
	TakenDoses        int `json:"taken_doses"`
	MissedDoses       int `json:"missed_doses"`
}

type HeatmapEntry struct {
	Date       string `json:"date"`
	Percentage int    `json:"percentage"`
}

type MedicationAdherence struct {
	Medication    *Medication `json:"medication"`
	MissedCount   int         `json:"missed_count"`
	TotalCount    int         `json:"total_count"`
	AdherenceRate int         `json:"adherence_rate"`
}

// Milestone is emitted when the count of taken doses in the trailing
// seven days reaches a positive multiple of seven.
type Milestone struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}
