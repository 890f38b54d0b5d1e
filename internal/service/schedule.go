package service

import (
	"sort"
	"time"

	errorvalues "github.com/medtrack/medtrack/internal/error_values"
	"github.com/medtrack/medtrack/pkg/entity"
)

const (
	// A logged dose matches its generated slot when the scheduled times are
	// less than a minute apart. Covers serialization jitter, not clock skew.
	matchTolerance = time.Minute
	// An unmatched slot this far in the past renders as missed. Derived on
	// read only, never written to the store.
	missedGrace = 12 * time.Hour
)

// ParseClock validates an "HH:MM" 24-hour zero-padded time of day and
// returns hours and minutes.
func ParseClock(value string) (int, int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, 0, errorvalues.ErrBadReminderTime
	}
	for _, i := range []int{0, 1, 3, 4} {
		if value[i] < '0' || value[i] > '9' {
			return 0, 0, errorvalues.ErrBadReminderTime
		}
	}
	hours := int(value[0]-'0')*10 + int(value[1]-'0')
	minutes := int(value[3]-'0')*10 + int(value[4]-'0')
	if hours > 23 || minutes > 59 {
		return 0, 0, errorvalues.ErrBadReminderTime
	}
	return hours, minutes, nil
}

func sameOrBeforeDay(t, day time.Time) bool {
	y1, m1, d1 := t.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 <= d2
}

// activeOn reports whether the medication's date range covers the day.
func activeOn(med *entity.Medication, day time.Time) bool {
	if !sameOrBeforeDay(med.StartDate, day) {
		return false
	}
	if med.EndDate != nil && !sameOrBeforeDay(day, *med.EndDate) {
		return false
	}
	return true
}

// BuildDaySchedule projects the scheduled doses of one calendar day from
// reminder times and reconciles each slot against existing logs. Pure, no
// persistence side effect; recomputed on every view.
//
// A slot takes the status of a log whose scheduled_time lies within the
// match tolerance. An unmatched slot is pending, or missed once the grace
// window after its scheduled time has elapsed. Medications outside their
// start/end date range contribute no slots, and a malformed reminder time
// drops only its own slot.
func BuildDaySchedule(day, now time.Time, meds []*entity.Medication, logs []entity.DoseLog) []entity.ScheduledDose {
	year, month, dayNum := day.Date()
	doses := make([]entity.ScheduledDose, 0)
	for _, med := range meds {
		if !activeOn(med, day) {
			continue
		}
		for _, reminder := range med.ReminderTimes {
			hours, minutes, err := ParseClock(reminder)
			if err != nil {
				continue
			}
			slot := time.Date(year, month, dayNum, hours, minutes, 0, 0, day.Location())
			status := entity.StatusPending
			for _, log := range logs {
				if log.MedicationID != med.ID {
					continue
				}
				diff := log.ScheduledTime.Sub(slot)
				if diff < 0 {
					diff = -diff
				}
				if diff < matchTolerance {
					status = log.Status
					break
				}
			}
			if status == entity.StatusPending && now.Sub(slot) > missedGrace {
				status = entity.StatusMissed
			}
			doses = append(doses, entity.ScheduledDose{
				MedicationID:   med.ID,
				MedicationName: med.Name,
				Dose:           med.Dose,
				Color:          med.Color,
				ScheduledTime:  slot,
				Status:         status,
			})
		}
	}
	sort.SliceStable(doses, func(i, j int) bool {
		return doses[i].ScheduledTime.Before(doses[j].ScheduledTime)
	})
	return doses
}
