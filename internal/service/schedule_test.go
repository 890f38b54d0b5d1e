package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/medtrack/medtrack/internal/service"
	"github.com/medtrack/medtrack/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateAt(hour, minute int) time.Time {
	return time.Date(2026, 8, 10, hour, minute, 0, 0, time.UTC)
}

func testMedication(times ...string) *entity.Medication {
	return &entity.Medication{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            "Lisinopril",
		Dose:            "10mg",
		FrequencyPerDay: len(times),
		StartDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ReminderTimes:   times,
		Color:           "#3B82F6",
	}
}

func TestParseClock(t *testing.T) {
	testCases := []struct {
		Value   string
		Hours   int
		Minutes int
		Valid   bool
	}{
		{"09:00", 9, 0, true},
		{"21:30", 21, 30, true},
		{"00:00", 0, 0, true},
		{"23:59", 23, 59, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"9:00", 0, 0, false},
		{"0900", 0, 0, false},
		{"ab:cd", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.Value, func(t *testing.T) {
			hours, minutes, err := service.ParseClock(tc.Value)
			if !tc.Valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Hours, hours)
			assert.Equal(t, tc.Minutes, minutes)
		})
	}
}

func TestBuildDaySchedule(t *testing.T) {
	day := dateAt(0, 0)
	t.Run("logged slot keeps log status, the rest stay pending", func(t *testing.T) {
		med := testMedication("09:00", "21:00")
		logs := []entity.DoseLog{
			{ID: uuid.New(), MedicationID: med.ID, ScheduledTime: dateAt(9, 0), Status: entity.StatusTaken},
		}
		doses := service.BuildDaySchedule(day, dateAt(10, 0), []*entity.Medication{med}, logs)
		require.Len(t, doses, 2)
		assert.Equal(t, entity.StatusTaken, doses[0].Status)
		assert.Equal(t, dateAt(9, 0), doses[0].ScheduledTime)
		assert.Equal(t, entity.StatusPending, doses[1].Status)
		assert.Equal(t, dateAt(21, 0), doses[1].ScheduledTime)
	})
	t.Run("45 seconds off still matches the slot", func(t *testing.T) {
		med := testMedication("09:00")
		logs := []entity.DoseLog{
			{ID: uuid.New(), MedicationID: med.ID, ScheduledTime: dateAt(9, 0).Add(45 * time.Second), Status: entity.StatusLate},
		}
		doses := service.BuildDaySchedule(day, dateAt(9, 30), []*entity.Medication{med}, logs)
		require.Len(t, doses, 1)
		assert.Equal(t, entity.StatusLate, doses[0].Status)
	})
	t.Run("90 seconds off doesn't match", func(t *testing.T) {
		med := testMedication("09:00")
		logs := []entity.DoseLog{
			{ID: uuid.New(), MedicationID: med.ID, ScheduledTime: dateAt(9, 0).Add(90 * time.Second), Status: entity.StatusTaken},
		}
		doses := service.BuildDaySchedule(day, dateAt(9, 30), []*entity.Medication{med}, logs)
		require.Len(t, doses, 1)
		assert.Equal(t, entity.StatusPending, doses[0].Status)
	})
	t.Run("other medication's log doesn't match", func(t *testing.T) {
		med := testMedication("09:00")
		logs := []entity.DoseLog{
			{ID: uuid.New(), MedicationID: uuid.New(), ScheduledTime: dateAt(9, 0), Status: entity.StatusTaken},
		}
		doses := service.BuildDaySchedule(day, dateAt(9, 30), []*entity.Medication{med}, logs)
		require.Len(t, doses, 1)
		assert.Equal(t, entity.StatusPending, doses[0].Status)
	})
	t.Run("unmatched slot past the grace window renders missed", func(t *testing.T) {
		med := testMedication("09:00", "21:00")
		doses := service.BuildDaySchedule(day, dateAt(0, 0).AddDate(0, 0, 2), []*entity.Medication{med}, nil)
		require.Len(t, doses, 2)
		assert.Equal(t, entity.StatusMissed, doses[0].Status)
		assert.Equal(t, entity.StatusMissed, doses[1].Status)
	})
	t.Run("slot within the grace window stays pending", func(t *testing.T) {
		med := testMedication("09:00")
		doses := service.BuildDaySchedule(day, dateAt(15, 0), []*entity.Medication{med}, nil)
		require.Len(t, doses, 1)
		assert.Equal(t, entity.StatusPending, doses[0].Status)
	})
	t.Run("ascending by time, ties stay in medication order", func(t *testing.T) {
		first := testMedication("21:00", "08:00")
		second := testMedication("08:00")
		second.Name = "Metformin"
		doses := service.BuildDaySchedule(day, dateAt(7, 0), []*entity.Medication{first, second}, nil)
		require.Len(t, doses, 3)
		assert.Equal(t, first.ID, doses[0].MedicationID)
		assert.Equal(t, second.ID, doses[1].MedicationID)
		assert.Equal(t, dateAt(21, 0), doses[2].ScheduledTime)
	})
	t.Run("no reminder times means no slots", func(t *testing.T) {
		med := testMedication()
		doses := service.BuildDaySchedule(day, dateAt(12, 0), []*entity.Medication{med}, nil)
		assert.Empty(t, doses)
	})
	t.Run("malformed reminder time drops only its slot", func(t *testing.T) {
		med := testMedication("9:00", "21:00")
		doses := service.BuildDaySchedule(day, dateAt(12, 0), []*entity.Medication{med}, nil)
		require.Len(t, doses, 1)
		assert.Equal(t, dateAt(21, 0), doses[0].ScheduledTime)
	})
	t.Run("medication starting after the day is skipped", func(t *testing.T) {
		med := testMedication("09:00")
		med.StartDate = day.AddDate(0, 0, 1)
		doses := service.BuildDaySchedule(day, dateAt(12, 0), []*entity.Medication{med}, nil)
		assert.Empty(t, doses)
	})
	t.Run("medication ended before the day is skipped", func(t *testing.T) {
		med := testMedication("09:00")
		endDate := day.AddDate(0, 0, -1)
		med.EndDate = &endDate
		doses := service.BuildDaySchedule(day, dateAt(12, 0), []*entity.Medication{med}, nil)
		assert.Empty(t, doses)
	})
	t.Run("start and end boundaries are inclusive", func(t *testing.T) {
		med := testMedication("09:00")
		med.StartDate = day
		endDate := day
		med.EndDate = &endDate
		doses := service.BuildDaySchedule(day, dateAt(12, 0), []*entity.Medication{med}, nil)
		assert.Len(t, doses, 1)
	})
}
