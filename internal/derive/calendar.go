package derive

import (
	"time"

	"github.com/tgienger/crmdash/internal/models"
)

// CalendarCells is the size of a month grid: six Sunday-first weeks
const CalendarCells = 42

// Day is one cell of the month grid
type Day struct {
	Date    time.Time
	InMonth bool
	Today   bool
	Tasks   []models.Task
}

// HasHighPriority reports whether any task on the day is high priority
func (d Day) HasHighPriority() bool {
	for _, t := range d.Tasks {
		if t.Priority == models.PriorityHigh {
			return true
		}
	}
	return false
}

// CalendarMonth builds the grid for the month containing ref, padded with
// the tail of the previous month and the head of the next one.
func CalendarMonth(ref, today time.Time, tasks []models.Task) []Day {
	year, month, _ := ref.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]Day, CalendarCells)
	for i := range days {
		date := start.AddDate(0, 0, i)
		day := Day{
			Date:    date,
			InMonth: date.Month() == month,
			Today:   models.SameDay(date, today),
		}
		for _, t := range tasks {
			if !t.DueDate.IsZero() && models.SameDay(t.DueDate, date) {
				day.Tasks = append(day.Tasks, t)
			}
		}
		days[i] = day
	}
	return days
}

// Weeks splits a grid into rows of seven
func Weeks(days []Day) [][]Day {
	var weeks [][]Day
	for len(days) >= 7 {
		weeks = append(weeks, days[:7])
		days = days[7:]
	}
	return weeks
}
