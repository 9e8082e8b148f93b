// Package derive computes the read-only views the UI renders: the filtered
// task list, the month calendar and the dashboard summaries. Nothing here
// mutates its input.
package derive

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/tgienger/crmdash/internal/models"
)

// SortField names the task attribute a list is ordered by
type SortField string

const (
	SortTitle      SortField = "title"
	SortType       SortField = "type"
	SortPriority   SortField = "priority"
	SortStatus     SortField = "status"
	SortDueDate    SortField = "dueDate"
	SortAssignedTo SortField = "assignedTo"
	SortRelated    SortField = "related"
	SortCreatedAt  SortField = "createdAt"
	SortUpdatedAt  SortField = "updatedAt"
)

// SortFields lists every field in the order the UI cycles through them
var SortFields = []SortField{
	SortDueDate, SortTitle, SortPriority, SortStatus, SortType,
	SortAssignedTo, SortRelated, SortCreatedAt, SortUpdatedAt,
}

// Any matches every value of a category filter
const Any = "all"

// TaskQuery holds the transient list controls
type TaskQuery struct {
	Search     string
	Priority   string // "" or Any for every priority
	Status     string
	Type       string
	SortBy     SortField // "" keeps collection order
	Descending bool
}

// FilterTasks returns the tasks matching q, ordered by q.SortBy.
// The sort is stable. Values compare as stored; a pair with an absent
// due date, timestamp or relation compares equal.
func FilterTasks(tasks []models.Task, q TaskQuery) []models.Task {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if !matches(q.Priority, string(t.Priority)) ||
			!matches(q.Status, string(t.Status)) ||
			!matches(q.Type, string(t.Type)) {
			continue
		}
		out = append(out, t)
	}

	if q.SortBy == "" {
		return out
	}
	slices.SortStableFunc(out, func(a, b models.Task) int {
		c := compareBy(q.SortBy, a, b)
		if q.Descending {
			return -c
		}
		return c
	})
	return out
}

func matches(filter, value string) bool {
	return filter == "" || filter == Any || filter == value
}

func compareBy(field SortField, a, b models.Task) int {
	switch field {
	case SortTitle:
		return cmp.Compare(a.Title, b.Title)
	case SortType:
		return cmp.Compare(a.Type, b.Type)
	case SortPriority:
		return cmp.Compare(a.Priority, b.Priority)
	case SortStatus:
		return cmp.Compare(a.Status, b.Status)
	case SortDueDate:
		return compareDates(a.DueDate, b.DueDate)
	case SortAssignedTo:
		return cmp.Compare(a.AssignedTo, b.AssignedTo)
	case SortRelated:
		if a.RelatedTo == nil || b.RelatedTo == nil {
			return 0
		}
		return cmp.Compare(a.RelatedTo.Name, b.RelatedTo.Name)
	case SortCreatedAt:
		return compareTimes(a.CreatedAt, b.CreatedAt)
	case SortUpdatedAt:
		return compareTimes(a.UpdatedAt, b.UpdatedAt)
	}
	return 0
}

// compareDates compares calendar dates, ignoring time of day
func compareDates(a, b time.Time) int {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if c := cmp.Compare(ay, by); c != 0 {
		return c
	}
	if c := cmp.Compare(am, bm); c != 0 {
		return c
	}
	return cmp.Compare(ad, bd)
}

func compareTimes(a, b time.Time) int {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	return a.Compare(b)
}
