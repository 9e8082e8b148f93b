package models

import "time"

// Priority of a task
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists priorities from most to least urgent
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Status of a task
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// TaskType is the kind of follow-up a task represents
type TaskType string

const (
	TypeFollowUp TaskType = "follow-up"
	TypeMeeting  TaskType = "meeting"
	TypeCall     TaskType = "call"
	TypeEmail    TaskType = "email"
	TypeOther    TaskType = "other"
)

var TaskTypes = []TaskType{TypeFollowUp, TypeMeeting, TypeCall, TypeEmail, TypeOther}

// RelatedTo is a denormalized reference to a deal or product
type RelatedTo struct {
	Type string // "deal" or "product"
	ID   string
	Name string
}

// Task represents a follow-up, meeting, call or other CRM task
type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     time.Time // only the calendar date is meaningful
	Priority    Priority
	Status      Status
	Type        TaskType
	AssignedTo  string
	RelatedTo   *RelatedTo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductStatus is the catalog visibility of a product
type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

// Product is a catalog entry cached from the product service
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int
	Image       string
	Status      ProductStatus
}

// User is the authenticated session holder
type User struct {
	ID        string
	Username  string
	Email     string
	FirstName string
	LastName  string
	Token     string
	Role      string
}

// Name returns the display name of the user
func (u User) Name() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

// PriorityColors maps task priority to its display color
var PriorityColors = map[Priority]string{
	PriorityHigh:   "#dc2626",
	PriorityMedium: "#f59e0b",
	PriorityLow:    "#16a34a",
}

// StatusColors maps task status to its display color
var StatusColors = map[Status]string{
	StatusPending:    "#f59e0b",
	StatusInProgress: "#2563eb",
	StatusCompleted:  "#16a34a",
}

// DateLayout is the layout used for due dates in forms
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD due date in the given location
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// SameDay reports whether a and b fall on the same calendar day,
// each read in its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
