// Package complaint defines complaint records, their categories and status
// lifecycle, and the contract of the service that stores them.
package complaint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/reclamation-control/internal/session"
)

var (
	// ErrNotFound indicates the requested complaint does not exist.
	ErrNotFound = errors.New("complaint not found")

	// ErrInvalidTransition indicates a status change the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Category classifies a complaint.
type Category string

const (
	CategoryDelay          Category = "DELAY"
	CategoryCancellation   Category = "CANCELLATION"
	CategoryOvercrowding   Category = "OVERCROWDING"
	CategoryCleanliness    Category = "CLEANLINESS"
	CategorySafety         Category = "SAFETY"
	CategoryStaffBehaviour Category = "STAFF_BEHAVIOUR"
	CategoryTicketing      Category = "TICKETING"
	CategoryAccessibility  Category = "ACCESSIBILITY"
	CategoryOther          Category = "OTHER"
)

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryDelay,
		CategoryCancellation,
		CategoryOvercrowding,
		CategoryCleanliness,
		CategorySafety,
		CategoryStaffBehaviour,
		CategoryTicketing,
		CategoryAccessibility,
		CategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Label renders the category for display.
func (c Category) Label() string {
	s := strings.ToLower(strings.ReplaceAll(string(c), "_", " "))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Status is the processing state of a complaint.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusRejected   Status = "REJECTED"
)

// Statuses returns every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusResolved, StatusRejected}
}

var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusRejected},
	StatusInProgress: {StatusResolved, StatusRejected},
}

// CanTransition reports whether a complaint in status s may move to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Label renders the status for display.
func (s Status) Label() string {
	return strings.ToLower(strings.ReplaceAll(string(s), "_", " "))
}

// Author identifies who filed a complaint.
type Author struct {
	ID       int64
	Username string
	Role     session.Role
}

// AuthorFrom copies the identifying fields of a session user.
func AuthorFrom(u session.User) Author {
	return Author{ID: u.ID, Username: u.Username, Role: u.Role}
}

// Complaint is a transport complaint. Before it is handed to a Service it is
// a draft with an empty ID.
type Complaint struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Author      Author
}

// Query narrows List results. Zero values match everything.
type Query struct {
	AuthorID int64
	Status   Status
	Limit    int
}

// Stats summarises stored complaints.
type Stats struct {
	Total      int
	ByStatus   map[Status]int
	ByCategory map[Category]int
}

// Creator is the part of Service the complaint form depends on.
type Creator interface {
	Create(ctx context.Context, c Complaint) (Complaint, error)
}

// Service stores complaints durably.
type Service interface {
	Creator
	Get(ctx context.Context, id string) (Complaint, error)
	List(ctx context.Context, q Query) ([]Complaint, error)
	UpdateStatus(ctx context.Context, id string, next Status) (Complaint, error)
	Stats(ctx context.Context) (Stats, error)
}

// TransitionError reports a forbidden status change.
func TransitionError(from, to Status) error {
	return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from.Label(), to.Label())
}
