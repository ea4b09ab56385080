package domain

import (
	"fmt"
	"time"
)

const TodoNameMaxLength = 255

type TodoStatus int

const (
	TodoStatusNotStarted TodoStatus = iota
	TodoStatusInProgress
	TodoStatusCompleted
)

var todoStatusNames = []string{"not_started", "in_progress", "completed"}

func (s TodoStatus) IsValid() bool {
	return s >= TodoStatusNotStarted && s <= TodoStatusCompleted
}

func (s TodoStatus) String() string {
	if !s.IsValid() {
		return "unknown"
	}

	return todoStatusNames[s]
}

// IsComplete is the derived legacy completion flag.
func (s TodoStatus) IsComplete() bool {
	return s == TodoStatusCompleted
}

func ParseTodoStatus(value int) (TodoStatus, error) {
	status := TodoStatus(value)

	if !status.IsValid() {
		return TodoStatusNotStarted, InvalidInput("status", fmt.Sprintf("invalid status: %d", value))
	}

	return status, nil
}

// StatusForCompletion maps a write of the completion flag onto a status.
// Clearing the flag keeps a non-completed status as it is.
func StatusForCompletion(complete bool, current TodoStatus) TodoStatus {
	if complete {
		return TodoStatusCompleted
	}

	if current == TodoStatusCompleted || !current.IsValid() {
		return TodoStatusNotStarted
	}

	return current
}

// ResolveStatus picks the status to persist from whichever of status and
// isComplete the caller wrote. With neither the current status is kept.
func ResolveStatus(status *TodoStatus, isComplete *bool, current TodoStatus) (TodoStatus, error) {
	switch {
	case status != nil && !status.IsValid():
		return current, InvalidInput("status", fmt.Sprintf("invalid status: %d", int(*status)))
	case status != nil && isComplete != nil:
		if status.IsComplete() != *isComplete {
			return current, InvalidInput("isComplete", "isComplete disagrees with status")
		}

		return *status, nil
	case status != nil:
		return *status, nil
	case isComplete != nil:
		return StatusForCompletion(*isComplete, current), nil
	default:
		return current, nil
	}
}

type TodoItem struct {
	ID         int64
	Name       string
	Status     TodoStatus
	OwnerID    int64
	CategoryID *int64
	Category   *CategorySummary
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t TodoItem) Owner() int64 {
	return t.OwnerID
}

func (t TodoItem) IsComplete() bool {
	return t.Status.IsComplete()
}

func (t *TodoItem) SetStatus(status TodoStatus) {
	t.Status = status
}

// NormalizeCategoryID turns the zero/negative sentinel into "no category".
func NormalizeCategoryID(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}

	value := *id
	return &value
}

func ValidateTodoName(name string) (string, error) {
	name = NormalizeName(name)

	if name == "" {
		return "", InvalidInput("name", "todo name is required")
	}

	if len([]rune(name)) > TodoNameMaxLength {
		return "", InvalidInput("name", "todo name must be at most 255 characters")
	}

	return name, nil
}
