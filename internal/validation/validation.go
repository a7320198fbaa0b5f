package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tasktrack/tasktrack-api/internal/constants"
	"github.com/tasktrack/tasktrack-api/internal/models"
)

// Result is the outcome of a single field validation.
type Result struct {
	OK      bool
	Message string
}

func ok() Result {
	return Result{OK: true}
}

func fail(message string) Result {
	return Result{OK: false, Message: message}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Name checks a user display name.
func Name(name string) Result {
	if name == "" {
		return fail("Name is required")
	}
	// Bounds are in characters, not bytes
	length := utf8.RuneCountInString(name)
	if length < constants.MinNameLength {
		return fail(fmt.Sprintf("Name must be at least %d characters", constants.MinNameLength))
	}
	if length > constants.MaxNameLength {
		return fail(fmt.Sprintf("Name cannot exceed %d characters", constants.MaxNameLength))
	}
	return ok()
}

// Email checks a login email address.
func Email(email string) Result {
	if email == "" {
		return fail("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return fail("Email format is invalid")
	}
	return ok()
}

// Password checks a plaintext password. Only a minimum length is enforced.
func Password(password string) Result {
	if password == "" {
		return fail("Password is required")
	}
	if len(password) < constants.MinPasswordLength {
		return fail(fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	}
	return ok()
}

// TaskTitle checks a task title after trimming.
func TaskTitle(title string) Result {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return fail("Title is required")
	}
	length := utf8.RuneCountInString(trimmed)
	if length < constants.MinTitleLength {
		return fail(fmt.Sprintf("Title must be at least %d characters", constants.MinTitleLength))
	}
	if length > constants.MaxTitleLength {
		return fail(fmt.Sprintf("Title cannot exceed %d characters", constants.MaxTitleLength))
	}
	return ok()
}

// Description checks a task description.
func Description(description string) Result {
	if utf8.RuneCountInString(strings.TrimSpace(description)) > constants.MaxDescriptionLength {
		return fail(fmt.Sprintf("Description cannot exceed %d characters", constants.MaxDescriptionLength))
	}
	return ok()
}

// Status checks a task status value.
func Status(status string) Result {
	switch models.TaskStatus(status) {
	case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone:
		return ok()
	}
	return fail("Status must be: todo, in-progress, or done")
}

// Priority checks a task priority value.
func Priority(priority string) Result {
	switch models.TaskPriority(priority) {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
		return ok()
	}
	return fail("Priority must be: low, medium, or high")
}

// dueDateFormats lists the accepted due date layouts.
var dueDateFormats = []string{time.RFC3339, "2006-01-02"}

// DueDate parses a due date string. Returns the parsed time on success.
func DueDate(raw string) (time.Time, Result) {
	if raw == "" {
		return time.Time{}, fail("Due date is required")
	}
	for _, layout := range dueDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, ok()
		}
	}
	return time.Time{}, fail("Due date must be a valid date (YYYY-MM-DD format)")
}
