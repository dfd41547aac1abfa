package project

import "fmt"

type Status struct {
	Sprint          string
	NextMilestone   string
	Blockers        string
	ProgressPercent int
}

type Info struct {
	Name     string
	Summary  string
	Timeline string
	Goals    []string
	Status   Status
}

type TaskStatus string

const (
	TaskCompleted TaskStatus = "completed"
	TaskActive    TaskStatus = "active"
	TaskPending   TaskStatus = "pending"
	TaskBlocked   TaskStatus = "blocked"
)

// TaskStatuses lists every board column in display order.
var TaskStatuses = []TaskStatus{TaskCompleted, TaskActive, TaskPending, TaskBlocked}

func ParseTaskStatus(s string) (TaskStatus, error) {
	for _, status := range TaskStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTaskStatus, s)
}

// TaskBoard holds free text task descriptions per status.
type TaskBoard map[TaskStatus][]string

func (b TaskBoard) Total() int {
	total := 0
	for _, status := range TaskStatuses {
		total += len(b[status])
	}
	return total
}
