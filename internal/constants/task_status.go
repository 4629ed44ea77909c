package constants

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every status in the order they are reported.
var TaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

func ParseTaskStatus(s string) (TaskStatus, bool) {
	for _, status := range TaskStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

func (s TaskStatus) Valid() bool {
	_, ok := ParseTaskStatus(string(s))
	return ok
}
