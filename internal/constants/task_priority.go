package constants

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

func ParseTaskPriority(s string) (TaskPriority, bool) {
	for _, priority := range TaskPriorities {
		if string(priority) == s {
			return priority, true
		}
	}
	return "", false
}

func (p TaskPriority) Valid() bool {
	_, ok := ParseTaskPriority(string(p))
	return ok
}
