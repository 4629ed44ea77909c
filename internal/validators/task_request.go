package validators

import (
	"fmt"
	"unicode/utf8"

	"task-api.com/task-api/internal/constants"
	dto "task-api.com/task-api/internal/data_models"
	"task-api.com/task-api/internal/exceptions"
	model "task-api.com/task-api/internal/models"
)

const MaxTitleLength = 200

// fieldErrors collects every problem in a request before failing.
type fieldErrors []exceptions.FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, exceptions.FieldError{Field: field, Message: message})
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return exceptions.NewValidationError(f...)
}

// ValidateTaskRequest validates a create or full-replace body. Absent
// optional members take their defaults rather than keeping stored values.
func ValidateTaskRequest(r *dto.TaskRequestData) (model.TaskFields, error) {
	var errs fieldErrors
	fields := model.TaskFields{
		Status:   constants.StatusPending,
		Priority: constants.PriorityMedium,
	}

	if r.Title == nil {
		errs.add("title", "field required")
	} else if msg := checkTitle(*r.Title); msg != "" {
		errs.add("title", msg)
	} else {
		fields.Title = *r.Title
	}

	if r.Description != nil {
		description := *r.Description
		fields.Description = &description
	}

	if r.Status != nil {
		if status, ok := constants.ParseTaskStatus(*r.Status); ok {
			fields.Status = status
		} else {
			errs.add("status", statusMessage())
		}
	}

	if r.Priority != nil {
		if priority, ok := constants.ParseTaskPriority(*r.Priority); ok {
			fields.Priority = priority
		} else {
			errs.add("priority", priorityMessage())
		}
	}

	if r.DueDate != nil {
		if due, err := model.ParseDate(*r.DueDate); err == nil {
			fields.DueDate = &due
		} else {
			errs.add("due_date", dateMessage())
		}
	}

	if err := errs.err(); err != nil {
		return model.TaskFields{}, err
	}
	return fields, nil
}

// ValidatePatchRequest validates only the members present in the body.
func ValidatePatchRequest(r *dto.PatchTaskRequest) (model.TaskPatch, error) {
	var errs fieldErrors
	var patch model.TaskPatch

	if r.Title.Set {
		msg := checkTitle(r.Title.Value)
		switch {
		case r.Title.Null:
			errs.add("title", "may not be null")
		case msg != "":
			errs.add("title", msg)
		default:
			title := r.Title.Value
			patch.Title = &title
		}
	}

	if r.Description.Set {
		patch.SetDescription = true
		if !r.Description.Null {
			description := r.Description.Value
			patch.Description = &description
		}
	}

	if r.Status.Set {
		if status, err := parseStatus(optionalPtr(r.Status)); err != "" {
			errs.add("status", err)
		} else {
			patch.Status = &status
		}
	}

	if r.Priority.Set {
		if priority, err := parsePriority(optionalPtr(r.Priority)); err != "" {
			errs.add("priority", err)
		} else {
			patch.Priority = &priority
		}
	}

	if r.DueDate.Set {
		patch.SetDueDate = true
		if !r.DueDate.Null {
			due, err := model.ParseDate(r.DueDate.Value)
			if err != nil {
				errs.add("due_date", dateMessage())
			} else {
				patch.DueDate = &due
			}
		}
	}

	if err := errs.err(); err != nil {
		return model.TaskPatch{}, err
	}
	return patch, nil
}

func ValidateStatus(raw *string) (constants.TaskStatus, error) {
	status, msg := parseStatus(raw)
	if msg != "" {
		return "", exceptions.NewValidationError(exceptions.FieldError{Field: "status", Message: msg})
	}
	return status, nil
}

func ValidatePriority(raw *string) (constants.TaskPriority, error) {
	priority, msg := parsePriority(raw)
	if msg != "" {
		return "", exceptions.NewValidationError(exceptions.FieldError{Field: "priority", Message: msg})
	}
	return priority, nil
}

func parseStatus(raw *string) (constants.TaskStatus, string) {
	if raw == nil {
		return "", "field required"
	}
	status, ok := constants.ParseTaskStatus(*raw)
	if !ok {
		return "", statusMessage()
	}
	return status, ""
}

func parsePriority(raw *string) (constants.TaskPriority, string) {
	if raw == nil {
		return "", "field required"
	}
	priority, ok := constants.ParseTaskPriority(*raw)
	if !ok {
		return "", priorityMessage()
	}
	return priority, ""
}

func optionalPtr(o dto.Optional[string]) *string {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

func checkTitle(title string) string {
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		return "must not be empty"
	case n > MaxTitleLength:
		return fmt.Sprintf("must be at most %d characters", MaxTitleLength)
	}
	return ""
}

func statusMessage() string {
	return fmt.Sprintf("must be one of %v", constants.TaskStatuses)
}

func priorityMessage() string {
	return fmt.Sprintf("must be one of %v", constants.TaskPriorities)
}

func dateMessage() string {
	return "must be a valid date in YYYY-MM-DD format"
}
