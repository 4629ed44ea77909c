package validators

import (
	"strconv"

	"task-api.com/task-api/internal/constants"
	"task-api.com/task-api/internal/exceptions"
	"task-api.com/task-api/internal/query"
)

type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// ValidatePage applies defaults and clamps limit to MaxLimit.
func ValidatePage(skip, limit *int, paging Paging) (int, int, error) {
	var errs fieldErrors
	s, l := 0, paging.DefaultLimit

	if skip != nil {
		if *skip < 0 {
			errs.add("skip", "must be greater than or equal to 0")
		} else {
			s = *skip
		}
	}

	if limit != nil {
		switch {
		case *limit < 1:
			errs.add("limit", "must be greater than or equal to 1")
		case *limit > paging.MaxLimit:
			l = paging.MaxLimit
		default:
			l = *limit
		}
	}

	if err := errs.err(); err != nil {
		return 0, 0, err
	}
	return s, l, nil
}

func ValidateListFilter(status, priority *string) (query.TaskFilter, error) {
	var errs fieldErrors
	var filter query.TaskFilter

	if status != nil && *status != "" {
		if st, ok := constants.ParseTaskStatus(*status); ok {
			filter.Status = &st
		} else {
			errs.add("status", statusMessage())
		}
	}

	if priority != nil && *priority != "" {
		if p, ok := constants.ParseTaskPriority(*priority); ok {
			filter.Priority = &p
		} else {
			errs.add("priority", priorityMessage())
		}
	}

	if err := errs.err(); err != nil {
		return query.TaskFilter{}, err
	}
	return filter, nil
}

func ValidateSearchQuery(q string) error {
	if q == "" {
		return exceptions.ErrSearchQueryRequired
	}
	return nil
}

// ParseTaskID parses a path id. Ids are positive integers.
func ParseTaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, exceptions.NewValidationError(exceptions.FieldError{
			Field:   "task_id",
			Message: "must be a positive integer",
		})
	}
	return uint(id), nil
}

// ParseIntParam parses an optional integer query parameter; "" means absent.
func ParseIntParam(name, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, exceptions.NewValidationError(exceptions.FieldError{
			Field:   name,
			Message: "must be an integer",
		})
	}
	return &v, nil
}
