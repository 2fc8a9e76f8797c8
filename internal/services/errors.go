package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrFetch marks an upstream fetch that failed outright: the calendar
	// page or catalog was unreachable or answered with a non-success status.
	ErrFetch = errors.New("fetch failure")
	// ErrNoData marks a parse that produced zero movies.
	ErrNoData = errors.New("no data found")
	// ErrEmptySelection marks a calendar export requested with no showtimes.
	ErrEmptySelection = errors.New("empty selection")
	// ErrTransient marks every other internal failure.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// HTTPStatus maps a pipeline error to the status code the HTTP boundary
// should answer with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrFetch):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptySelection):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
