package service

import (
	"context"
	"errors"
	"fmt"

	"store-ledger/internal/repository"
	"store-ledger/pkg/validator"
)

var (
	ErrPersistence   = errors.New("ledger storage failed")
	ErrForbidden     = errors.New("operation not allowed for this session")
	ErrEntryNotFound = errors.New("entry not found")
)

// ValidationError rejects a mutation before it reaches storage
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, tag, message string) *ValidationError {
	return &ValidationError{Field: field, Tag: tag, Message: message}
}

// validateRequest runs the struct tags of req and reports the first failure
func validateRequest(req interface{}) error {
	errs := validator.ValidateStruct(req)
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return invalid(first.FailedField, first.Tag, describeTag(first.Tag, first.Value))
}

func describeTag(tag, param string) string {
	switch tag {
	case "required", "notblank":
		return "is required"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be at least " + param
	case "lte":
		return "must be at most " + param
	case "max":
		return "must be at most " + param + " characters"
	case "oneof":
		return "must be one of: " + param
	default:
		return "failed on '" + tag + "'"
	}
}

func forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

// storageError classifies a repository error for callers
func storageError(err error) error {
	var verr *ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &verr):
		return err
	case errors.Is(err, repository.ErrRecordNotFound):
		return ErrEntryNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}
