package sagemaker

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument            = errors.New("invalid argument")
	ErrAmbiguousConfiguration     = errors.New("ambiguous configuration")
	ErrUnsupportedOperation       = errors.New("unsupported operation")
	ErrUnrecognizedMonitoringType = errors.New("unrecognized monitoring type")
	ErrAggregateFailure           = errors.New("aggregate failure")
)

// ModelDeletionError reports every model that could not be deleted. Err holds
// the individual causes.
type ModelDeletionError struct {
	FailedModels []string
	Err          error
}

func (e *ModelDeletionError) Error() string {
	return fmt.Sprintf("one or more models cannot be deleted, please retry; failed models: %s",
		strings.Join(e.FailedModels, ", "))
}

func (e *ModelDeletionError) Unwrap() error {
	return e.Err
}

func (e *ModelDeletionError) Is(target error) bool {
	return target == ErrAggregateFailure
}
