package installer

import (
	"errors"
	"fmt"
)

var (
	// ErrNoVersion is returned when a version file parses but carries no VERSION.
	ErrNoVersion = errors.New("version file has no VERSION field")
	// ErrIncomplete is returned when extraction or copying did not produce g2.
	ErrIncomplete = errors.New("package did not provide g2")
)

// Step names the installer step that failed.
type Step string

const (
	StepArchive  Step = "archive"
	StepExtract  Step = "extract"
	StepCopy     Step = "copy"
	StepChown    Step = "chown"
	StepSentinel Step = "sentinel"
	StepDelete   Step = "delete"
)

// StepError records a failed step. Install, Replace and Delete keep going
// after a StepError and return every one of them combined.
type StepError struct {
	Step Step
	Path string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Step, e.Path, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
