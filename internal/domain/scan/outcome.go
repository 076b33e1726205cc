// Package scan implements the scan-to-sale-line reconciliation core: one
// resolution path and one decision tree shared by the camera channel, the
// keyboard-wedge channel, and manual entry.
package scan

import (
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/apperror"
)

// OutcomeKind classifies the result of processing one scanned code.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeDuplicate
	OutcomeAlreadySold
	OutcomeNotFound
	OutcomeEmptyCode
	OutcomeLookupFailed

	// OutcomeSuppressed marks a code dropped before resolution (hardware
	// double-fire) or a stale resolution discarded after the surface changed.
	// Never dispatched to feedback.
	OutcomeSuppressed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeAlreadySold:
		return "already_sold"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeEmptyCode:
		return "empty_code"
	case OutcomeLookupFailed:
		return "lookup_failed"
	case OutcomeSuppressed:
		return "suppressed"
	}
	return "unknown"
}

// Class is the feedback class an outcome maps to. Each class is bound to a
// distinct audio cue and toast styling.
type Class int

const (
	ClassSuccess Class = iota
	ClassRejected
	ClassNotFound
)

func (c Class) String() string {
	switch c {
	case ClassSuccess:
		return "success"
	case ClassRejected:
		return "rejected"
	default:
		return "not_found"
	}
}

// Class maps the outcome kind onto one of the three feedback classes.
func (k OutcomeKind) Class() Class {
	switch k {
	case OutcomeSuccess:
		return ClassSuccess
	case OutcomeDuplicate, OutcomeAlreadySold, OutcomeLookupFailed:
		return ClassRejected
	default:
		return ClassNotFound
	}
}

// Outcome describes what one code did to the draft, for toast/audio wiring.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Code    string      `json:"code"`
	Message string      `json:"message"`

	// Placement is set on success only.
	Placement Placement `json:"placement,omitempty"`

	// Available lists the resolved product's identifiers not yet sold.
	// Informational inventory cross-check.
	Available []string `json:"available,omitempty"`
}

// kindOfError maps a resolution/guard error onto an outcome kind.
func kindOfError(err error) OutcomeKind {
	switch apperror.CodeOf(err) {
	case apperror.CodeEmptyCode:
		return OutcomeEmptyCode
	case apperror.CodeAlreadySold:
		return OutcomeAlreadySold
	case apperror.CodeDuplicateInDraft:
		return OutcomeDuplicate
	case apperror.CodeCodeNotFound:
		return OutcomeNotFound
	default:
		return OutcomeLookupFailed
	}
}

// failureOutcome builds the outcome for a rejected code. The draft is left
// unchanged in every failure case.
func failureOutcome(code string, err error) Outcome {
	out := Outcome{Kind: kindOfError(err), Code: code}
	if appErr, ok := apperror.AsAppError(err); ok {
		out.Message = appErr.Message
	} else {
		out.Message = err.Error()
	}
	return out
}
