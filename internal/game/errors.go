package game

import (
	"errors"
	"fmt"
)

// Legality is the result of a rule predicate. Rule rejections are expected,
// caller-recoverable outcomes and are never returned as errors; callers show
// the reason to a human or let an AI self-correct.
type Legality struct {
	Legal  bool
	Reason string
}

// Allowed returns a passing legality result.
func Allowed() Legality {
	return Legality{Legal: true}
}

// Denied returns a failing legality result with the given reason.
func Denied(reason string) Legality {
	return Legality{Legal: false, Reason: reason}
}

// RuleError reports a mutator invocation that a rule predicate rejected.
// Callers can recover by choosing a different action.
type RuleError struct {
	Op     string
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// IsRuleError reports whether err is a rule rejection.
func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}

// InvariantError reports a caller bug: a mutator was driven into a state the
// validator could never have offered (unknown ids, negative CC, zone
// mismatch). These terminate the operation and indicate a programming error,
// not a game-rule outcome.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in %s: %s", e.Op, e.Detail)
}

// IsInvariantError reports whether err is an invariant violation.
func IsInvariantError(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
