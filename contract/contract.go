// Package contract reports precondition violations of the physics core.
//
// A violation is a caller bug, never a runtime condition to recover from: it is logged
// through zap's global logger and raised as a panic whose value wraps ErrViolation.
// Building with the noassert tag compiles every check out.
package contract

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrViolation is wrapped by every panic value raised by this package.
var ErrViolation = errors.New("contract violation")

// Require fails with msg when cond is false.
func Require(cond bool, msg string, fields ...zap.Field) {
	if !Enabled || cond {
		return
	}
	Fail(msg, fields...)
}

// Fail logs msg at error level and panics with an error wrapping ErrViolation.
func Fail(msg string, fields ...zap.Field) {
	zap.L().Named("contract").Error(msg, fields...)
	panic(errors.Wrap(ErrViolation, msg))
}
