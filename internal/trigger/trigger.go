// Package trigger implements superlog's dump-on-pattern state machine,
// grounded on the original's TriggerParams/TriggerAdd/TriggerTest/
// TriggerCheck quartet. The check order is preserved exactly, including the
// post-fire behavior where Check keeps returning true on every subsequent
// call until the engine is explicitly rearmed.
package trigger

import (
	"github.com/efalk/superlog/internal/io/logger"
	"github.com/efalk/superlog/internal/pattern"
)

// Engine tracks how many more trigger-pattern matches are required before
// arming, and how many context events remain before a dump fires.
type Engine struct {
	patterns *pattern.Set

	count   int // matches still required to arm
	context int // context events remaining once armed
}

// New returns an Engine backed by the given pattern set. count and context
// are the initial trigger parameters; see SetParams.
func New(patterns *pattern.Set, count, context int) *Engine {
	e := &Engine{patterns: patterns}
	e.SetParams(count, context)
	return e
}

// SetParams (re)arms the engine: count matches are required before the
// context countdown begins, after which context further events cause
// Check to return true. Calling SetParams again re-arms a fired engine.
func (e *Engine) SetParams(count, context int) {
	e.count = count
	e.context = context
}

// Check inspects line against the trigger pattern set, advancing the
// internal state machine, and reports whether it is time to dump. The
// checks run in this exact order:
//
//  1. No trigger patterns registered at all: never fires.
//  2. Context already exhausted (<=0): always fires, every call, until
//     rearmed via SetParams.
//  3. Still counting down context after arming (count<=0): decrement
//     context and fire only once it reaches zero.
//  4. Otherwise: test the line against the patterns; a match decrements
//     the required match count. Never fires on the call that arms it.
func (e *Engine) Check(line string) bool {
	if e.patterns.Len() <= 0 {
		return false
	}
	if e.context <= 0 {
		return true
	}
	if e.count <= 0 {
		e.context--
		return e.context <= 0
	}
	if match, ok := e.patterns.MatchPattern(line); ok {
		logger.Warn("log triggered, pattern", match)
		e.count--
	}
	return false
}
