package trigger

import (
	"testing"

	"github.com/efalk/superlog/internal/pattern"
)

func newSet(pats ...string) *pattern.Set {
	s := pattern.NewSet(20, "trigger")
	for _, p := range pats {
		s.Add(p)
	}
	return s
}

func TestCheckNeverFiresWithoutPatterns(t *testing.T) {
	e := New(newSet(), 1, 3)
	for i := 0; i < 10; i++ {
		if e.Check("panic: disk on fire") {
			t.Fatal("expected an engine with no patterns to never fire")
		}
	}
}

func TestCheckArmsThenCountsDownContext(t *testing.T) {
	e := New(newSet("panic"), 1, 3)

	if e.Check("all nominal") {
		t.Fatal("non-matching line should not fire")
	}
	if e.Check("panic: disk on fire") {
		t.Fatal("the arming call itself must never fire")
	}

	// Context countdown: 3 more events before it fires.
	if e.Check("event 1") {
		t.Fatal("should not fire yet (context 3->2)")
	}
	if e.Check("event 2") {
		t.Fatal("should not fire yet (context 2->1)")
	}
	if !e.Check("event 3") {
		t.Fatal("expected fire once context reaches zero")
	}
}

func TestCheckKeepsFiringUntilRearmed(t *testing.T) {
	e := New(newSet("panic"), 1, 1)
	e.Check("panic") // arm
	if !e.Check("anything") {
		t.Fatal("expected fire once context exhausted")
	}
	if !e.Check("anything else") {
		t.Fatal("expected engine to keep firing after it has triggered")
	}
	if !e.Check("yet more") {
		t.Fatal("expected engine to still keep firing without a rearm")
	}
}

func TestSetParamsRearms(t *testing.T) {
	e := New(newSet("panic"), 1, 1)
	e.Check("panic")
	if !e.Check("x") {
		t.Fatal("expected fire")
	}

	e.SetParams(1, 1)
	if e.Check("irrelevant") {
		t.Fatal("rearmed engine should not fire on a non-matching line")
	}
	if e.Check("panic") {
		t.Fatal("the arming call should not fire")
	}
	if !e.Check("y") {
		t.Fatal("expected rearmed engine to fire again after its context elapses")
	}
}

func TestCheckRequiresMultipleMatchesWhenCountGreaterThanOne(t *testing.T) {
	e := New(newSet("panic"), 2, 1)
	if e.Check("panic") {
		t.Fatal("first match should only decrement count, not arm")
	}
	if e.Check("panic") {
		t.Fatal("the second, arming match must not fire immediately")
	}
	if !e.Check("anything") {
		t.Fatal("expected fire once context elapses after arming")
	}
}
