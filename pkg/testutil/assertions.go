package testutil

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// AssertEqual fails the test when want and got differ under deep equality.
func AssertEqual(t *testing.T, want, got interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Errorf("%snot equal:\n  want: %+v\n  got:  %+v", label(msgAndArgs...), want, got)
	}
}

// AssertTrue fails the test when the condition is false.
func AssertTrue(t *testing.T, cond bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !cond {
		t.Errorf("%scondition is false", label(msgAndArgs...))
	}
}

// AssertContains fails the test when substr is not part of s.
func AssertContains(t *testing.T, s, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("%s%q not found in %q", label(msgAndArgs...), substr, s)
	}
}

// AssertNotContains fails the test when substr is part of s.
func AssertNotContains(t *testing.T, s, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if strings.Contains(s, substr) {
		t.Errorf("%s%q unexpectedly found in %q", label(msgAndArgs...), substr, s)
	}
}

// AssertError fails the test when err is nil.
func AssertError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		t.Errorf("%swant an error, got nil", label(msgAndArgs...))
	}
}

// AssertNoError fails the test when err is non-nil.
func AssertNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		t.Errorf("%sunexpected error: %v", label(msgAndArgs...), err)
	}
}

// label renders the optional message arguments as a failure prefix. A lone
// value is printed as is, a format string with arguments goes through
// Sprintf, anything else is joined with spaces.
func label(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if len(msgAndArgs) == 1 {
		return fmt.Sprint(msgAndArgs[0]) + ": "
	}
	if format, ok := msgAndArgs[0].(string); ok && strings.Contains(format, "%") {
		return fmt.Sprintf(format, msgAndArgs[1:]...) + ": "
	}
	parts := make([]string, len(msgAndArgs))
	for i, a := range msgAndArgs {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, " ") + ": "
}
