package errors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestNilError(t *testing.T) {
	if NewError(nil, IssueFailureExitCode) != nil {
		t.Fatal("wrapping a nil error should give nil")
	}
	var e *ExitCodeError
	if e.GetExitCode() != 0 {
		t.Fatalf("nil ExitCodeError should report 0, got %d", e.GetExitCode())
	}
	if ExitCodeOf(nil) != 0 {
		t.Fatal("ExitCodeOf(nil) should be 0")
	}
}

func TestExitCodeOfWrapped(t *testing.T) {
	base := NewError(fmt.Errorf("disk full"), CacheWriteFailureExitCode)
	wrapped := errors.Wrap(base, "saving token")
	if code := ExitCodeOf(wrapped); code != CacheWriteFailureExitCode {
		t.Fatalf("expected %d, got %d", CacheWriteFailureExitCode, code)
	}
	if errors.Cause(wrapped).Error() != "disk full" {
		t.Fatalf("Cause should reach the original error, got %v", errors.Cause(wrapped))
	}
}

func TestExitCodeOfPlain(t *testing.T) {
	if code := ExitCodeOf(fmt.Errorf("boom")); code != GenericFailureExitCode {
		t.Fatalf("expected generic failure, got %d", code)
	}
}
