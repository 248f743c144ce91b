package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/odysseus0/mdcopy/internal/clipboard"
	"github.com/odysseus0/mdcopy/internal/selection"
	"github.com/odysseus0/mdcopy/internal/store"
)

func TestErrorExitCode(t *testing.T) {
	cases := []struct {
		err  error
		code int
		tag  string
	}{
		{fmt.Errorf("wrap: %w", store.ErrInvalidInput), exitInvalidInput, "invalid-input"},
		{selection.ErrNoSelection, exitInvalidInput, "invalid-input"},
		{fmt.Errorf("%w: bad", selection.ErrInvalidSelector), exitInvalidInput, "invalid-input"},
		{errors.New(`invalid id "x"`), exitInvalidInput, "invalid-input"},
		{fmt.Errorf("clip 4: %w", store.ErrNotFound), exitNotFound, "not-found"},
		{selection.ErrNoMatch, exitNotFound, "not-found"},
		{selection.ErrTextNotFound, exitNotFound, "not-found"},
		{fmt.Errorf("copy: %w", clipboard.ErrUnavailable), exitInternal, "internal"},
	}
	for _, tc := range cases {
		if got := ErrorExitCode(tc.err); got != tc.code {
			t.Fatalf("ErrorExitCode(%v) = %d, want %d", tc.err, got, tc.code)
		}
		if got := FormatError(tc.err); !strings.HasPrefix(got, "Error ["+tc.tag+"]: ") {
			t.Fatalf("FormatError(%v) = %q", tc.err, got)
		}
	}
	if ErrorExitCode(nil) != 0 || FormatError(nil) != "" {
		t.Fatalf("nil error must map to 0 and empty text")
	}
}
