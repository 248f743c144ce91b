package clipboard

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func recorder(err error, calls *[]string) Mechanism {
	return func(text string) error {
		*calls = append(*calls, text)
		return err
	}
}

func TestCopy_PrimarySucceeds(t *testing.T) {
	var primary, fallback []string
	w := NewWithMechanisms(recorder(nil, &primary), recorder(nil, &fallback))
	if err := w.Copy("md"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if len(primary) != 1 || len(fallback) != 0 {
		t.Fatalf("primary=%v fallback=%v", primary, fallback)
	}
}

func TestCopy_FallsBackOnPrimaryFailure(t *testing.T) {
	var primary, fallback []string
	w := NewWithMechanisms(recorder(errors.New("no xclip"), &primary), recorder(nil, &fallback))
	if err := w.Copy("md"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if len(fallback) != 1 || fallback[0] != "md" {
		t.Fatalf("fallback calls = %v", fallback)
	}
}

func TestCopy_BothFail(t *testing.T) {
	var calls []string
	w := NewWithMechanisms(recorder(errors.New("no xclip"), &calls), recorder(errors.New("no tty"), &calls))
	err := w.Copy("md")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if !strings.Contains(err.Error(), "no xclip") || !strings.Contains(err.Error(), "no tty") {
		t.Fatalf("err should name both causes: %v", err)
	}

	w = NewWithMechanisms(recorder(errors.New("no xclip"), &calls), nil)
	if err := w.Copy("md"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err without fallback = %v", err)
	}
}

func TestWriteOSC52(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOSC52(&buf, "hi"); err != nil {
		t.Fatalf("WriteOSC52: %v", err)
	}
	if got := buf.String(); got != "\x1b]52;c;aGk=\a" {
		t.Fatalf("sequence = %q", got)
	}
}

func TestOSC52_RefusesNonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := OSC52(f)("x"); err == nil {
		t.Fatalf("expected error writing OSC 52 to a regular file")
	}
	if err := OSC52(nil)("x"); err == nil {
		t.Fatalf("expected error for nil terminal")
	}
}
