package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/odysseus0/mdcopy/internal/selection"
	"github.com/odysseus0/mdcopy/internal/store"
)

const (
	exitInvalidInput = 2
	exitNotFound     = 3
	exitInternal     = 1
)

type errorKind int

const (
	kindInternal errorKind = iota
	kindInvalidInput
	kindNotFound
)

func classify(err error) errorKind {
	switch {
	case errors.Is(err, store.ErrInvalidInput),
		errors.Is(err, selection.ErrNoSelection),
		errors.Is(err, selection.ErrInvalidSelector),
		errors.Is(err, errInvalidFlag):
		return kindInvalidInput
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, selection.ErrNoMatch),
		errors.Is(err, selection.ErrTextNotFound):
		return kindNotFound
	default:
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "invalid id") || strings.Contains(msg, "invalid output format") || strings.Contains(msg, "invalid engine") {
			return kindInvalidInput
		}
		return kindInternal
	}
}

func ErrorExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch classify(err) {
	case kindInvalidInput:
		return exitInvalidInput
	case kindNotFound:
		return exitNotFound
	default:
		return exitInternal
	}
}

func FormatError(err error) string {
	if err == nil {
		return ""
	}
	switch classify(err) {
	case kindInvalidInput:
		return fmt.Sprintf("Error [invalid-input]: %v", err)
	case kindNotFound:
		return fmt.Sprintf("Error [not-found]: %v", err)
	default:
		return fmt.Sprintf("Error [internal]: %v", err)
	}
}

func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err))
}
