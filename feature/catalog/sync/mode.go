package sync

import (
	"errors"
	"fmt"
)

// Mode names one sync entry point.
type Mode string

const (
	ModeSets            Mode = "sets"
	ModeSingleSet       Mode = "single-set"
	ModePrices          Mode = "prices"
	ModeCardMetadata    Mode = "card-metadata"
	ModeCardMetadataAll Mode = "card-metadata-all"
	ModeFull            Mode = "full"
)

// Modes lists every mode in the order they are documented.
var Modes = []Mode{ModeFull, ModeSets, ModeSingleSet, ModePrices, ModeCardMetadata, ModeCardMetadataAll}

var (
	ErrUnknownMode = errors.New("unknown sync mode")
	ErrSetRequired = errors.New("setId is required for single-set mode")
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Request is one sync invocation.
type Request struct {
	Mode  Mode
	SetID string
	// Limit caps the number of sets processed by full mode; 0 means all.
	Limit int
}

// Validate checks the request before any work starts.
func (r Request) Validate() error {
	if _, err := ParseMode(string(r.Mode)); err != nil {
		return err
	}
	if r.Mode == ModeSingleSet && r.SetID == "" {
		return ErrSetRequired
	}
	if r.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", r.Limit)
	}
	return nil
}

// IsInvalid reports whether err was caused by a bad request rather than a failed run.
func IsInvalid(err error) bool {
	var re *requestError
	return errors.As(err, &re)
}

type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// Result summarises one invocation.
type Result struct {
	Success       bool   `json:"success"`
	Mode          Mode   `json:"mode"`
	SetID         string `json:"setId,omitempty"`
	CardsUpdated  int    `json:"cardsUpdated"`
	Count         int    `json:"count"`
	SetsProcessed int    `json:"setsProcessed"`
	SetsCompleted int    `json:"setsCompleted"`
	SetsFailed    int    `json:"setsFailed"`
	Message       string `json:"message"`
}
