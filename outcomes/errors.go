/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package outcomes

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedRecord = errors.New("malformed pairing record")
	ErrUnknownPlayer   = errors.New("player has no score entry")
	ErrNoOutcomes      = errors.New("enumeration produced no outcomes")
	ErrNoFreePairing   = errors.New("player has no undecided pairing")
	ErrInvalidOptions  = errors.New("invalid options")
)

// RecordError describes a problem with one field of the flat pairing input.
// Index is the zero based line number of the offending field.
type RecordError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d (%s) %q: %v", e.Index+1, e.Field, e.Value,
		e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
