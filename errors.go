// SPDX-License-Identifier: MIT

package harness

import "errors"

var (
	// ErrInvalidConnector indicates a connector without an id.
	ErrInvalidConnector = errors.New("harness: invalid connector")

	// ErrUnknownConnector indicates a reference to a connector that is not placed.
	ErrUnknownConnector = errors.New("harness: unknown connector")

	// ErrDuplicateConnector indicates a connector id that is already placed.
	ErrDuplicateConnector = errors.New("harness: duplicate connector")

	// ErrUnknownWire indicates a reference to a wire the document does not hold.
	ErrUnknownWire = errors.New("harness: unknown wire")

	// ErrUnknownPin indicates a wire end on a pin its connector does not list.
	ErrUnknownPin = errors.New("harness: unknown pin")
)
