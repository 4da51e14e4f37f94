// SPDX-License-Identifier: MIT

package wire

import "errors"

var (
	// ErrInvalidColor indicates a colour code outside DIN 72551.
	ErrInvalidColor = errors.New("wire: invalid colour code")

	// ErrInvalidPin indicates a malformed pin reference.
	ErrInvalidPin = errors.New("wire: invalid pin reference")

	// ErrInvalidCrossSection indicates a non-positive cross-section.
	ErrInvalidCrossSection = errors.New("wire: cross-section must be positive")

	// ErrBrokenPath indicates segments that do not form a contiguous route
	// between the wire's two connector nodes.
	ErrBrokenPath = errors.New("wire: path is not contiguous")

	// ErrDuplicateWire indicates an insert under an id already in the set.
	ErrDuplicateWire = errors.New("wire: duplicate wire id")

	// ErrWireNotFound indicates a lookup of an unknown wire id.
	ErrWireNotFound = errors.New("wire: wire not found")
)
