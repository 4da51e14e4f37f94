// SPDX-License-Identifier: MIT

// Package wire defines the electrical Wire entity, its pin references,
// DIN 72551 colour codes and the helpers that compute a wire's node path
// and physical length from a core.Store.
//
// A Wire with an empty segment list is an unrouted, point-to-point wire as
// drawn or imported by the user. Routing fills Segments with an ordered,
// contiguous list whose first segment touches the From connector node and
// whose last touches the To connector node; PathNodes checks exactly that.
//
// Set keeps the wires of one document in insertion order.
package wire
