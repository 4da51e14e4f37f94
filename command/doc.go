// SPDX-License-Identifier: MIT

// Package command provides reversible commands and the undo stack that
// replays them.
//
// A Command knows how to Undo and Redo one edit. The Stack calls Redo when
// a command is pushed, mirroring the usual editor stack semantics; commands
// built after their effect was already applied set the first-redo-is-noop
// flag on their Base so that push does not apply the effect twice.
//
// Grouping:
//
//	Compound holds ordered children; Undo walks them in reverse, Redo
//	forward. BeginMacro/EndMacro collect every push in between into one
//	Compound, so a multi-step operation is a single undo step. AbortMacro
//	rolls back and discards what was collected.
//
// Merging:
//
//	When the most recent command implements Merger and accepts the newly
//	pushed one, the two collapse into one history entry (consecutive moves
//	of one connector keep the original start and the final position).
//
// Clean state:
//
//	SetClean records the current position (after a save); IsDirty compares
//	the cursor against it. Truncating past the clean position makes the
//	document permanently dirty until the next SetClean.
//
// Re-entrancy:
//
//	Pushes issued while a command is being replayed return ErrReentrantPush
//	and are ignored; nested Undo/Redo calls return false.
package command
