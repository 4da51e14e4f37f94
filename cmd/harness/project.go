// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/harness/persist"
	"github.com/katalvlaran/harness/persist/sqlitestore"
)

func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// loadSnapshot reads a project file, picking the codec by extension.
func loadSnapshot(ctx context.Context, path string) (persist.Snapshot, error) {
	if isSQLite(path) {
		if _, err := os.Stat(path); err != nil {
			return persist.Snapshot{}, err
		}
		st, err := sqlitestore.Open(path)
		if err != nil {
			return persist.Snapshot{}, err
		}
		defer st.Close()
		return st.Load(ctx)
	}
	f, err := os.Open(path)
	if err != nil {
		return persist.Snapshot{}, err
	}
	defer f.Close()
	snap, err := persist.Decode(f, persist.FormatOf(path))
	if err != nil {
		return persist.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// saveSnapshot writes snap to path, picking the codec by extension. File
// codecs write to a temporary sibling first so a failed encode leaves the
// old file intact.
func saveSnapshot(ctx context.Context, path string, snap persist.Snapshot) (err error) {
	if isSQLite(path) {
		st, err := sqlitestore.Open(path)
		if err != nil {
			return err
		}
		defer st.Close()
		return st.Save(ctx, snap)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".harness-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = persist.Encode(tmp, snap, persist.FormatOf(path)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
