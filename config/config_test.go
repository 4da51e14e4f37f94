// SPDX-License-Identifier: MIT

package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/harness"
	"github.com/katalvlaran/harness/config"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/wire"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.Routing.HubThreshold)
	assert.Equal(t, 80.0, cfg.Routing.BranchOffsetX)
	assert.Equal(t, -20.0, cfg.Routing.BranchOffsetY)
	assert.Equal(t, 10.0, cfg.Routing.SnapRadius)
	assert.Equal(t, "SW", cfg.Routing.DefaultColor)
	assert.Equal(t, "sequential", cfg.IDs.Scheme)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.yml")
	cfg := config.Default()
	cfg.Routing.HubThreshold = 4
	cfg.Routing.DefaultColor = "RT/SW"
	cfg.IDs.Scheme = "uuid"
	cfg.Log.Format = "json"
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	loaded, err := config.Load(filepath.Join(t.TempDir(), "none.yml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HARNESS_ROUTING_HUB_THRESHOLD", "7")
	t.Setenv("HARNESS_LOG_LEVEL", "debug")
	loaded, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Routing.HubThreshold)
	assert.Equal(t, "debug", loaded.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("routing:\n  default_color: XX\n"), 0o644))
	_, err := config.Load(path)
	assert.Error(t, err)

	cfg := config.Default()
	cfg.IDs.Scheme = "random"
	assert.Error(t, cfg.Validate())
	cfg = config.Default()
	cfg.Routing.DefaultCrossSection = 0
	assert.Error(t, cfg.Validate())
}

func TestIDSource(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "SEG_1", cfg.IDSource().Next(core.PrefixSegment))
	cfg.IDs.Scheme = "uuid"
	assert.Regexp(t, `^SEG_[0-9a-f]{8}$`, cfg.IDSource().Next(core.PrefixSegment))
}

func TestDocumentOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Routing.DefaultColor = "GE"
	cfg.Routing.DefaultCrossSection = 2.5
	doc := harness.New(cfg.DocumentOptions()...)
	require.NoError(t, doc.AddConnector(harness.Connector{ID: "A"}))
	require.NoError(t, doc.AddConnector(harness.Connector{ID: "B"}))
	id, err := doc.AddWire(wire.Spec{From: wire.PinRef{Connector: "A"}, To: wire.PinRef{Connector: "B"}})
	require.NoError(t, err)
	w, _ := doc.Wire(id)
	assert.Equal(t, "GE", w.Color.Code())
	assert.Equal(t, 2.5, w.CrossSection)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"
	log := cfg.Logger(&buf)
	log.Info("dropped")
	log.Warn("kept", "wire", "W1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "W1", rec["wire"])
}
