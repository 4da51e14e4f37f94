// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/harness/builder"
)

// run executes the command tree with a config file that does not exist,
// so the built-in defaults apply.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", filepath.Join(dir, "harness.yml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestDemoCheckConvert(t *testing.T) {
	dir := t.TempDir()
	demo := filepath.Join(dir, "demo.yml")

	out, err := run(t, dir, "demo", "-o", demo)
	require.NoError(t, err)
	assert.Contains(t, out, "routed 4 wire(s)")

	out, err = run(t, dir, "check", "--nets", demo)
	require.NoError(t, err)
	assert.Contains(t, out, "connectors: 3")
	assert.Contains(t, out, "wires:      4 (2 routed by a router, 0 unrouted)")
	assert.Contains(t, out, "nets:       3")
	assert.Contains(t, out, "NET_1: C1.1 C2.1")

	for _, name := range []string{"demo.db", "demo.json"} {
		target := filepath.Join(dir, name)
		_, err = run(t, dir, "convert", demo, target)
		require.NoError(t, err, name)
		got, err := run(t, dir, "check", target)
		require.NoError(t, err, name)
		assert.Contains(t, got, "connectors: 3", name)
		assert.Contains(t, got, "segments:   3", name)
	}
}

func TestRoute(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "hub.yml")
	doc, err := builder.BuildDocument(nil, nil, builder.HubScenario())
	require.NoError(t, err)
	require.NoError(t, saveSnapshot(context.Background(), in, doc.Snapshot()))

	routed := filepath.Join(dir, "routed.json")
	out, err := run(t, dir, "route", "auto", in, "-o", routed, "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "routed 4 wire(s), 1 node(s) and 3 segment(s) created")
	assert.Contains(t, out, `harness_routing_wires_routed_total{router="autoroute"} 4`)
	assert.Contains(t, out, `harness_routing_runs_total{router="autoroute",status="success"} 1`)

	// the input is untouched, the output routed
	out, err = run(t, dir, "check", in)
	require.NoError(t, err)
	assert.Contains(t, out, "segments:   0")
	out, err = run(t, dir, "check", routed)
	require.NoError(t, err)
	assert.Contains(t, out, "segments:   3")

	_, err = run(t, dir, "route", "sideways", in)
	assert.ErrorContains(t, err, "unknown router")
	_, err = run(t, dir, "route", "auto", filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestRouteBundle_Overwrites(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "chain.db")
	_, err := run(t, dir, "demo", "--bundles", "3", "-o", in)
	require.NoError(t, err)

	out, err := run(t, dir, "route", "bundle", in)
	require.NoError(t, err)
	assert.Contains(t, out, "routed 2 wire(s)")
	out, err = run(t, dir, "check", in)
	require.NoError(t, err)
	assert.Contains(t, out, "bundles:    2")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "harness.yml")

	out, err := run(t, dir, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hub_threshold: 2")

	_, err = run(t, dir, "config", "init")
	assert.ErrorContains(t, err, "already exists")
	_, err = run(t, dir, "config", "init", "--force")
	assert.NoError(t, err)

	out, err = run(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "scheme: sequential")
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "harness dev (project format 1)\n", out)
}
