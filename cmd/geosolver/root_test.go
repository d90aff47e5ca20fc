// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashish33/geosolver2/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestCatalog_Embedded(t *testing.T) {
	out, err := run(t, "catalog", "--arity", "leaf")
	require.NoError(t, err)
	assert.Contains(t, out, "What")
	assert.Contains(t, out, "start: StartTruth")
	assert.NotContains(t, out, "RadiusOf")
}

func TestCatalog_FromConfig(t *testing.T) {
	out, err := run(t, "--config", "testdata/geosolver.yaml", "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Equal(number, number)")

	_, err = run(t, "catalog", "--arity", "ternary")
	assert.Error(t, err)
}

func TestTrainThenDecode(t *testing.T) {
	trained := filepath.Join(t.TempDir(), "trained.yaml")
	out, err := run(t, "--config", "testdata/geosolver.yaml", "train", "--out", trained, "testdata/corpus.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "unary: 3 rules")
	assert.Contains(t, out, "binary: 1 rules")

	cfg, err := config.Load(trained)
	require.NoError(t, err)
	assert.Len(t, cfg.Model.UnaryWeights, 3)
	assert.Len(t, cfg.Model.BinaryWeights, 9)

	out, err = run(t, "--config", trained, "decode", "testdata/corpus.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "radius: circle O has a radius of 5")
	assert.Contains(t, out, "StartTruth(Equal(RadiusOf(Circle(O)),5))")
	assert.Contains(t, out, "unlabelled: circle P has radius 3")
	assert.Contains(t, out, "StartTruth(Equal(RadiusOf(Circle(P)),3))")
}

func TestDecode_Errors(t *testing.T) {
	_, err := run(t, "decode")
	assert.Error(t, err, "corpus argument is required")

	_, err = run(t, "--config", "testdata/geosolver.yaml", "decode", "testdata/missing.yaml")
	assert.Error(t, err)

	_, err = run(t, "--config", "testdata/missing.yaml", "catalog")
	assert.Error(t, err)

	_, err = run(t, "--log-level", "loud", "catalog")
	assert.Error(t, err)
}
