// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_DefaultDiscards(t *testing.T) {
	SetLogger(nil)
	require.NotNil(t, Logger())
	Logger().Info("dropped")
}

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTextLogger(&buf, false))
	t.Cleanup(func() { SetLogger(nil) })

	Logger().Debug("hidden")
	Logger().Warn("template is short", "paragraphs", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "template is short")
	assert.Contains(t, out, "paragraphs=3")

	buf.Reset()
	SetLogger(NewTextLogger(&buf, true))
	Logger().Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
