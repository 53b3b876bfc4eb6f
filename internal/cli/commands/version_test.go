package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "2025-03-01", "abc1234")

	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "schemascope 1.2.3")
	assert.Contains(t, out.String(), "abc1234")
}
