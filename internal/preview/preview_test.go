// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preview

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNoTTY(t *testing.T) {
	out, err := Render("# Root\nbody line\n## Child\n", "notty", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Root")
	assert.Contains(t, out, "body line")
	assert.Contains(t, out, "Child")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "- item\n", "notty", 0))
	assert.Contains(t, buf.String(), "item")
}
