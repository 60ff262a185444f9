// pkg/config/render_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test effective-config rendering round trip

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEffective(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	out, err := RenderEffective(cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "[repo]")
	assert.Contains(t, out, "name = 'joel-snips'")
	assert.Contains(t, out, "[delegate]")
	assert.Contains(t, out, "entry_point = 'ansible/bootstrap.sh'")
}
