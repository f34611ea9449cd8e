package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflib/declgen/internal/linkrewrite"
)

// Test Plan for the rewrite-link command:
// - A matching URL prints its pinned form
// - A non-matching URL prints unchanged
// - Missing argument is a usage error

func runRewriteLink(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"rewrite-link"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRewriteLink_PinsURL(t *testing.T) {
	url := linkrewrite.Default.From + "src/data/nat/basic.lean"

	out, err := runRewriteLink(t, url)
	require.NoError(t, err)
	assert.Contains(t, out, linkrewrite.Default.To+"src/data/nat/basic.lean")
}

func TestRewriteLink_PassThrough(t *testing.T) {
	out, err := runRewriteLink(t, "https://example.com/else")
	require.NoError(t, err)
	assert.Contains(t, out, "https://example.com/else")
}

func TestRewriteLink_RequiresArgument(t *testing.T) {
	_, err := runRewriteLink(t)
	assert.Error(t, err)
}
