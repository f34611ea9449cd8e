package linkrewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for link rewriting:
// - URLs under the unpinned prefix move to the pinned prefix
// - Everything else passes through unchanged
// - Rewriting is a pure prefix substitution, path suffix preserved

func TestRewrite_PinsMatchingURL(t *testing.T) {
	t.Parallel()

	got := Rewrite(Default.From + "src/data/nat/basic.lean")
	assert.Equal(t, Default.To+"src/data/nat/basic.lean", got)
}

func TestRewrite_LeavesOtherURLsAlone(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://example.com/docs",
		"https://github.com/leanprover-community/mathlib/blob/other-branch/src/foo.lean",
		"",
	}
	for _, url := range urls {
		assert.Equal(t, url, Rewrite(url))
	}
}

func TestRule_Apply(t *testing.T) {
	t.Parallel()

	rule := Rule{From: "https://old/", To: "https://new/"}
	assert.Equal(t, "https://new/a/b.lean", rule.Apply("https://old/a/b.lean"))
	assert.Equal(t, "https://other/a", rule.Apply("https://other/a"))
}
