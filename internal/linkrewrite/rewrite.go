package linkrewrite

import "strings"

// Rule maps an unpinned source-link prefix to its pinned-commit
// equivalent. The documentation site links against branch HEAD; rewriting
// pins every link to the commit the export was generated from.
type Rule struct {
	From string
	To   string
}

// Default is the single mapping the site ships with.
var Default = Rule{
	From: "https://github.com/leanprover-community/mathlib/blob/master/",
	To:   "https://github.com/leanprover-community/mathlib/blob/63e574e7a90c80bf95fe6bb573f07a0ea252b181/",
}

// Apply rewrites url when it starts with the rule's unpinned prefix and
// returns it unchanged otherwise.
func (r Rule) Apply(url string) string {
	if strings.HasPrefix(url, r.From) {
		return r.To + url[len(r.From):]
	}
	return url
}

// Rewrite applies the default rule.
func Rewrite(url string) string {
	return Default.Apply(url)
}
