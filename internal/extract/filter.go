package extract

import (
	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileFilter decides which source files' declarations are retained.
// An empty filter retains everything; otherwise a declaration survives only
// when its defining file matches one of the patterns, so declarations
// inherited through imports are not re-emitted.
type FileFilter struct {
	patterns []compiledPattern
}

// NewFileFilter compiles glob patterns into a filter.
func NewFileFilter(patterns []string) (*FileFilter, error) {
	ff := &FileFilter{}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		ff.patterns = append(ff.patterns, compiledPattern{pattern: pattern, glob: g})
	}

	return ff, nil
}

// Match reports whether declarations from filename are retained.
func (ff *FileFilter) Match(filename string) bool {
	if ff == nil || len(ff.patterns) == 0 {
		return true
	}
	for _, p := range ff.patterns {
		if p.glob.Match(filename) {
			return true
		}
	}
	return false
}
