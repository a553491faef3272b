package notebook

import (
	"regexp"
	"sort"
	"strings"
)

// Import statement forms recognized in code cells:
//
//	import a, b.c as d
//	from a.b import c
var (
	importRe     = regexp.MustCompile(`^\s*import\s+(.+)$`)
	fromImportRe = regexp.MustCompile(`^\s*from\s+([\w.]+)\s+import\b`)
)

// Imports collects the names of modules imported by the notebook's code
// cells, sorted and deduplicated. For dotted imports the full module path
// is reported as written.
func (n *Notebook) Imports() []string {
	seen := make(map[string]struct{})

	for _, cell := range n.CodeCells() {
		for _, line := range strings.Split(cell.Source, "\n") {
			if m := fromImportRe.FindStringSubmatch(line); m != nil {
				seen[m[1]] = struct{}{}
				continue
			}
			if m := importRe.FindStringSubmatch(line); m != nil {
				for _, clause := range strings.Split(m[1], ",") {
					module := strings.TrimSpace(clause)
					// Strip trailing comments and "as" aliases.
					if i := strings.IndexAny(module, "#;"); i >= 0 {
						module = strings.TrimSpace(module[:i])
					}
					if fields := strings.Fields(module); len(fields) > 0 {
						seen[fields[0]] = struct{}{}
					}
				}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for module := range seen {
		out = append(out, module)
	}
	sort.Strings(out)
	return out
}
