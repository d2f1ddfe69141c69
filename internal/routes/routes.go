// Package routes holds the logical route table shared by the API and the
// pending-account guard. Paths here are the front-end navigation paths, not
// the versioned API paths; middleware strips the API prefix before matching.
package routes

import "strings"

const (
	Dashboard     = "/dashboard"
	Profile       = "/profile"
	Companies     = "/companies"
	CompanyCreate = "/companies/create"
	Collaborators = "/collaborators"
	Dimonas       = "/dimonas"
	Documents     = "/documents"
	Notifications = "/notifications"
	Drafts        = "/drafts"
	Admin         = "/admin"
)

// PatternKind tags how a pattern matches a candidate path.
type PatternKind int

const (
	// Static matches the exact path only.
	Static PatternKind = iota
	// Prefix matches the path itself and any path nested under it, on
	// segment boundaries: "/companies" matches "/companies/c1" but never
	// "/companies2".
	Prefix
	// Param matches a single ":"-named segment whose value must equal the
	// argument supplied at match time.
	Param
)

type Pattern struct {
	Kind PatternKind
	Path string
}

// Matches reports whether path satisfies the pattern. For Param patterns,
// param is compared against the value captured for the ":" segment.
func (p Pattern) Matches(path, param string) bool {
	path = normalize(path)
	switch p.Kind {
	case Static:
		return path == p.Path
	case Prefix:
		if path == p.Path {
			return true
		}
		return strings.HasPrefix(path, p.Path+"/")
	case Param:
		want := strings.Split(p.Path, "/")
		got := strings.Split(path, "/")
		if len(want) != len(got) {
			return false
		}
		for i := range want {
			if strings.HasPrefix(want[i], ":") {
				if param == "" || got[i] != param {
					return false
				}
				continue
			}
			if want[i] != got[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

// Normalize exposes path normalization for callers that classify raw request
// paths before matching.
func Normalize(path string) string {
	return normalize(path)
}
