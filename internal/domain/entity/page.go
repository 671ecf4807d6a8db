package entity

import "strings"

// RoleQuery locates a control by its accessible role and name.
// Name is matched case-insensitively as a substring unless Exact is set.
type RoleQuery struct {
	Role  string
	Name  string
	Exact bool
}

func (q RoleQuery) String() string {
	if q.Exact {
		return q.Role + `[name="` + q.Name + `"]`
	}
	return q.Role + `[name~="` + q.Name + `"]`
}

// MatchesName reports whether an accessible name satisfies the query.
func (q RoleQuery) MatchesName(name string) bool {
	got := normalizeSpace(name)
	want := normalizeSpace(q.Name)
	if q.Exact {
		return got == want
	}
	return strings.Contains(strings.ToLower(got), strings.ToLower(want))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type MatchedElement struct {
	Role string
	Name string
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
