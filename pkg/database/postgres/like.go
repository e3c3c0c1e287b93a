package postgres

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes the LIKE wildcards in s so it matches literally. The
// default escape character in PostgreSQL is the backslash.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
