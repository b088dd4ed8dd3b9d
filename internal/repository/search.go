package repository

import "strings"

// likeEscaper neutralizes LIKE wildcards. Queries using it declare ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns a lower-cased LIKE pattern matching term anywhere,
// with the term's own % and _ matched literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
