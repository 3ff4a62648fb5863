package export

import "strings"

// CSV serializes rows through the schema: one header line, one line per row
// in input order, fields comma-joined, lines newline-joined with no trailing
// newline. Empty rows yield a header-only document; callers decide whether a
// header-only file is worth producing at all.
//
// Field values are emitted verbatim. A value containing a comma or newline
// corrupts the document; the data domain (names, teams, statuses) does not
// produce them in practice, but nothing here guarantees that.
func CSV[T any](rows []T, schema Schema[T]) string {
	var b strings.Builder
	b.WriteString(strings.Join(schema.Headers(), ","))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(strings.Join(schema.Values(row), ","))
	}
	return b.String()
}
