// Package gqldoc derives short operator-facing descriptions of GraphQL
// documents for log lines. It parses syntax only; documents that fail to
// parse are still dispatched and described by a truncated excerpt.
package gqldoc

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const maxExcerpt = 60

// Summarize returns a stable identifying fragment for a document, such
// as "mutation deleteUser" or "query users". Anonymous operations fall
// back to their first root field; unparseable documents fall back to a
// whitespace-collapsed excerpt of the source text.
func Summarize(doc string) string {
	q, err := parser.ParseQuery(&ast.Source{Input: doc})
	if err != nil || len(q.Operations) == 0 {
		return excerpt(doc)
	}

	op := q.Operations[0]
	if op.Name != "" {
		return string(op.Operation) + " " + op.Name
	}
	for _, sel := range op.SelectionSet {
		if f, ok := sel.(*ast.Field); ok {
			return string(op.Operation) + " " + f.Name
		}
	}
	return string(op.Operation)
}

func excerpt(doc string) string {
	s := strings.Join(strings.Fields(doc), " ")
	if len(s) > maxExcerpt {
		s = s[:maxExcerpt] + "..."
	}
	return s
}
