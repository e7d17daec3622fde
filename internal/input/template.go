package input

import (
	"fmt"
	"strconv"
	"strings"

	"gqlbatch/internal/domain"
)

// Placeholder is the token substituted by each identifier in template mode.
const Placeholder = "%i"

// ValidateTemplate checks that the template contains at least one
// placeholder. A template without one would send the identical document
// once per identifier, which is never what the operator meant.
func ValidateTemplate(tmpl string) error {
	if !strings.Contains(tmpl, Placeholder) {
		return fmt.Errorf("template does not contain the %s placeholder", Placeholder)
	}
	return nil
}

// RenderAll produces one Operation per identifier, substituting every
// placeholder occurrence. The identifier becomes the operation's label.
func RenderAll(tmpl string, ids []int) []domain.Operation {
	ops := make([]domain.Operation, 0, len(ids))
	for _, id := range ids {
		n := strconv.Itoa(id)
		ops = append(ops, domain.Operation{
			Text:  strings.ReplaceAll(tmpl, Placeholder, n),
			Label: n,
		})
	}
	return ops
}
