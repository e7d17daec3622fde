package input

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpandIDs parses identifier tokens into the discrete integers they
// denote. A token is either a single integer ("4") or an inclusive range
// ("1-8") expanded ascending in place. Token order is preserved and
// duplicates are kept.
func ExpandIDs(tokens []string) ([]int, error) {
	var ids []int
	for _, tok := range tokens {
		expanded, err := expandToken(tok)
		if err != nil {
			return nil, err
		}
		ids = append(ids, expanded...)
	}
	return ids, nil
}

func expandToken(tok string) ([]int, error) {
	lo, hi, isRange := strings.Cut(tok, "-")
	if !isRange {
		id, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid identifier %q", tok)
		}
		return []int{id}, nil
	}

	lower, err := strconv.Atoi(lo)
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: bad lower bound", tok)
	}
	upper, err := strconv.Atoi(hi)
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: bad upper bound", tok)
	}
	if lower > upper {
		return nil, fmt.Errorf("invalid range %q: lower bound exceeds upper bound", tok)
	}

	ids := make([]int, 0, upper-lower+1)
	for id := lower; id <= upper; id++ {
		ids = append(ids, id)
	}
	return ids, nil
}
