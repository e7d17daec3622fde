package input

import (
	"errors"
	"fmt"
	"os"
)

// ErrNoArgs is returned when no identifiers or files were given.
var ErrNoArgs = errors.New("no identifiers or operation files given")

// Classify splits positional arguments into identifier tokens or
// operation-file paths. An argument naming an existing file selects file
// mode; anything else must parse as an identifier or range. Mixing the
// two kinds in one invocation is an error, as is naming a directory.
func Classify(args []string) (ids []int, files []string, err error) {
	if len(args) == 0 {
		return nil, nil, ErrNoArgs
	}

	var idTokens []string
	for _, arg := range args {
		if info, statErr := os.Stat(arg); statErr == nil {
			if info.IsDir() {
				return nil, nil, fmt.Errorf("%q is a directory, not an operation file", arg)
			}
			files = append(files, arg)
			continue
		}
		idTokens = append(idTokens, arg)
	}

	if len(files) > 0 && len(idTokens) > 0 {
		return nil, nil, fmt.Errorf("arguments mix identifiers and files: got file %q and identifier %q", files[0], idTokens[0])
	}

	if len(files) > 0 {
		return nil, files, nil
	}
	ids, err = ExpandIDs(idTokens)
	return ids, nil, err
}
