package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gqlbatch/internal/domain"
)

// maxLineBytes bounds a single operation line; mutations with large
// inline payloads still fit comfortably.
const maxLineBytes = 1 << 20

// ReadOperations reads one complete operation per non-empty line. Blank
// lines are skipped but still advance the line counter, so labels match
// the line numbers an operator sees in their editor. startLine is the
// 1-based number of the first line of r; the return value is the number
// of the line after the last one read, letting several files share one
// continuous label sequence.
func ReadOperations(r io.Reader, startLine int) ([]domain.Operation, int, error) {
	var ops []domain.Operation
	line := startLine

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text != "" {
			ops = append(ops, domain.Operation{Text: text, Label: strconv.Itoa(line)})
		}
		line++
	}
	if err := sc.Err(); err != nil {
		return nil, line, fmt.Errorf("reading operations: %w", err)
	}
	return ops, line, nil
}

// ReadOperationFiles reads the given files in order as one logical
// stream of operations with a continuous line numbering.
func ReadOperationFiles(paths []string) ([]domain.Operation, error) {
	var ops []domain.Operation
	line := 1
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening operation file: %w", err)
		}
		fileOps, next, err := ReadOperations(f, line)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		ops = append(ops, fileOps...)
		line = next
	}
	return ops, nil
}

// ReadTemplate consumes a pasted template from r until a line containing
// only "." or EOF. Used when no template file was given.
func ReadTemplate(r io.Reader) (string, error) {
	var b strings.Builder
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "." {
			break
		}
		b.WriteString(sc.Text())
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}
	return b.String(), nil
}
