// cmd/gqlbatch/main_test.go
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectOperationsTemplateMode(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "touch.graphql")
	require.NoError(t, os.WriteFile(tmplPath, []byte("mutation { touch(id: %i) { id } }"), 0o644))

	f := &flags{input: tmplPath}
	ops, err := collectOperations(f, []string{"1-3", "10"})
	require.NoError(t, err)

	require.Len(t, ops, 4)
	assert.Equal(t, "mutation { touch(id: 10) { id } }", ops[3].Text)
	assert.Equal(t, "10", ops[3].Label)
}

func TestCollectOperationsTemplateMissingPlaceholder(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "static.graphql")
	require.NoError(t, os.WriteFile(tmplPath, []byte("query { users { id } }"), 0o644))

	_, err := collectOperations(&flags{input: tmplPath}, []string{"1"})
	assert.ErrorContains(t, err, "placeholder")
}

func TestCollectOperationsFileMode(t *testing.T) {
	dir := t.TempDir()
	opsPath := filepath.Join(dir, "ops.graphql")
	require.NoError(t, os.WriteFile(opsPath, []byte("query { a }\n\nquery { b }\n"), 0o644))

	ops, err := collectOperations(&flags{}, []string{opsPath})
	require.NoError(t, err)

	require.Len(t, ops, 2)
	assert.Equal(t, "1", ops[0].Label)
	assert.Equal(t, "3", ops[1].Label)
}

func TestRootCmdFlagDefaults(t *testing.T) {
	cmd := newRootCmd()

	retries, err := cmd.Flags().GetInt("retries")
	require.NoError(t, err)
	assert.Equal(t, 3, retries)

	stop, err := cmd.Flags().GetBool("stop")
	require.NoError(t, err)
	assert.False(t, stop)
}
