package gitver

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitFile(t *testing.T, dir string) (*git.Repository, string) {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.svg"), []byte("<svg/>"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("logo.svg")
	require.NoError(t, err)

	hash, err := wt.Commit("add logo", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	require.NoError(t, err)
	return repo, hash.String()
}

func TestDescribeNonRepository(t *testing.T) {
	assert.Equal(t, Fallback, Describe(t.TempDir()))
}

func TestDescribeShortSHA(t *testing.T) {
	dir := t.TempDir()
	_, hash := commitFile(t, dir)

	assert.Equal(t, hash[:7], Describe(dir))
}

func TestDescribeLightweightTag(t *testing.T) {
	dir := t.TempDir()
	repo, _ := commitFile(t, dir)

	head, err := repo.Head()
	require.NoError(t, err)
	_, err = repo.CreateTag("v2.1.0", head.Hash(), nil)
	require.NoError(t, err)

	assert.Equal(t, "v2.1.0", Describe(dir))
}

func TestDescribeAnnotatedTag(t *testing.T) {
	dir := t.TempDir()
	repo, _ := commitFile(t, dir)

	head, err := repo.Head()
	require.NoError(t, err)
	_, err = repo.CreateTag("v3.0.0", head.Hash(), &git.CreateTagOptions{
		Message: "release",
		Tagger:  &object.Signature{Name: "test", Email: "test@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "v3.0.0", Describe(dir))
}

func TestDescribeInsideSubdirectory(t *testing.T) {
	dir := t.TempDir()
	commitFile(t, dir)

	sub := filepath.Join(dir, "assets", "acme")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	assert.NotEqual(t, Fallback, Describe(sub))
}
