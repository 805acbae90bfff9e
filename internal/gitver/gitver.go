// Package gitver derives a version tag for the generated asset tree from the
// source directory's git repository, for configs that leave version empty.
package gitver

import (
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Fallback is used when the source tree is not a git repository or has no
// usable history.
const Fallback = "v0"

// Describe returns a version tag for the repository containing path: a tag
// pointing at HEAD when one exists, otherwise the short HEAD SHA, otherwise
// Fallback. It never fails; version stamping must not block a run.
func Describe(path string) string {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Fallback
	}
	head, err := repo.Head()
	if err != nil {
		return Fallback
	}

	if tag := tagAt(repo, head.Hash()); tag != "" {
		return tag
	}
	return head.Hash().String()[:7]
}

// tagAt returns the name of a tag pointing at the given commit, resolving
// annotated tags through their tag object. Empty when none match.
func tagAt(repo *git.Repository, hash plumbing.Hash) string {
	iter, err := repo.Tags()
	if err != nil {
		return ""
	}
	defer iter.Close()

	var found string
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if obj, err := repo.TagObject(ref.Hash()); err == nil {
			target = obj.Target
		}
		if target == hash {
			found = ref.Name().Short()
			return storer.ErrStop
		}
		return nil
	})
	return found
}
