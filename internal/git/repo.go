package git

import (
	stderrors "errors"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// RepoInfo describes the repository enclosing a directory.
type RepoInfo struct {
	Root      string // worktree root
	RemoteURL string // first URL of the requested remote
	Branch    string // current branch, empty when HEAD is detached
}

// Inspect opens the repository enclosing dir and reads remote and branch.
func Inspect(dir, remote string) (*RepoInfo, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "open repository").WithContext("path", dir).Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "repository has no worktree").WithContext("path", dir).Build()
	}

	rem, err := repo.Remote(remote)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "remote not configured").
			WithContext("remote", remote).
			Build()
	}
	urls := rem.Config().URLs
	if len(urls) == 0 {
		return nil, ferrors.GitError("remote has no URL").WithContext("remote", remote).Build()
	}

	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "resolve worktree root").Build()
	}
	branch, err := currentBranch(repo)
	if err != nil {
		return nil, err
	}
	return &RepoInfo{Root: root, RemoteURL: urls[0], Branch: branch}, nil
}

// currentBranch resolves HEAD without requiring a commit: a freshly
// initialized repository still has a symbolic HEAD naming its branch.
func currentBranch(repo *gogit.Repository) (string, error) {
	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", ferrors.WrapError(err, ferrors.CategoryGit, "read HEAD").Build()
	}
	if head.Type() == plumbing.SymbolicReference && head.Target().IsBranch() {
		return head.Target().Short(), nil
	}
	return "", nil
}
