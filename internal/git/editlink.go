package git

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

var scpLike = regexp.MustCompile(`^(?:[\w.-]+@)?([\w.-]+):([^/].*)$`)

// WebURL converts a clone URL (https, ssh:// or scp-like) into the
// repository's browser URL: no credentials, no port, no .git suffix.
func WebURL(remote string) (string, error) {
	remote = strings.TrimSpace(remote)
	var host, repoPath string
	if u, err := url.Parse(remote); err == nil && u.Scheme != "" && u.Host != "" {
		switch u.Scheme {
		case "http", "https", "ssh", "git", "git+ssh":
		default:
			return "", fmt.Errorf("unsupported remote scheme %q", u.Scheme)
		}
		host, repoPath = u.Hostname(), u.Path
	} else if m := scpLike.FindStringSubmatch(remote); m != nil {
		host, repoPath = m[1], m[2]
	} else {
		return "", fmt.Errorf("unrecognized remote URL %q", remote)
	}
	repoPath = strings.TrimSuffix(strings.Trim(repoPath, "/"), ".git")
	if host == "" || repoPath == "" {
		return "", fmt.Errorf("remote URL %q has no repository path", remote)
	}
	return "https://" + host + "/" + repoPath, nil
}

// editSegment returns the path segment a forge uses for its web editor.
func editSegment(webURL string) (string, error) {
	u, err := url.Parse(webURL)
	if err != nil {
		return "", err
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case host == "github.com" || strings.HasPrefix(host, "github."):
		return "edit", nil
	case host == "gitlab.com" || strings.HasPrefix(host, "gitlab."):
		return "-/edit", nil
	case host == "bitbucket.org":
		// Bitbucket's editor needs a query suffix after the file path.
		return "", fmt.Errorf("bitbucket edit links cannot be expressed as a base URL")
	default:
		// Forgejo / Gitea
		return "_edit", nil
	}
}

// EditBaseURL derives the edit link base from the repository enclosing dir.
// The base points at projectDir, the Astro project root; Starlight appends
// the content collection path itself. An empty branch means the current
// branch.
func EditBaseURL(dir, remote, branch, projectDir string) (string, error) {
	info, err := Inspect(dir, remote)
	if err != nil {
		return "", err
	}
	if branch == "" {
		branch = info.Branch
	}
	if branch == "" {
		return "", ferrors.GitError("cannot determine branch (detached HEAD); set edit_link.branch").Build()
	}

	web, err := WebURL(info.RemoteURL)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryGit, "derive repository web URL").
			WithContext("remote", info.RemoteURL).
			Build()
	}
	seg, err := editSegment(web)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryGit, "unsupported forge for edit links").
			WithContext("url", web).
			Build()
	}

	absRoot, err := filepath.Abs(projectDir)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryInternal, "resolve project directory").Build()
	}
	// Symlinked temp dirs (macOS /var) must not make the project look external.
	if resolved, rerr := filepath.EvalSymlinks(absRoot); rerr == nil {
		absRoot = resolved
	}
	repoRoot := info.Root
	if resolved, rerr := filepath.EvalSymlinks(repoRoot); rerr == nil {
		repoRoot = resolved
	}
	rel, err := filepath.Rel(repoRoot, absRoot)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ferrors.GitError("project directory is outside the repository").
			WithContext("project_dir", absRoot).
			WithContext("repository", info.Root).
			Build()
	}

	base := web + "/" + seg + "/" + branch + "/"
	if rel != "." {
		base += filepath.ToSlash(rel) + "/"
	}
	return base, nil
}
