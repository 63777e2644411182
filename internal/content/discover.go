// Package content inspects the documentation content tree the sidebar groups
// point at. Nothing here is needed to produce the site configuration; it
// previews what the build tool will autogenerate and offers an opt-in check
// that every group directory exists.
package content

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/site"
	"github.com/inful/mdfp"
)

// Page is one entry the build tool will list in a sidebar group.
type Page struct {
	Slug        string // content-root relative, slash separated, no extension
	Path        string // filesystem path
	Label       string
	Order       *int
	Fingerprint string
}

// SkippedPage is a page Discover could not read or parse.
type SkippedPage struct {
	Path string
	Err  error
}

// Group is a sidebar group with its discovered pages in display order.
type Group struct {
	Label     string
	Directory string
	Missing   bool
	Pages     []Page
	Skipped   []SkippedPage
}

// Pages counts pages across groups.
func Pages(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Pages)
	}
	return n
}

var pageExtensions = map[string]bool{".md": true, ".mdx": true, ".markdown": true}

// Discover walks each group's directory under root. A missing directory marks
// the group Missing rather than failing; use Check to turn that into an error.
// Pages that cannot be read or whose frontmatter does not parse land in
// Skipped; use CheckPages to fail on them. Draft and sidebar-hidden pages are
// left out. Pages are ordered by sidebar.order (unset last), then by slug.
func Discover(root string, groups []site.SidebarGroup) ([]Group, error) {
	out := make([]Group, 0, len(groups))
	for _, sg := range groups {
		g := Group{Label: sg.Label(), Directory: sg.Directory()}
		dir := filepath.Join(root, filepath.FromSlash(sg.Directory()))
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			g.Missing = true
			slog.Debug("Sidebar directory not found", logfields.Group(g.Label), logfields.Directory(dir))
			out = append(out, g)
			continue
		}
		pages, skipped, err := discoverDir(root, dir)
		if err != nil {
			return nil, err
		}
		g.Pages, g.Skipped = pages, skipped
		for _, sp := range skipped {
			slog.Warn("Skipping unreadable page", logfields.Group(g.Label), logfields.File(sp.Path), logfields.Error(sp.Err))
		}
		slog.Debug("Discovered sidebar group", logfields.Group(g.Label), logfields.Pages(len(pages)))
		out = append(out, g)
	}
	return out, nil
}

func discoverDir(root, dir string) ([]Page, []SkippedPage, error) {
	var (
		pages   []Page
		skipped []SkippedPage
	)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			skipped = append(skipped, SkippedPage{Path: p, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !pageExtensions[strings.ToLower(filepath.Ext(p))] {
			return nil
		}
		page, keep, err := readPage(root, p)
		if err != nil {
			skipped = append(skipped, SkippedPage{Path: p, Err: err})
			return nil
		}
		if keep {
			pages = append(pages, page)
		}
		return nil
	})
	if err != nil {
		return nil, nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "walk content directory").
			WithContext("path", dir).
			Build()
	}
	sortPages(pages)
	return pages, skipped, nil
}

func readPage(root, p string) (Page, bool, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Page{}, false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read page").WithContext("path", p).Build()
	}
	fmRaw, body, err := splitFrontMatter(data)
	if err != nil {
		return Page{}, false, ferrors.WrapError(err, ferrors.CategoryContent, "invalid frontmatter").WithContext("path", p).Build()
	}
	fm, err := parseFrontMatter(fmRaw)
	if err != nil {
		return Page{}, false, ferrors.WrapError(err, ferrors.CategoryContent, "invalid frontmatter").WithContext("path", p).Build()
	}
	if fm.Draft || fm.Sidebar.Hidden {
		slog.Debug("Skipping page", logfields.File(p), slog.Bool("draft", fm.Draft), slog.Bool("hidden", fm.Sidebar.Hidden))
		return Page{}, false, nil
	}

	rel, err := filepath.Rel(root, p)
	if err != nil {
		return Page{}, false, ferrors.WrapError(err, ferrors.CategoryInternal, "relativize page path").WithContext("path", p).Build()
	}
	slug := strings.TrimSuffix(filepath.ToSlash(rel), path.Ext(rel))
	stem := path.Base(slug)
	if stem == "index" {
		slug = path.Dir(slug)
		stem = path.Base(slug)
	}

	label := fm.Sidebar.Label
	if label == "" {
		label = fm.Title
	}
	if label == "" {
		label = firstHeading(body)
	}
	if label == "" {
		label = titleFromStem(stem)
	}

	return Page{
		Slug:        strings.ToLower(slug),
		Path:        p,
		Label:       label,
		Order:       fm.Sidebar.Order,
		Fingerprint: mdfp.CalculateFingerprintFromParts(string(fmRaw), string(body)),
	}, true, nil
}

func sortPages(pages []Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		a, b := pages[i].Order, pages[j].Order
		switch {
		case a != nil && b != nil && *a != *b:
			return *a < *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return pages[i].Slug < pages[j].Slug
	})
}

// Check fails with a content error naming every group whose directory is
// missing or not a directory under root.
func Check(root string, groups []site.SidebarGroup) error {
	var missing []string
	for _, g := range groups {
		dir := filepath.Join(root, filepath.FromSlash(g.Directory()))
		info, err := os.Stat(dir)
		switch {
		case err == nil && info.IsDir():
			continue
		case err != nil && !stderrors.Is(err, fs.ErrNotExist):
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "stat sidebar directory").WithContext("path", dir).Build()
		}
		missing = append(missing, g.Label()+" ("+g.Directory()+")")
	}
	if len(missing) == 0 {
		return nil
	}
	return ferrors.ContentError("sidebar directories missing from content tree").
		WithContext("content_root", root).
		WithContext("groups", strings.Join(missing, ", ")).
		Build()
}

// CheckPages fails with a content error when any discovered group skipped a
// page. The first skipped page's error is the cause.
func CheckPages(groups []Group) error {
	var (
		paths []string
		first error
	)
	for _, g := range groups {
		for _, sp := range g.Skipped {
			if first == nil {
				first = sp.Err
			}
			paths = append(paths, sp.Path)
		}
	}
	if first == nil {
		return nil
	}
	return ferrors.WrapError(first, ferrors.CategoryContent, "unreadable pages in content tree").
		WithContext("pages", strings.Join(paths, ", ")).
		Build()
}

// Fingerprints maps page slugs to their fingerprints.
func Fingerprints(groups []Group) map[string]string {
	out := make(map[string]string, Pages(groups))
	for _, g := range groups {
		for _, p := range g.Pages {
			out[p.Slug] = p.Fingerprint
		}
	}
	return out
}
