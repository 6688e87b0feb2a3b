// Package content is the repository over the blog's content root. Each post
// lives at {postId}/index.md; the folder name is the post's canonical id for
// its whole lifetime. The store performs read-only filesystem access and
// holds no mutable state, so it is safe to share across goroutines.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tmheller/tmheller.dev/app"
	"github.com/tmheller/tmheller.dev/kit/readtime"
	"github.com/tmheller/tmheller.dev/kit/slugutil"
	"github.com/tmheller/tmheller.dev/markdown"
	"github.com/tmheller/tmheller.dev/markdown/htmlrender"
)

// ErrContentNotFound reports a requested id with no matching content file,
// or a resolved id that does not match the requested one.
var ErrContentNotFound = errors.New("content not found")

const indexFile = "index.md"

var coverFiles = []string{"cover.png", "Cover.png"}

// Ref is the lightweight reference produced by scanning frontmatter only.
type Ref struct {
	ID    string
	Title string
	Date  time.Time
}

// Post is a fully materialized content item. It is immutable after Load.
type Post struct {
	ID                 string
	Title              string
	Date               time.Time
	Tags               []string
	Body               string
	HasCoverImage      bool
	ReadingTimeMinutes int
}

// Document parses the post body into its document tree. The tree is built
// on demand and never cached: each call returns a fresh tree owned
// exclusively by the caller. Posts are processed once per build, so there
// is nothing to win by caching.
func (p *Post) Document() *markdown.Document {
	return markdown.Parse(p.Body)
}

type Store struct {
	cfg  *app.Config
	fsys fs.FS
}

// NewStore wraps a filesystem rooted at the content directory (one folder
// per post).
func NewStore(cfg *app.Config, fsys fs.FS) *Store {
	return &Store{cfg: cfg, fsys: fsys}
}

// Refs scans the content root and yields one Ref per post, reading only
// frontmatter. The sequence is restartable (each iteration rescans) and
// finite. A failing item yields its error and does not stop the scan;
// callers decide whether one bad post fails the whole build.
func (s *Store) Refs() iter.Seq2[Ref, error] {
	return func(yield func(Ref, error) bool) {
		entries, err := fs.ReadDir(s.fsys, ".")
		if err != nil {
			yield(Ref{}, fmt.Errorf("content: could not read content root: %w", err))
			return
		}
		for _, entry := range entries {
			if !entry.IsDir() || s.isIgnored(entry.Name()) {
				continue
			}
			id := entry.Name()
			ref, err := s.readRef(id)
			if err != nil {
				if !yield(Ref{ID: id}, err) {
					return
				}
				continue
			}
			if !yield(ref, nil) {
				return
			}
		}
	}
}

func (s *Store) readRef(id string) (Ref, error) {
	raw, err := fs.ReadFile(s.fsys, path.Join(id, indexFile))
	if err != nil {
		return Ref{}, fmt.Errorf("content: %w: %q", ErrContentNotFound, id)
	}
	fm, _, err := ParseFrontmatter(raw)
	if err != nil {
		return Ref{}, fmt.Errorf("content: post %q: %w", id, err)
	}
	date, err := fm.PublishedDate()
	if err != nil {
		return Ref{}, fmt.Errorf("content: post %q: %w", id, err)
	}
	return Ref{ID: id, Title: fm.Title, Date: date}, nil
}

// Load materializes one post. The id resolved from the storage location is
// cross-checked against the requested id; a mismatch is treated the same as
// a missing post rather than silently served.
func (s *Store) Load(id string) (*Post, error) {
	filePath := path.Join(id, indexFile)
	raw, err := fs.ReadFile(s.fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("content: %w: %q", ErrContentNotFound, id)
	}

	if resolved := slugutil.ForContentID(path.Dir(filePath)); resolved != id {
		return nil, fmt.Errorf("content: %w: resolved id %q does not match requested id %q",
			ErrContentNotFound, resolved, id)
	}

	fm, body, err := ParseFrontmatter(raw)
	if err != nil {
		return nil, fmt.Errorf("content: post %q: %w", id, err)
	}
	date, err := fm.PublishedDate()
	if err != nil {
		return nil, fmt.Errorf("content: post %q: %w", id, err)
	}

	return &Post{
		ID:                 id,
		Title:              fm.Title,
		Date:               date,
		Tags:               fm.Tags,
		Body:               body,
		HasCoverImage:      s.hasCover(id),
		ReadingTimeMinutes: readtime.Estimate(body, s.cfg.WordsPerMinute),
	}, nil
}

// AssetURLTransformer returns the pure URL hook handed to the renderer for
// one post: post-relative paths are rewritten under the post's URL, while
// root-relative paths and fragments stay untouched. Absolute URLs never
// reach the hook.
func (s *Store) AssetURLTransformer(id string) func(string) string {
	prefix := s.cfg.BlogPathPrefix
	return func(url string) string {
		if url == "" || url[0] == '/' || url[0] == '#' {
			return url
		}
		return path.Join(prefix, id, url)
	}
}

// RenderOptions bundles the per-post render hooks for the registry.
func (s *Store) RenderOptions(id string) htmlrender.Options {
	return htmlrender.Options{
		TransformURL: s.AssetURLTransformer(id),
		CodeStyle:    s.cfg.CodeStyle,
	}
}

// AssetNames lists the files stored alongside a post (cover images,
// figures) relative to the post folder, excluding the markdown source.
func (s *Store) AssetNames(id string) ([]string, error) {
	var names []string
	err := fs.WalkDir(s.fsys, id, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Base(p) == indexFile {
			return nil
		}
		rel, err := filepath.Rel(id, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("content: %w: %q", ErrContentNotFound, id)
	}
	return names, nil
}

// ReadAsset returns the bytes of one post asset.
func (s *Store) ReadAsset(id, name string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, path.Join(id, name))
	if err != nil {
		return nil, fmt.Errorf("content: post %q has no asset %q: %w", id, name, err)
	}
	return data, nil
}

func (s *Store) hasCover(id string) bool {
	for _, name := range coverFiles {
		if info, err := fs.Stat(s.fsys, path.Join(id, name)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

func (s *Store) isIgnored(name string) bool {
	for _, pattern := range s.cfg.IgnorePatterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
