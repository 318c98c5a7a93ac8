// Package vault reads input attachments and writes generated notes through
// an abstract file system, so that local paths and file:// URLs share one
// code path.
package vault

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	afsurl "github.com/viant/afs/url"
)

// NoteExt is appended to every note title.
const NoteExt = ".md"

// Store creates notes below a root folder.
type Store struct {
	fs   afs.Service
	root string
}

// NewStore returns a Store rooted at root, which may be a local path or a
// URL. An empty root means the working directory.
func NewStore(root string) *Store {
	return &Store{fs: afs.New(), root: ToURL(root)}
}

// Root returns the store's root URL.
func (s *Store) Root() string { return s.root }

// CreateNote writes text as a new note named after title inside folder.
// The folder is created when missing. When title.md already exists the
// first free name among "title (1).md", "title (2).md", ... is used.
// The returned path is relative to the store root.
func (s *Store) CreateNote(ctx context.Context, folder, title, text string) (string, error) {
	folder = strings.Trim(filepath.ToSlash(folder), "/")
	if title == "" {
		return "", fmt.Errorf("create note: empty title")
	}

	dirURL := s.root
	if folder != "" {
		dirURL = afsurl.Join(s.root, folder)
	}
	exists, err := s.fs.Exists(ctx, dirURL)
	if err != nil {
		return "", fmt.Errorf("check folder %s: %w", folder, err)
	}
	if !exists {
		if err := s.fs.Create(ctx, dirURL, file.DefaultDirOsMode, true); err != nil {
			return "", fmt.Errorf("create folder %s: %w", folder, err)
		}
	}

	name, err := s.availableName(ctx, dirURL, title)
	if err != nil {
		return "", err
	}
	if err := s.fs.Upload(ctx, afsurl.Join(dirURL, name), file.DefaultFileOsMode, strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("write note %s: %w", name, err)
	}
	return path.Join(folder, name), nil
}

func (s *Store) availableName(ctx context.Context, dirURL, title string) (string, error) {
	candidate := title + NoteExt
	for i := 1; ; i++ {
		exists, err := s.fs.Exists(ctx, afsurl.Join(dirURL, candidate))
		if err != nil {
			return "", fmt.Errorf("check note %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s (%d)%s", title, i, NoteExt)
	}
}

// ToURL turns a plain path into an absolute file:// URL. Values that
// already carry a scheme are returned unchanged.
func ToURL(p string) string {
	if strings.Contains(p, "://") {
		return p
	}
	if p == "" {
		p = "."
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return "file://" + filepath.ToSlash(p)
}
