package blog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"
)

var ErrNotFound = errors.New("post not found")
var ErrBodyNotFound = errors.New("post body not found")
var ErrDuplicateSlug = errors.New("post slug already exists")
var ErrInvalidPost = errors.New("invalid post record")
var ErrMalformedIndex = errors.New("malformed post index")

const (
	IndexFile = "posts.json"
	PostsDir  = "posts"
)

// FileStore reads posts.json and posts/<slug>.md from a content tree.
// The index is loaded on first use and kept until Reload.
type FileStore struct {
	fsys   fs.FS
	mu     sync.RWMutex
	posts  []Post
	loaded bool
}

func NewFileStore(fsys fs.FS) *FileStore {
	return &FileStore{fsys: fsys}
}

func (s *FileStore) List(ctx context.Context) ([]Post, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	// copy so callers cannot reorder the repository
	posts := make([]Post, len(s.posts))
	copy(posts, s.posts)
	return posts, nil
}

func (s *FileStore) GetBySlug(ctx context.Context, slug string) (Post, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return Post{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, post := range s.posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return Post{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
}

func (s *FileStore) Body(ctx context.Context, slug string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, ok := BodyPath(slug)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrBodyNotFound, slug)
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrBodyNotFound, slug)
		}
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

func (s *FileStore) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = nil
	s.loaded = false
}

func (s *FileStore) ensureLoaded(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	data, err := fs.ReadFile(s.fsys, IndexFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.posts = []Post{}
			s.loaded = true
			return nil
		}
		return fmt.Errorf("read %s: %w", IndexFile, err)
	}

	posts, err := DecodeIndex(data)
	if err != nil {
		return err
	}
	s.posts = posts
	s.loaded = true
	return nil
}

// DecodeIndex parses a posts.json document into validated records.
func DecodeIndex(data []byte) ([]Post, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Post{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var posts []Post
	if err := dec.Decode(&posts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedIndex, err)
	}

	seen := make(map[string]struct{}, len(posts))
	for i, post := range posts {
		if err := post.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrMalformedIndex, i, err)
		}
		if _, dup := seen[post.Slug]; dup {
			return nil, fmt.Errorf("%w: record %d: %w: %s", ErrMalformedIndex, i, ErrDuplicateSlug, post.Slug)
		}
		seen[post.Slug] = struct{}{}
		if post.Tags == nil {
			posts[i].Tags = []string{}
		}
	}
	if posts == nil {
		posts = []Post{}
	}
	return posts, nil
}

// EncodeIndex renders posts the way posts.json is committed.
func EncodeIndex(posts []Post) ([]byte, error) {
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// BodyPath maps a slug to its markdown file. Slugs that are not URL-safe
// never reach the filesystem.
func BodyPath(slug string) (string, bool) {
	if !ValidSlug(slug) {
		return "", false
	}
	return path.Join(PostsDir, slug+".md"), true
}
