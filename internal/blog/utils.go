package blog

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriteFile writes data to a temp file in the target directory and
// renames it over filename, so readers never observe a partial file.
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	closed := false
	defer func() {
		if !closed {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	closed = true

	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// PrependToIndex adds post at the head of the posts.json at indexPath, which
// makes it the featured post. The file is created when missing.
func PrependToIndex(indexPath string, post Post) error {
	if err := post.Validate(); err != nil {
		return err
	}

	var posts []Post
	data, err := os.ReadFile(indexPath)
	switch {
	case err == nil:
		posts, err = DecodeIndex(data)
		if err != nil {
			return err
		}
	case os.IsNotExist(err):
		posts = []Post{}
	default:
		return err
	}

	for _, existing := range posts {
		if existing.Slug == post.Slug {
			return fmt.Errorf("%w: %s", ErrDuplicateSlug, post.Slug)
		}
	}

	out, err := EncodeIndex(append([]Post{post}, posts...))
	if err != nil {
		return err
	}
	return AtomicWriteFile(indexPath, out, 0o644)
}
