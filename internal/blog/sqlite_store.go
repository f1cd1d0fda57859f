package blog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore serves the same content as a FileStore from a single database
// file built by Import. Repository order is kept in the position column.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection keeps :memory: databases alive across calls
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS posts (
		slug TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		title TEXT NOT NULL,
		date TEXT NOT NULL,
		excerpt TEXT,
		cover_image TEXT,
		tags TEXT,
		author TEXT,
		read_time TEXT,
		body TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_posts_position ON posts(position);
	`
	_, err := s.db.Exec(query)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) List(ctx context.Context) ([]Post, error) {
	return s.queryPosts(ctx, "SELECT id, title, slug, date, excerpt, cover_image, tags, author, read_time FROM posts ORDER BY position")
}

func (s *SQLiteStore) GetBySlug(ctx context.Context, slug string) (Post, error) {
	posts, err := s.queryPosts(ctx, "SELECT id, title, slug, date, excerpt, cover_image, tags, author, read_time FROM posts WHERE slug = ?", slug)
	if err != nil {
		return Post{}, err
	}
	if len(posts) == 0 {
		return Post{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return posts[0], nil
}

func (s *SQLiteStore) Body(ctx context.Context, slug string) (string, error) {
	var body sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT body FROM posts WHERE slug = ?", slug).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !body.Valid) {
		return "", fmt.Errorf("%w: %s", ErrBodyNotFound, slug)
	}
	if err != nil {
		return "", err
	}
	return body.String, nil
}

// Import replaces the stored content with posts, in order. bodies maps slug
// to raw markdown; posts without an entry are stored without a body.
func (s *SQLiteStore) Import(ctx context.Context, posts []Post, bodies map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM posts"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO posts (slug, position, id, title, date, excerpt, cover_image, tags, author, read_time, body)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, post := range posts {
		if err := post.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		tagsJSON, err := json.Marshal(post.Tags)
		if err != nil {
			return err
		}
		var body sql.NullString
		if b, ok := bodies[post.Slug]; ok {
			body = sql.NullString{String: b, Valid: true}
		}
		_, err = stmt.ExecContext(ctx, post.Slug, i, post.ID, post.Title, post.Date.String(),
			post.Excerpt, post.CoverImage, string(tagsJSON), post.Author, post.ReadTime, body)
		if err != nil {
			return fmt.Errorf("insert %s: %w", post.Slug, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) queryPosts(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		var date, tagsRaw string
		var excerpt, cover, author, readTime sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &date, &excerpt, &cover, &tagsRaw, &author, &readTime); err != nil {
			return nil, err
		}
		if p.Date, err = ParseDate(date); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedIndex, p.Slug, err)
		}
		p.Excerpt = excerpt.String
		p.CoverImage = cover.String
		p.Author = author.String
		p.ReadTime = readTime.String
		p.Tags = []string{}
		if tagsRaw != "" {
			if err := json.Unmarshal([]byte(tagsRaw), &p.Tags); err != nil {
				return nil, fmt.Errorf("%w: %s tags: %w", ErrMalformedIndex, p.Slug, err)
			}
			if p.Tags == nil {
				p.Tags = []string{}
			}
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
