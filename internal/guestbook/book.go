package guestbook

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/litescript/ls-constellation/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS comments (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS comments_created_at ON comments (created_at DESC);
`

// Listener receives each newly signed comment.
type Listener func(Comment)

// Book is a sqlite-backed guestbook. It is safe for concurrent use.
type Book struct {
	db  *sql.DB
	log *logging.Logger
	now func() time.Time

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// Option configures a Book.
type Option func(*Book)

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) Option {
	return func(b *Book) { b.log = log }
}

// WithClock sets the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// Open opens (creating if needed) the guestbook database at path.
// ":memory:" gives a private in-memory book.
func Open(ctx context.Context, path string, opts ...Option) (*Book, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create guestbook dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open guestbook: %w", err)
	}
	// One connection keeps ":memory:" a single database and serializes writes.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate guestbook: %w", err)
	}

	b := &Book{
		db:        db,
		log:       logging.Discard(),
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Close closes the database.
func (b *Book) Close() error {
	return b.db.Close()
}

// Sign validates and stores a comment, then notifies listeners.
func (b *Book) Sign(ctx context.Context, in NewComment) (Comment, error) {
	in, err := in.Normalize()
	if err != nil {
		return Comment{}, err
	}

	c := Comment{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Message:   in.Message,
		CreatedAt: b.now().UTC(),
	}
	_, err = b.db.ExecContext(ctx,
		`INSERT INTO comments (id, name, message, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Message, c.CreatedAt.UnixNano())
	if err != nil {
		b.log.Error("guestbook: insert failed: %v", err)
		return Comment{}, fmt.Errorf("create comment: %w", err)
	}

	b.log.Debug("guestbook: %s signed", c.Name)
	b.publish(c)
	return c, nil
}

// List returns the newest comments first. A non-positive limit means
// DefaultLimit.
func (b *Book) List(ctx context.Context, limit int) ([]Comment, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT id, name, message, created_at FROM comments
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	defer rows.Close()

	var out []Comment
	for rows.Next() {
		var (
			c  Comment
			ns int64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Message, &ns); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.CreatedAt = time.Unix(0, ns).UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	return out, nil
}

// Subscribe registers fn for new comments. Listeners run synchronously on
// the signing goroutine. The returned function removes the listener.
func (b *Book) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

func (b *Book) publish(c Comment) {
	b.mu.Lock()
	ls := make([]Listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		ls = append(ls, l)
	}
	b.mu.Unlock()

	for _, l := range ls {
		l(c)
	}
}
