package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const clipSelectColumns = `id, source, mode, target, engine, markdown, created_at`

// maxTargetLen bounds the stored selector or selected text.
const maxTargetLen = 512

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClip(scanner rowScanner) (Clip, error) {
	var c Clip
	var mode string
	var target sql.NullString
	var createdAt string
	if err := scanner.Scan(
		&c.ID,
		&c.Source,
		&mode,
		&target,
		&c.Engine,
		&c.Markdown,
		&createdAt,
	); err != nil {
		return Clip{}, err
	}
	c.Mode = Mode(mode)
	c.Target = target.String
	if t, err := parseDBTime(createdAt); err == nil {
		c.CreatedAt = t
	}
	return c, nil
}

func (s *Store) SaveClip(ctx context.Context, in SaveClipInput) (Clip, error) {
	if strings.TrimSpace(in.Source) == "" {
		return Clip{}, fmt.Errorf("%w: source must not be empty", ErrInvalidInput)
	}
	if in.Mode == "" {
		in.Mode = ModeDocument
	}
	if in.Engine == "" {
		in.Engine = "minimal"
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO clips (source, mode, target, engine, markdown, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		in.Source,
		string(in.Mode),
		truncate(in.Target, maxTargetLen),
		in.Engine,
		in.Markdown,
		timeToDBString(now),
	)
	if err != nil {
		return Clip{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Clip{}, err
	}
	return s.GetClip(ctx, id)
}

func (s *Store) GetClip(ctx context.Context, id int64) (Clip, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+clipSelectColumns+` FROM clips WHERE id = ?`, id)
	clip, err := scanClip(row)
	if err != nil {
		return Clip{}, wrapNotFound("clip", err)
	}
	return clip, nil
}

func (s *Store) ListClips(ctx context.Context, opts ClipListOptions) ([]Clip, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	mode := strings.ToLower(strings.TrimSpace(opts.Mode))

	query := `SELECT ` + clipSelectColumns + ` FROM clips`
	args := make([]any, 0, 2)
	switch Mode(mode) {
	case "", "all":
	case ModeDocument, ModePointer, ModeSelection:
		query += ` WHERE mode = ?`
		args = append(args, mode)
	default:
		return nil, fmt.Errorf("%w: invalid mode %q (expected document|pointer|selection|all)", ErrInvalidInput, opts.Mode)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, opts.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectClips(rows)
}

func (s *Store) SearchClips(ctx context.Context, opts SearchOptions) ([]Clip, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return nil, fmt.Errorf("%w: query must not be empty", ErrInvalidInput)
	}
	if opts.Limit <= 0 {
		opts.Limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.source, c.mode, c.target, c.engine, c.markdown, c.created_at
		FROM clips_fts
		JOIN clips c ON c.id = clips_fts.rowid
		WHERE clips_fts MATCH ?
		ORDER BY bm25(clips_fts), c.created_at DESC
		LIMIT ?
	`, opts.Query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectClips(rows)
}

func collectClips(rows *sql.Rows) ([]Clip, error) {
	clips := make([]Clip, 0)
	for rows.Next() {
		clip, err := scanClip(rows)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	return clips, rows.Err()
}

func (s *Store) DeleteClip(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clips WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("clip %d: %w", id, ErrNotFound)
	}
	return nil
}

// PruneOlderThan deletes clips created more than days ago. Zero or negative
// days keeps everything.
func (s *Store) PruneOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM clips WHERE created_at < ?`, timeToDBString(timestampBeforeDays(days)))
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
