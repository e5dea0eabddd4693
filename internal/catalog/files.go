package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// UpsertFile inserts or updates a file record within a transaction.
// The whole row is overwritten on conflict (a rescan replaces the prior
// record, including thumbnail path and note), but the surrogate id is
// preserved.
func (s *Store) UpsertFile(tx *sql.Tx, file *FileRecord) error {
	query := `
	INSERT INTO files (path, name, kind, mime_type, created_at, modified_at, age_label, thumbnail_path, note)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		name = excluded.name,
		kind = excluded.kind,
		mime_type = excluded.mime_type,
		created_at = excluded.created_at,
		modified_at = excluded.modified_at,
		age_label = excluded.age_label,
		thumbnail_path = excluded.thumbnail_path,
		note = excluded.note
	`

	// Background context: the transaction controls the operation's
	// lifecycle.
	result, err := tx.ExecContext(context.Background(), query,
		file.Path,
		file.Name,
		file.Kind,
		file.MimeType,
		file.CreatedAt,
		file.ModifiedAt,
		file.AgeLabel,
		nullable(file.ThumbnailPath),
		nullable(file.Note),
	)
	if err == nil {
		if rows, _ := result.RowsAffected(); rows > 0 {
			recordRows("upsert_file", rows)
		}
	}
	return err
}

// SaveFile upserts a single record outside of a batch.
func (s *Store) SaveFile(ctx context.Context, file *FileRecord) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("save_file", start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
	INSERT INTO files (path, name, kind, mime_type, created_at, modified_at, age_label, thumbnail_path, note)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		name = excluded.name,
		kind = excluded.kind,
		mime_type = excluded.mime_type,
		created_at = excluded.created_at,
		modified_at = excluded.modified_at,
		age_label = excluded.age_label,
		thumbnail_path = excluded.thumbnail_path,
		note = excluded.note
	`,
		file.Path,
		file.Name,
		file.Kind,
		file.MimeType,
		file.CreatedAt,
		file.ModifiedAt,
		file.AgeLabel,
		nullable(file.ThumbnailPath),
		nullable(file.Note),
	)
	return err
}

// GetFileByPath retrieves a single file record by path.
// Returns (nil, nil) if no record exists for the path.
func (s *Store) GetFileByPath(ctx context.Context, path string) (*FileRecord, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_file_by_path", start, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
	SELECT id, path, name, kind, mime_type, created_at, modified_at, age_label, thumbnail_path, note
	FROM files WHERE path = ?
	`

	file, scanErr := scanFileRecord(s.db.QueryRowContext(ctx, query, path))
	if errors.Is(scanErr, sql.ErrNoRows) {
		return nil, nil
	}
	if scanErr != nil {
		err = scanErr
		return nil, err
	}
	return file, nil
}

// GetNote returns the note column for a path. The bool reports whether a
// record exists at all; a nil note on an existing record means it was
// never annotated, as opposed to annotated with an empty string.
func (s *Store) GetNote(ctx context.Context, path string) (*string, bool, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_note", start, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var note sql.NullString
	err = s.db.QueryRowContext(ctx, "SELECT note FROM files WHERE path = ?", path).Scan(&note)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !note.Valid {
		return nil, true, nil
	}
	return &note.String, true, nil
}

// GetAllFiles returns every cataloged record, newest first by created_at.
func (s *Store) GetAllFiles(ctx context.Context) ([]FileRecord, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_all_files", start, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
	SELECT id, path, name, kind, mime_type, created_at, modified_at, age_label, thumbnail_path, note
	FROM files ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		file, scanErr := scanFileRecord(rows)
		if scanErr != nil {
			err = scanErr
			return nil, err
		}
		files = append(files, *file)
	}
	err = rows.Err()
	if err != nil {
		return nil, err
	}
	return files, nil
}

// UpdateAgeLabel sets the age label for a record. Affects zero rows,
// silently, if the path has never been cataloged.
func (s *Store) UpdateAgeLabel(ctx context.Context, path, label string) error {
	return s.updateField(ctx, "update_age_label", "UPDATE files SET age_label = ? WHERE path = ?", label, path)
}

// UpdateNote sets the note for a record. Affects zero rows, silently, if
// the path has never been cataloged.
func (s *Store) UpdateNote(ctx context.Context, path, note string) error {
	return s.updateField(ctx, "update_note", "UPDATE files SET note = ? WHERE path = ?", note, path)
}

// UpdateThumbnailPath records the location of a generated thumbnail.
func (s *Store) UpdateThumbnailPath(ctx context.Context, path, thumbnailPath string) error {
	return s.updateField(ctx, "update_thumbnail_path", "UPDATE files SET thumbnail_path = ? WHERE path = ?", thumbnailPath, path)
}

func (s *Store) updateField(ctx context.Context, operation, query string, value, path string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery(operation, start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, query, value, path)
	if err != nil {
		return err
	}
	if rows, raErr := result.RowsAffected(); raErr == nil {
		recordRows(operation, rows)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFileRecord(row rowScanner) (*FileRecord, error) {
	var file FileRecord
	var thumbnailPath, note sql.NullString

	err := row.Scan(
		&file.ID, &file.Path, &file.Name, &file.Kind, &file.MimeType,
		&file.CreatedAt, &file.ModifiedAt, &file.AgeLabel,
		&thumbnailPath, &note,
	)
	if err != nil {
		return nil, err
	}

	file.ThumbnailPath = thumbnailPath.String
	file.Note = note.String
	return &file, nil
}

// nullable maps "" to NULL so optional columns read back as absent.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
