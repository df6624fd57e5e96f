package metadata

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/marcboeker/go-duckdb"

	"github.com/sheetdash/backend/internal/models"
)

// DuckStore keeps file metadata in an embedded DuckDB database file. The
// per-sheet visibility list is stored as a JSON document column, so the
// whole record reads and writes as one unit.
type DuckStore struct {
	db     *sql.DB
	dbPath string
}

// OpenDuckStore opens (or creates) the metadata database at dbPath and
// ensures the schema exists.
func OpenDuckStore(dbPath string) (*DuckStore, error) {
	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA memory_limit='256MB'",
			"PRAGMA threads=2",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("opening duckdb connector: %w", err)
	}

	db := sql.OpenDB(connector)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS uploaded_files (
			file_name           VARCHAR PRIMARY KEY,
			stored_name         VARCHAR NOT NULL,
			storage_path        VARCHAR NOT NULL,
			mime_type           VARCHAR NOT NULL,
			sheet_visibility    VARCHAR NOT NULL,
			marked_for_deletion BOOLEAN NOT NULL DEFAULT false,
			created_at          TIMESTAMP NOT NULL,
			updated_at          TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating uploaded_files table: %w", err)
	}

	return &DuckStore{db: db, dbPath: dbPath}, nil
}

func (s *DuckStore) Insert(ctx context.Context, f *models.UploadedFile) error {
	visibility, err := json.Marshal(f.SheetVisibility)
	if err != nil {
		return fmt.Errorf("encoding sheet visibility: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO uploaded_files
			(file_name, stored_name, storage_path, mime_type, sheet_visibility,
			 marked_for_deletion, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.FileName, f.StoredName, f.StoragePath, f.MimeType, string(visibility),
		f.MarkedForDeletion, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

func (s *DuckStore) Update(ctx context.Context, f *models.UploadedFile) error {
	visibility, err := json.Marshal(f.SheetVisibility)
	if err != nil {
		return fmt.Errorf("encoding sheet visibility: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE uploaded_files
		SET stored_name = ?, storage_path = ?, mime_type = ?,
		    sheet_visibility = ?, marked_for_deletion = ?, updated_at = ?
		WHERE file_name = ?`,
		f.StoredName, f.StoragePath, f.MimeType, string(visibility),
		f.MarkedForDeletion, f.UpdatedAt, f.FileName,
	)
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DuckStore) FindByFileName(ctx context.Context, fileName string) (*models.UploadedFile, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE file_name = ?`, fileName)
	return scanRecord(row)
}

func (s *DuckStore) FindByStoredName(ctx context.Context, storedName string) (*models.UploadedFile, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE stored_name = ?`, storedName)
	return scanRecord(row)
}

func (s *DuckStore) List(ctx context.Context) ([]*models.UploadedFile, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *DuckStore) FindMarked(ctx context.Context) ([]*models.UploadedFile, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE marked_for_deletion ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing marked records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *DuckStore) Delete(ctx context.Context, storedName string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM uploaded_files WHERE stored_name = ?`, storedName)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DuckStore) Close() error {
	return s.db.Close()
}

const selectColumns = `
	SELECT file_name, stored_name, storage_path, mime_type, sheet_visibility,
	       marked_for_deletion, created_at, updated_at
	FROM uploaded_files`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.UploadedFile, error) {
	var f models.UploadedFile
	var visibility string

	err := row.Scan(&f.FileName, &f.StoredName, &f.StoragePath, &f.MimeType,
		&visibility, &f.MarkedForDeletion, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning record: %w", err)
	}

	if err := json.Unmarshal([]byte(visibility), &f.SheetVisibility); err != nil {
		return nil, fmt.Errorf("decoding sheet visibility: %w", err)
	}
	return &f, nil
}

func scanRecords(rows *sql.Rows) ([]*models.UploadedFile, error) {
	var records []*models.UploadedFile
	for rows.Next() {
		f, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}
