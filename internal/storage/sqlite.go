package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/matsen/bibstat/internal/reference"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database holding exported snapshots.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS datasets (
			id TEXT PRIMARY KEY,
			min_year INTEGER,
			max_year INTEGER,
			num_authors INTEGER NOT NULL,
			num_publications INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS authors (
			dataset_id TEXT NOT NULL,
			id INTEGER NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (dataset_id, id)
		);

		CREATE TABLE IF NOT EXISTS publications (
			dataset_id TEXT NOT NULL,
			id INTEGER NOT NULL,
			pub_type TEXT NOT NULL,
			title TEXT,
			year INTEGER NOT NULL,
			link TEXT,
			booktitle TEXT,
			journal TEXT,
			volume TEXT,
			pages TEXT,
			number TEXT,
			crossref TEXT,
			url TEXT,
			isbn TEXT,
			series TEXT,
			PRIMARY KEY (dataset_id, id)
		);

		-- Author order is preserved in position
		CREATE TABLE IF NOT EXISTS publication_authors (
			dataset_id TEXT NOT NULL,
			publication_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			author_id INTEGER NOT NULL,
			PRIMARY KEY (dataset_id, publication_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_pub_authors_author
			ON publication_authors(dataset_id, author_id);

		CREATE VIRTUAL TABLE IF NOT EXISTS authors_fts USING fts5(
			dataset_id UNINDEXED,
			author_id UNINDEXED,
			name
		);
	`

	_, err := db.Exec(schema)
	return err
}

// ExportSQLite writes v to a SQLite database at path. A snapshot with the same
// dataset id is replaced.
func ExportSQLite(path string, v *Snapshot) error {
	d, err := OpenDB(path)
	if err != nil {
		return err
	}
	if err := d.Write(v); err != nil {
		d.Close()
		return err
	}
	return d.Close()
}

// Write stores v in a single transaction.
func (d *DB) Write(v *Snapshot) error {
	if v.DatasetID == "" {
		return fmt.Errorf("writing snapshot: dataset has no id")
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"datasets", "authors", "publications", "publication_authors", "authors_fts"} {
		col := "dataset_id"
		if table == "datasets" {
			col = "id"
		}
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE "+col+" = ?", v.DatasetID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	var minYear, maxYear sql.NullInt64
	if v.HasYears {
		minYear = sql.NullInt64{Int64: int64(v.MinYear), Valid: true}
		maxYear = sql.NullInt64{Int64: int64(v.MaxYear), Valid: true}
	}
	if _, err := tx.Exec(`
		INSERT INTO datasets (id, min_year, max_year, num_authors, num_publications)
		VALUES (?, ?, ?, ?, ?)
	`, v.DatasetID, minYear, maxYear, len(v.Authors), len(v.Publications)); err != nil {
		return fmt.Errorf("inserting dataset: %w", err)
	}

	authorStmt, err := tx.Prepare(`INSERT INTO authors (dataset_id, id, name) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing authors insert: %w", err)
	}
	defer authorStmt.Close()

	ftsStmt, err := tx.Prepare(`INSERT INTO authors_fts (dataset_id, author_id, name) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for id, a := range v.Authors {
		if _, err := authorStmt.Exec(v.DatasetID, id, a.Name); err != nil {
			return fmt.Errorf("inserting author %d: %w", id, err)
		}
		if _, err := ftsStmt.Exec(v.DatasetID, id, a.Name); err != nil {
			return fmt.Errorf("inserting fts for author %d: %w", id, err)
		}
	}

	pubStmt, err := tx.Prepare(`
		INSERT INTO publications (
			dataset_id, id, pub_type, title, year, link,
			booktitle, journal, volume, pages, number,
			crossref, url, isbn, series
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing publications insert: %w", err)
	}
	defer pubStmt.Close()

	linkStmt, err := tx.Prepare(`
		INSERT INTO publication_authors (dataset_id, publication_id, position, author_id)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing publication_authors insert: %w", err)
	}
	defer linkStmt.Close()

	for i := range v.Publications {
		p := &v.Publications[i]
		_, err := pubStmt.Exec(
			v.DatasetID, i, p.Type.String(), nullable(p.Title), p.Year, nullable(p.Link),
			nullable(p.BookTitle), nullable(p.Journal), nullable(p.Volume), nullable(p.Pages), nullable(p.Number),
			nullable(p.Crossref), nullable(p.URL), nullable(p.ISBN), nullable(p.Series),
		)
		if err != nil {
			return fmt.Errorf("inserting publication %d: %w", i, err)
		}
		for pos, a := range p.AuthorIDs {
			if _, err := linkStmt.Exec(v.DatasetID, i, pos, a); err != nil {
				return fmt.Errorf("inserting author %d of publication %d: %w", pos, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Datasets returns the ids of every exported dataset.
func (d *DB) Datasets() ([]string, error) {
	rows, err := d.db.Query(`SELECT id FROM datasets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Counts returns the number of authors and publications stored for a dataset.
func (d *DB) Counts(datasetID string) (authors, publications int, err error) {
	err = d.db.QueryRow(`
		SELECT num_authors, num_publications FROM datasets WHERE id = ?
	`, datasetID).Scan(&authors, &publications)
	if err == sql.ErrNoRows {
		return 0, 0, fmt.Errorf("dataset %s not found", datasetID)
	}
	return authors, publications, err
}

// SearchAuthors performs a full-text prefix search over author names in a
// dataset and returns matching names in id order.
func (d *DB) SearchAuthors(datasetID, query string, limit int) ([]string, error) {
	ftsQuery := prepareAuthorQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := d.db.Query(`
		SELECT name FROM authors_fts
		WHERE authors_fts MATCH ? AND dataset_id = ?
		ORDER BY CAST(author_id AS INTEGER)
		LIMIT ?
	`, "name:"+ftsQuery, datasetID, limit)
	if err != nil {
		return nil, fmt.Errorf("searching authors: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// PublicationsOf returns the publications of an exported author, in
// publication order.
func (d *DB) PublicationsOf(datasetID, name string) ([]reference.Publication, error) {
	rows, err := d.db.Query(`
		SELECT p.id, p.pub_type, p.title, p.year
		FROM publications p
		JOIN publication_authors pa ON pa.dataset_id = p.dataset_id AND pa.publication_id = p.id
		JOIN authors a ON a.dataset_id = pa.dataset_id AND a.id = pa.author_id
		WHERE p.dataset_id = ? AND a.name = ?
		GROUP BY p.id
		ORDER BY p.id
	`, datasetID, name)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	var pubs []reference.Publication
	for rows.Next() {
		var (
			id      int
			typName string
			title   sql.NullString
			p       reference.Publication
		)
		if err := rows.Scan(&id, &typName, &title, &p.Year); err != nil {
			return nil, err
		}
		if p.Type, err = reference.ParsePubType(typName); err != nil {
			return nil, fmt.Errorf("publication %d: %w", id, err)
		}
		if title.Valid {
			p.Title = reference.StringPtr(title.String)
		}
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}

// prepareAuthorQuery prepares an author name for FTS5 search with prefix matching.
// It adds a wildcard (*) to each word so "Tim" matches "Timothy".
func prepareAuthorQuery(author string) string {
	parts := strings.Fields(author)
	if len(parts) == 0 {
		return ""
	}

	var terms []string
	for _, part := range parts {
		escaped := strings.ReplaceAll(part, "\"", "\"\"")
		terms = append(terms, "\""+escaped+"\"*")
	}

	// All words must match
	return "(" + strings.Join(terms, " AND ") + ")"
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
