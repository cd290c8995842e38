package store

import (
	"database/sql"
	"fmt"
)

// Enqueue inserts URLs with state='pending'; existing rows are left
// untouched, matching the resumable-queue contract of the original spec.
func (s *Store) Enqueue(pages map[string]string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("enqueue: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO pages (url, slug) VALUES (?, ?)")
	if err != nil {
		return 0, fmt.Errorf("enqueue: %w", err)
	}
	defer stmt.Close()

	var count int
	for url, slug := range pages {
		res, err := stmt.Exec(url, slug)
		if err != nil {
			return 0, fmt.Errorf("enqueue %s: %w", url, err)
		}
		n, _ := res.RowsAffected()
		count += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("enqueue: %w", err)
	}
	return count, nil
}

// NextToFetch claims up to n rows in state='pending'. Claims are advisory:
// callers select rows by state and rely on the unique constraint on
// pages.url to prevent double-write, not on row locking.
func (s *Store) NextToFetch(n int) ([]Page, error) {
	return s.selectByState(StatePending, n)
}

// NextToParse returns up to n rows whose raw markdown has been fetched but
// has no parsed companies row yet.
func (s *Store) NextToParse(n int) ([]FetchedPage, error) {
	query := `
		SELECT pd.url, p.slug, pd.markdown
		FROM page_data pd
		JOIN pages p ON p.url = pd.url
		LEFT JOIN companies c ON c.slug = p.slug
		WHERE p.state = 'fetched' AND c.slug IS NULL
		ORDER BY pd.url`
	args := []any{}
	if n > 0 {
		query += " LIMIT ?"
		args = append(args, n)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("next to parse: %w", err)
	}
	defer rows.Close()

	var out []FetchedPage
	for rows.Next() {
		var f FetchedPage
		if err := rows.Scan(&f.URL, &f.Slug, &f.Markdown); err != nil {
			return nil, fmt.Errorf("next to parse: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) selectByState(state PageState, n int) ([]Page, error) {
	query := "SELECT url, slug, state, attempts, COALESCE(last_error,'') FROM pages WHERE state = ? ORDER BY url"
	args := []any{state}
	if n > 0 {
		query += " LIMIT ?"
		args = append(args, n)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("select pages by state: %w", err)
	}
	defer rows.Close()

	var out []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.URL, &p.Slug, &p.State, &p.Attempts, &p.LastError); err != nil {
			return nil, fmt.Errorf("select pages by state: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkFetched records a successful fetch and advances the page to
// state='fetched' in one transaction, per the fetcher's write contract.
func (s *Store) MarkFetched(url string, markdown string, httpStatus int, latencyMs int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("mark fetched: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT OR REPLACE INTO page_data (url, markdown, http_status, latency_ms) VALUES (?, ?, ?, ?)`,
		url, markdown, httpStatus, latencyMs,
	)
	if err != nil {
		return fmt.Errorf("mark fetched: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE pages SET state = ?, last_attempt = datetime('now'), attempts = attempts + 1, last_error = NULL WHERE url = ?`,
		StateFetched, url,
	)
	if err != nil {
		return fmt.Errorf("mark fetched: %w", err)
	}

	return tx.Commit()
}

// MarkFailed records a permanent failure. Reachable from any non-terminal
// state; never transitions onward.
func (s *Store) MarkFailed(url string, cause error) error {
	_, err := s.db.Exec(
		`UPDATE pages SET state = ?, last_attempt = datetime('now'), attempts = attempts + 1, last_error = ? WHERE url = ?`,
		StateFailed, cause.Error(), url,
	)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}

// markParsed advances a page to state='parsed' inside the caller's
// transaction; WriteRecords invokes it as its last step. A
// SchemaViolation page never reaches it: WriteRecords marks that page
// failed through MarkFailed instead.
func markParsed(tx *sql.Tx, url string) error {
	_, err := tx.Exec(`UPDATE pages SET state = ? WHERE url = ?`, StateParsed, url)
	return err
}

// MarkPageParsed advances a page to state='parsed' outside of WriteRecords,
// for pages whose content (the partners index) does not produce a
// companies row and so never goes through the upsert-company write path.
func (s *Store) MarkPageParsed(url string) error {
	_, err := s.db.Exec(`UPDATE pages SET state = ? WHERE url = ?`, StateParsed, url)
	if err != nil {
		return fmt.Errorf("mark page parsed: %w", err)
	}
	return nil
}
