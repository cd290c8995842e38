package store

import (
	"database/sql"
	"fmt"
)

// ErrSchemaViolation marks a page failed instead of silently dropping the
// write, per the SchemaViolation entry in the error taxonomy: a founder or
// link referencing a company that failed to extract is a programmer error,
// not a data quality issue.
type ErrSchemaViolation struct {
	URL    string
	Reason string
}

func (e *ErrSchemaViolation) Error() string {
	return fmt.Sprintf("schema violation on %s: %s", e.URL, e.Reason)
}

// WriteRecords persists one page's extracted records in a single
// transaction: upsert companies by slug, delete-then-insert the per-slug
// child tables, then advance pages.state to 'parsed'. The transaction is
// opened with database/sql's default Begin, not BEGIN IMMEDIATE.
func (s *Store) WriteRecords(url string, rec PageRecords) error {
	if rec.Company == nil {
		err := &ErrSchemaViolation{URL: url, Reason: "no company row extracted"}
		if markErr := s.MarkFailed(url, err); markErr != nil {
			return fmt.Errorf("%w (also failed to mark page failed: %v)", err, markErr)
		}
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	defer tx.Rollback()

	if err := upsertCompany(tx, *rec.Company); err != nil {
		return fmt.Errorf("write records: %w", err)
	}

	slug := rec.Company.Slug
	if err := rewriteChildTables(tx, slug, rec); err != nil {
		return fmt.Errorf("write records: %w", err)
	}

	if err := rewriteSections(tx, url, slug, rec.Sections); err != nil {
		return fmt.Errorf("write records: %w", err)
	}

	if err := markParsed(tx, url); err != nil {
		return fmt.Errorf("write records: %w", err)
	}

	return tx.Commit()
}

func upsertCompany(tx *sql.Tx, c CompanyRow) error {
	_, err := tx.Exec(
		`INSERT INTO companies
		   (slug, name, tagline, batch_season, batch_year, status, location,
		    founded_year, team_size, partner, homepage, is_hiring, source_url, tags)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		 ON CONFLICT(slug) DO UPDATE SET
		   name=excluded.name, tagline=excluded.tagline,
		   batch_season=excluded.batch_season, batch_year=excluded.batch_year,
		   status=excluded.status, location=excluded.location,
		   founded_year=excluded.founded_year, team_size=excluded.team_size,
		   partner=excluded.partner, homepage=excluded.homepage,
		   is_hiring=excluded.is_hiring, source_url=excluded.source_url,
		   tags=excluded.tags`,
		c.Slug, nullableStr(c.Name), nullableStr(c.Tagline), nullableStr(c.BatchSeason),
		nullableInt(c.BatchYear), nullableStr(c.Status), nullableStr(c.Location),
		nullableInt(c.FoundedYear), nullableInt(c.TeamSize), nullableStr(c.Partner),
		nullableStr(c.Homepage), c.IsHiring, c.SourceURL, nullableStr(c.Tags),
	)
	return err
}

// rewriteChildTables implements the delete-then-insert idempotent-rewrite
// policy: every re-parse of a slug fully replaces its child rows rather
// than merging, which is what makes re-parsing from page_data alone
// reproduce parsed tables exactly.
func rewriteChildTables(tx *sql.Tx, slug string, rec PageRecords) error {
	for _, table := range []string{"company_links", "news", "company_jobs", "meeting_links", "founders"} {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE slug = ?", table), slug); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	founderIDs := map[string]int64{}
	fstmt, err := tx.Prepare(
		`INSERT INTO founders (slug, name, title, bio, is_active, linkedin, twitter, github, email)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return err
	}
	defer fstmt.Close()
	for _, f := range rec.Founders {
		res, err := fstmt.Exec(
			slug, f.Name, nullableStr(f.Title), nullableStr(f.Bio), f.IsActive,
			nullableStr(f.LinkedIn), nullableStr(f.Twitter), nullableStr(f.GitHub), nullableStr(f.Email),
		)
		if err != nil {
			return fmt.Errorf("insert founder %s: %w", f.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		founderIDs[f.Name] = id
	}

	nstmt, err := tx.Prepare(`INSERT INTO news (slug, url, title, published_date) VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer nstmt.Close()
	for _, n := range rec.News {
		if _, err := nstmt.Exec(slug, n.URL, n.Title, nullableStr(n.PublishedDate)); err != nil {
			return fmt.Errorf("insert news %s: %w", n.URL, err)
		}
	}

	jstmt, err := tx.Prepare(`INSERT INTO company_jobs (slug, url, title, location, experience) VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer jstmt.Close()
	for _, j := range rec.Jobs {
		if _, err := jstmt.Exec(slug, j.URL, j.Title, nullableStr(j.Location), nullableStr(j.Experience)); err != nil {
			return fmt.Errorf("insert job %s: %w", j.URL, err)
		}
	}

	lstmt, err := tx.Prepare(
		`INSERT INTO company_links (slug, url, anchor_text, domain, classification, founder_id) VALUES (?,?,?,?,?,?)`,
	)
	if err != nil {
		return err
	}
	defer lstmt.Close()
	for _, l := range rec.Links {
		var founderID any
		if id, ok := founderIDs[l.FounderName]; ok {
			founderID = id
		}
		if _, err := lstmt.Exec(slug, l.URL, nullableStr(l.AnchorText), l.Domain, l.Classification, founderID); err != nil {
			return fmt.Errorf("insert link %s: %w", l.URL, err)
		}
	}

	mstmt, err := tx.Prepare(`INSERT INTO meeting_links (slug, url, platform) VALUES (?,?,?)`)
	if err != nil {
		return err
	}
	defer mstmt.Close()
	for _, m := range rec.Meetings {
		if _, err := mstmt.Exec(slug, m.URL, m.Platform); err != nil {
			return fmt.Errorf("insert meeting link %s: %w", m.URL, err)
		}
	}

	return nil
}

func rewriteSections(tx *sql.Tx, url, slug string, sections []SectionRow) error {
	if _, err := tx.Exec("DELETE FROM company_sections WHERE url = ?", url); err != nil {
		return fmt.Errorf("clear sections: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO company_sections (url, slug, section_kind, ord, json_blob) VALUES (?,?,?,?,?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sec := range sections {
		if _, err := stmt.Exec(url, slug, sec.SectionKind, sec.Ord, sec.JSONBlob); err != nil {
			return fmt.Errorf("insert section %s#%d: %w", sec.SectionKind, sec.Ord, err)
		}
	}
	return nil
}

func nullableStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
