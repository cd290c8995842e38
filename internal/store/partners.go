package store

import "fmt"

// SavePartners upserts partner rows scraped from the catalog's /people
// index page, by slug.
func (s *Store) SavePartners(rows []PartnerRow) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("save partners: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO partners (slug, url, name, title, bio) VALUES (?,?,?,?,?)
		 ON CONFLICT(slug) DO UPDATE SET
		   url=excluded.url, name=excluded.name, title=excluded.title, bio=excluded.bio`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for _, r := range rows {
		if _, err := stmt.Exec(r.Slug, r.URL, r.Name, nullableStr(r.Title), nullableStr(r.Bio)); err != nil {
			return count, fmt.Errorf("save partner %s: %w", r.Slug, err)
		}
		count++
	}

	return count, tx.Commit()
}

func (s *Store) FetchPartners() ([]PartnerRow, error) {
	rows, err := s.db.Query("SELECT slug, url, name, COALESCE(title,''), COALESCE(bio,'') FROM partners")
	if err != nil {
		return nil, fmt.Errorf("fetch partners: %w", err)
	}
	defer rows.Close()

	var out []PartnerRow
	for rows.Next() {
		var p PartnerRow
		if err := rows.Scan(&p.Slug, &p.URL, &p.Name, &p.Title, &p.Bio); err != nil {
			return nil, fmt.Errorf("fetch partners: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SaveCompanyPartners inserts newly resolved company<->partner matches.
// Append-only: a (company_slug, partner_slug) pair already present is left
// as it is. The table does not stop a second partner for one company; the
// callers only pass companies without a match: reconcilePartners takes
// FetchUnmatchedPartners results, and processCompanyPage only sees pages
// NextToParse returns, whose company has no companies row yet.
func (s *Store) SaveCompanyPartners(rows []CompanyPartnerRow) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("save company partners: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT OR IGNORE INTO company_partners (company_slug, partner_slug, match_method) VALUES (?,?,?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for _, r := range rows {
		res, err := stmt.Exec(r.CompanySlug, r.PartnerSlug, r.MatchMethod)
		if err != nil {
			return count, fmt.Errorf("save company partner %s: %w", r.CompanySlug, err)
		}
		n, _ := res.RowsAffected()
		count += int(n)
	}

	return count, tx.Commit()
}

// FetchScrapedMarkdown returns every slug with a fetched page_data row, for
// the /people/<slug> URL-match pass over a company's raw markdown.
func (s *Store) FetchScrapedMarkdown() (map[string]string, error) {
	rows, err := s.db.Query("SELECT slug, markdown FROM page_data pd JOIN pages p ON p.url = pd.url")
	if err != nil {
		return nil, fmt.Errorf("fetch scraped markdown: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var slug, md string
		if err := rows.Scan(&slug, &md); err != nil {
			return nil, fmt.Errorf("fetch scraped markdown: %w", err)
		}
		out[slug] = md
	}
	return out, rows.Err()
}

// FetchUnmatchedPartners returns (slug, partner meta value) pairs for
// companies with a partner field but no resolved company_partners row,
// so matching can be retried idempotently on subsequent `process` runs.
func (s *Store) FetchUnmatchedPartners() ([][2]string, error) {
	rows, err := s.db.Query(
		`SELECT c.slug, c.partner
		 FROM companies c
		 WHERE c.partner IS NOT NULL AND c.partner != ''
		   AND NOT EXISTS (SELECT 1 FROM company_partners cp WHERE cp.company_slug = c.slug)`,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch unmatched partners: %w", err)
	}
	defer rows.Close()

	var out [][2]string
	for rows.Next() {
		var slug, partner string
		if err := rows.Scan(&slug, &partner); err != nil {
			return nil, fmt.Errorf("fetch unmatched partners: %w", err)
		}
		out = append(out, [2]string{slug, partner})
	}
	return out, rows.Err()
}
