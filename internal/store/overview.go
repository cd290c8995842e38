package store

import (
	"fmt"
	"strings"
)

// FetchOverview is the read-only tabular view backing `catalog-cli
// overview`; status and batch filter independently, both optional.
func (s *Store) FetchOverview(status, batch string, limit int) ([]OverviewRow, error) {
	var conditions []string
	var args []any

	if status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, status)
	}
	if batch != "" {
		conditions = append(conditions, "batch_season = ?")
		args = append(args, batch)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(
		`SELECT c.slug, COALESCE(c.name,''), COALESCE(c.batch_season,''), COALESCE(c.status,''),
		        COALESCE(c.team_size,0), COALESCE(c.location,''), COALESCE(c.partner,''),
		        COALESCE(c.tags,''), (SELECT COUNT(*) FROM company_jobs j WHERE j.slug = c.slug)
		 FROM companies c%s
		 ORDER BY c.batch_year DESC, c.slug
		 LIMIT ?`, where,
	)
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch overview: %w", err)
	}
	defer rows.Close()

	var out []OverviewRow
	for rows.Next() {
		var o OverviewRow
		if err := rows.Scan(&o.Slug, &o.Name, &o.Batch, &o.Status, &o.TeamSize, &o.Location, &o.Partner, &o.Tags, &o.JobCount); err != nil {
			return nil, fmt.Errorf("fetch overview: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// FetchStats returns the queue counters backing `catalog-cli stats`.
func (s *Store) FetchStats() (Stats, error) {
	var st Stats

	if err := s.db.QueryRow("SELECT COUNT(*) FROM pages").Scan(&st.Total); err != nil {
		return st, fmt.Errorf("fetch stats: %w", err)
	}
	counts := map[string]*int{
		string(StatePending): &st.Pending,
		string(StateFetched): &st.Fetched,
		string(StateParsed):  &st.Parsed,
		string(StateFailed):  &st.Failed,
	}
	rows, err := s.db.Query("SELECT state, COUNT(*) FROM pages GROUP BY state")
	if err != nil {
		return st, fmt.Errorf("fetch stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return st, fmt.Errorf("fetch stats: %w", err)
		}
		if ptr, ok := counts[state]; ok {
			*ptr = n
		}
	}
	if err := rows.Err(); err != nil {
		return st, fmt.Errorf("fetch stats: %w", err)
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM companies").Scan(&st.Companies); err != nil {
		return st, fmt.Errorf("fetch stats: %w", err)
	}

	return st, nil
}
