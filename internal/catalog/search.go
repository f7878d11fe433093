// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for catalog searches.
type QueryOptions struct {
	// Query is an FTS5 match expression over title and abstract.
	Query string

	// Year filters by publication year. Zero matches every year.
	Year int

	// Source filters by source_x value.
	Source string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Year == 0 && q.Source == ""
}

// Result is one matching paper.
type Result struct {
	CordUID           string `json:"cord_uid,omitempty"`
	Title             string `json:"title"`
	Journal           string `json:"journal"`
	Source            string `json:"source_x"`
	PublishTime       string `json:"publish_time,omitempty"`
	PublishYear       int    `json:"pub_year,omitempty"`
	AbstractWordCount int    `json:"abstract_word_count"`
}

// Search queries the catalog. Full-text queries are ranked by relevance;
// structured-only queries are ordered by year, then title.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.cord_uid, p.title, p.journal, p.source, p.publish_time, p.pub_year, p.abstract_word_count
			FROM papers_fts
			JOIN papers p ON p.rowid = papers_fts.rowid
			WHERE papers_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT p.cord_uid, p.title, p.journal, p.source, p.publish_time, p.pub_year, p.abstract_word_count
			FROM papers p
			WHERE 1=1`)
	}

	if opts.Year != 0 {
		qb.WriteString(` AND p.pub_year = ?`)
		args = append(args, opts.Year)
	}
	if opts.Source != "" {
		qb.WriteString(` AND p.source = ?`)
		args = append(args, opts.Source)
	}

	if useFTS {
		qb.WriteString(` ORDER BY papers_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.pub_year, p.title, p.rowid`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r           Result
			id          sql.NullString
			publishTime sql.NullString
			year        sql.NullInt64
		)
		if err := rows.Scan(&id, &r.Title, &r.Journal, &r.Source, &publishTime, &year, &r.AbstractWordCount); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.CordUID = id.String
		r.PublishTime = publishTime.String
		r.PublishYear = int(year.Int64)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of papers in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}
