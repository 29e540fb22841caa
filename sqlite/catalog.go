package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sdglab/harvest"
)

// Compile-time interface verification.
var _ harvest.CatalogService = (*CatalogService)(nil)

// CatalogService implements harvest.CatalogService using SQLite.
type CatalogService struct {
	db *DB
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *DB) *CatalogService {
	return &CatalogService{db: db}
}

// CreateRun inserts a new run, assigning its ID and start time.
func (s *CatalogService) CreateRun(ctx context.Context, run *harvest.Run) error {
	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source, start_page, end_page, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.Pages.Start, run.Pages.End,
		run.StartedAt.Format(time.RFC3339))

	return err
}

// FinishRun stores a run's final counters and finish time.
func (s *CatalogService) FinishRun(ctx context.Context, run *harvest.Run) error {
	run.FinishedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, saved = ?, failed = ?
		WHERE id = ?
	`, run.FinishedAt.Format(time.RFC3339), run.Saved, run.Failed, run.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return harvest.Errorf(harvest.ENOTFOUND, "run not found")
	}
	return nil
}

// CreatePublication records one saved publication under a run.
func (s *CatalogService) CreatePublication(ctx context.Context, runID string, pub *harvest.Publication) error {
	if err := pub.Validate(); err != nil {
		return err
	}

	files, err := json.Marshal(pub.Files)
	if err != nil {
		return fmt.Errorf("failed to encode files: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO publications (id, run_id, source_url, title, type, year, labels, files, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), runID, pub.Source, pub.Title, pub.Type, pub.Year,
		encodeLabels(pub.Labels), string(files), time.Now().UTC().Format(time.RFC3339))

	return err
}

// FindPublications retrieves catalogued publications matching the filter,
// oldest first.
func (s *CatalogService) FindPublications(ctx context.Context, filter harvest.PublicationFilter) ([]*harvest.Publication, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT source_url, title, type, year, labels, files FROM publications WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Year != nil {
		query.WriteString(" AND year = ?")
		args = append(args, *filter.Year)
	}
	if filter.Label != nil {
		query.WriteString(" AND labels LIKE ?")
		args = append(args, fmt.Sprintf("%%,%d,%%", *filter.Label))
	}

	// rowid breaks ties between records catalogued within the same second.
	query.WriteString(" ORDER BY created_at ASC, rowid ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite rejects OFFSET without LIMIT; -1 means unlimited.
		query.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pubs []*harvest.Publication
	for rows.Next() {
		var pub harvest.Publication
		var labels, files string

		if err := rows.Scan(&pub.Source, &pub.Title, &pub.Type, &pub.Year, &labels, &files); err != nil {
			return nil, err
		}

		pub.Labels, err = decodeLabels(labels)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(files), &pub.Files); err != nil {
			return nil, fmt.Errorf("failed to decode files: %w", err)
		}

		pubs = append(pubs, &pub)
	}

	return pubs, rows.Err()
}

// encodeLabels stores labels with leading and trailing commas (",3,13,") so
// a single-label filter can match with LIKE '%,N,%' without tokenizing.
func encodeLabels(labels []int) string {
	if len(labels) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte(',')
	for _, l := range labels {
		b.WriteString(strconv.Itoa(l))
		b.WriteByte(',')
	}
	return b.String()
}

func decodeLabels(s string) ([]int, error) {
	trimmed := strings.Trim(s, ",")
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Split(trimmed, ",")
	labels := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse label %q: %w", p, err)
		}
		labels = append(labels, n)
	}
	return labels, nil
}
