package roster

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListEntries(ctx context.Context, profileID string, from, to time.Time, limit, offset int) ([]Entry, error) {
	query := `
    SELECT id, profile_id, COALESCE(client_id::text, ''), COALESCE(project_id::text, ''),
           date, start_time, end_time, total_hours, status, is_locked,
           COALESCE(notes, ''), created_at, updated_at
    FROM rosters
    WHERE 1=1
  `
	var args []any
	if profileID != "" {
		args = append(args, profileID)
		query += " AND profile_id = $" + strconv.Itoa(len(args))
	}
	if !from.IsZero() {
		args = append(args, from)
		query += " AND date >= $" + strconv.Itoa(len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += " AND date <= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY date DESC, start_time"
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
		args = append(args, offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.ClientID, &e.ProjectID, &e.Date,
			&e.StartTime, &e.EndTime, &e.TotalHours, &e.Status, &e.IsLocked, &e.Notes,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetEntry(ctx context.Context, entryID string) (*Entry, error) {
	var e Entry
	err := s.DB.QueryRow(ctx, `
    SELECT id, profile_id, COALESCE(client_id::text, ''), COALESCE(project_id::text, ''),
           date, start_time, end_time, total_hours, status, is_locked,
           COALESCE(notes, ''), created_at, updated_at
    FROM rosters
    WHERE id = $1
  `, entryID).Scan(&e.ID, &e.ProfileID, &e.ClientID, &e.ProjectID, &e.Date,
		&e.StartTime, &e.EndTime, &e.TotalHours, &e.Status, &e.IsLocked, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) CreateEntry(ctx context.Context, e Entry) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO rosters (profile_id, client_id, project_id, date, start_time, end_time, total_hours, status, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, e.ProfileID, nullIfEmpty(e.ClientID), nullIfEmpty(e.ProjectID), e.Date, e.StartTime, e.EndTime, e.TotalHours, e.Status, e.Notes).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateEntry mutates shift details only; the lock guard runs before
// this is called.
func (s *Store) UpdateEntry(ctx context.Context, entryID string, e Entry) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE rosters
    SET profile_id = $2, client_id = $3, project_id = $4, date = $5, start_time = $6,
        end_time = $7, total_hours = $8, notes = $9, updated_at = now()
    WHERE id = $1
  `, entryID, e.ProfileID, nullIfEmpty(e.ClientID), nullIfEmpty(e.ProjectID), e.Date, e.StartTime, e.EndTime, e.TotalHours, e.Notes)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) SetStatus(ctx context.Context, entryID, status string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "UPDATE rosters SET status = $2, updated_at = now() WHERE id = $1", entryID, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) SetLocked(ctx context.Context, entryID string, locked bool) (bool, error) {
	tag, err := s.DB.Exec(ctx, "UPDATE rosters SET is_locked = $2, updated_at = now() WHERE id = $1", entryID, locked)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteEntry(ctx context.Context, entryID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM rosters WHERE id = $1", entryID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
