package timesheet

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListWorkingHours(ctx context.Context, filter Filter, limit, offset int) ([]WorkingHour, error) {
	query := `
    SELECT id, profile_id, COALESCE(client_id::text, ''), COALESCE(project_id::text, ''),
           date, start_time, end_time, total_hours, actual_hours, payable_amount, status,
           COALESCE(roster_id::text, ''), created_at, updated_at
    FROM working_hours
    WHERE 1=1
  `
	var args []any
	if filter.ProfileID != "" {
		args = append(args, filter.ProfileID)
		query += " AND profile_id = $" + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	if filter.RosterID != "" {
		args = append(args, filter.RosterID)
		query += " AND roster_id = $" + strconv.Itoa(len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += " AND date >= $" + strconv.Itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += " AND date <= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY date DESC, created_at DESC"
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

	var hours []WorkingHour
	for rows.Next() {
		var wh WorkingHour
		if err := rows.Scan(&wh.ID, &wh.ProfileID, &wh.ClientID, &wh.ProjectID, &wh.Date,
			&wh.StartTime, &wh.EndTime, &wh.TotalHours, &wh.ActualHours, &wh.PayableAmount,
			&wh.Status, &wh.RosterID, &wh.CreatedAt, &wh.UpdatedAt); err != nil {
			return nil, err
		}
		hours = append(hours, wh)
	}
	return hours, rows.Err()
}

func (s *Store) CreateWorkingHour(ctx context.Context, wh WorkingHour) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO working_hours (profile_id, client_id, project_id, date, start_time, end_time, total_hours, actual_hours, payable_amount, status, roster_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING id
  `, wh.ProfileID, nullIfEmpty(wh.ClientID), nullIfEmpty(wh.ProjectID), wh.Date, wh.StartTime, wh.EndTime,
		wh.TotalHours, wh.ActualHours, wh.PayableAmount, wh.Status, nullIfEmpty(wh.RosterID)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateWorkingHour(ctx context.Context, workingHourID string, wh WorkingHour) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE working_hours
    SET profile_id = $2, client_id = $3, project_id = $4, date = $5, start_time = $6, end_time = $7,
        total_hours = $8, actual_hours = $9, payable_amount = $10, roster_id = $11, updated_at = now()
    WHERE id = $1
  `, workingHourID, wh.ProfileID, nullIfEmpty(wh.ClientID), nullIfEmpty(wh.ProjectID), wh.Date, wh.StartTime, wh.EndTime,
		wh.TotalHours, wh.ActualHours, wh.PayableAmount, nullIfEmpty(wh.RosterID))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetStatus records the approval decision taken by the review workflow.
func (s *Store) SetStatus(ctx context.Context, workingHourID, status string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "UPDATE working_hours SET status = $2, updated_at = now() WHERE id = $1", workingHourID, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteWorkingHour(ctx context.Context, workingHourID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM working_hours WHERE id = $1", workingHourID)
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
