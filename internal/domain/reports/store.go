package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) AccountCount(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM bank_accounts").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) PayrollTotals(ctx context.Context) (hours, gross, deductions, net float64, count int, err error) {
	err = s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(total_hours),0), COALESCE(SUM(gross_pay),0),
           COALESCE(SUM(deductions),0), COALESCE(SUM(net_pay),0), COUNT(1)
    FROM payroll
  `).Scan(&hours, &gross, &deductions, &net, &count)
	return hours, gross, deductions, net, count, err
}

func (s *Store) ActiveProfileCount(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM profiles WHERE is_active = TRUE").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) ActiveProjectCount(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM projects WHERE status = 'active'").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) PendingWorkingHourCount(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM working_hours WHERE status = 'pending'").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) PendingRosterCount(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM rosters WHERE status = 'pending'").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
