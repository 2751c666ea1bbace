package payroll

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

func (s *Store) ListPayrolls(ctx context.Context, profileID, status string, limit, offset int) ([]Payroll, error) {
	query := `
    SELECT id, profile_id, pay_period_start, pay_period_end, total_hours, hourly_rate,
           gross_pay, deductions, net_pay, status, COALESCE(bank_account_id::text, ''),
           created_at, updated_at
    FROM payroll
    WHERE 1=1
  `
	var args []any
	if profileID != "" {
		args = append(args, profileID)
		query += " AND profile_id = $" + strconv.Itoa(len(args))
	}
	if status != "" {
		args = append(args, status)
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY pay_period_start DESC, created_at DESC"
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

	var payrolls []Payroll
	for rows.Next() {
		var p Payroll
		if err := rows.Scan(&p.ID, &p.ProfileID, &p.PayPeriodStart, &p.PayPeriodEnd, &p.TotalHours,
			&p.HourlyRate, &p.GrossPay, &p.Deductions, &p.NetPay, &p.Status, &p.BankAccountID,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		payrolls = append(payrolls, p)
	}
	return payrolls, rows.Err()
}

func (s *Store) GetPayroll(ctx context.Context, payrollID string) (*Payroll, error) {
	var p Payroll
	err := s.DB.QueryRow(ctx, `
    SELECT id, profile_id, pay_period_start, pay_period_end, total_hours, hourly_rate,
           gross_pay, deductions, net_pay, status, COALESCE(bank_account_id::text, ''),
           created_at, updated_at
    FROM payroll
    WHERE id = $1
  `, payrollID).Scan(&p.ID, &p.ProfileID, &p.PayPeriodStart, &p.PayPeriodEnd, &p.TotalHours,
		&p.HourlyRate, &p.GrossPay, &p.Deductions, &p.NetPay, &p.Status, &p.BankAccountID,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreatePayroll(ctx context.Context, p Payroll) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll (profile_id, pay_period_start, pay_period_end, total_hours, hourly_rate, gross_pay, deductions, net_pay, status, bank_account_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, p.ProfileID, p.PayPeriodStart, p.PayPeriodEnd, p.TotalHours, p.HourlyRate,
		p.GrossPay, p.Deductions, p.NetPay, p.Status, nullIfEmpty(p.BankAccountID)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateAmounts supports payroll correction after the fact; status moves
// through AdvanceStatus only.
func (s *Store) UpdateAmounts(ctx context.Context, payrollID string, totalHours, hourlyRate, grossPay, deductions, netPay float64) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll
    SET total_hours = $2, hourly_rate = $3, gross_pay = $4, deductions = $5, net_pay = $6, updated_at = now()
    WHERE id = $1
  `, payrollID, totalHours, hourlyRate, grossPay, deductions, netPay)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) Status(ctx context.Context, payrollID string) (string, error) {
	var status string
	err := s.DB.QueryRow(ctx, "SELECT status FROM payroll WHERE id = $1", payrollID).Scan(&status)
	if err != nil {
		return "", err
	}
	return status, nil
}

func (s *Store) SetStatus(ctx context.Context, payrollID, status string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "UPDATE payroll SET status = $2, updated_at = now() WHERE id = $1", payrollID, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeletePayroll(ctx context.Context, payrollID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM payroll WHERE id = $1", payrollID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// PayslipData joins the fields the payslip PDF needs.
type PayslipData struct {
	FullName    string
	Email       string
	PeriodStart time.Time
	PeriodEnd   time.Time
	TotalHours  float64
	HourlyRate  float64
	GrossPay    float64
	Deductions  float64
	NetPay      float64
}

func (s *Store) PayslipData(ctx context.Context, payrollID string) (PayslipData, error) {
	var d PayslipData
	err := s.DB.QueryRow(ctx, `
    SELECT pr.full_name, pr.email, p.pay_period_start, p.pay_period_end,
           p.total_hours, p.hourly_rate, p.gross_pay, p.deductions, p.net_pay
    FROM payroll p
    JOIN profiles pr ON p.profile_id = pr.id
    WHERE p.id = $1
  `, payrollID).Scan(&d.FullName, &d.Email, &d.PeriodStart, &d.PeriodEnd,
		&d.TotalHours, &d.HourlyRate, &d.GrossPay, &d.Deductions, &d.NetPay)
	if err != nil {
		return PayslipData{}, err
	}
	return d, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
