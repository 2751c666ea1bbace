package bank

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

func (s *Store) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, COALESCE(profile_id::text, ''), bank_name, account_number,
           COALESCE(bsb_code, ''), account_holder_name, opening_balance, is_primary,
           created_at, updated_at
    FROM bank_accounts
    ORDER BY bank_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.ProfileID, &a.BankName, &a.AccountNumber, &a.BSBCode,
			&a.AccountHolderName, &a.OpeningBalance, &a.IsPrimary, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *Store) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	var a Account
	err := s.DB.QueryRow(ctx, `
    SELECT id, COALESCE(profile_id::text, ''), bank_name, account_number,
           COALESCE(bsb_code, ''), account_holder_name, opening_balance, is_primary,
           created_at, updated_at
    FROM bank_accounts
    WHERE id = $1
  `, accountID).Scan(&a.ID, &a.ProfileID, &a.BankName, &a.AccountNumber, &a.BSBCode,
		&a.AccountHolderName, &a.OpeningBalance, &a.IsPrimary, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a Account) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO bank_accounts (profile_id, bank_name, account_number, bsb_code, account_holder_name, opening_balance, is_primary)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, nullIfEmpty(a.ProfileID), a.BankName, a.AccountNumber, a.BSBCode, a.AccountHolderName, a.OpeningBalance, a.IsPrimary).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateAccount(ctx context.Context, accountID string, a Account) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE bank_accounts
    SET profile_id = $2, bank_name = $3, account_number = $4, bsb_code = $5,
        account_holder_name = $6, opening_balance = $7, is_primary = $8, updated_at = now()
    WHERE id = $1
  `, accountID, nullIfEmpty(a.ProfileID), a.BankName, a.AccountNumber, a.BSBCode, a.AccountHolderName, a.OpeningBalance, a.IsPrimary)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteAccount(ctx context.Context, accountID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM bank_accounts WHERE id = $1", accountID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListTransactions runs a fresh ledger query ordered by date descending,
// creation order descending as tie-break. The ordering is for display;
// balance folds do not depend on it.
func (s *Store) ListTransactions(ctx context.Context, filter Filter, limit, offset int) ([]Transaction, error) {
	query := `
    SELECT id, COALESCE(bank_account_id::text, ''), description, amount, type, category, date,
           COALESCE(client_id::text, ''), COALESCE(project_id::text, ''), COALESCE(profile_id::text, ''),
           created_at, updated_at
    FROM bank_transactions
    WHERE 1=1
  `
	var args []any
	if filter.BankAccountID != "" {
		args = append(args, filter.BankAccountID)
		query += " AND bank_account_id = $" + strconv.Itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += " AND type = $" + strconv.Itoa(len(args))
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

	var transactions []Transaction
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(&tx.ID, &tx.BankAccountID, &tx.Description, &tx.Amount, &tx.Type, &tx.Category,
			&tx.Date, &tx.ClientID, &tx.ProjectID, &tx.ProfileID, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func (s *Store) CreateTransaction(ctx context.Context, tx Transaction) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO bank_transactions (bank_account_id, description, amount, type, category, date, client_id, project_id, profile_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, nullIfEmpty(tx.BankAccountID), tx.Description, tx.Amount, tx.Type, tx.Category, tx.Date,
		nullIfEmpty(tx.ClientID), nullIfEmpty(tx.ProjectID), nullIfEmpty(tx.ProfileID)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, transactionID string, tx Transaction) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE bank_transactions
    SET bank_account_id = $2, description = $3, amount = $4, type = $5, category = $6, date = $7,
        client_id = $8, project_id = $9, profile_id = $10, updated_at = now()
    WHERE id = $1
  `, transactionID, nullIfEmpty(tx.BankAccountID), tx.Description, tx.Amount, tx.Type, tx.Category, tx.Date,
		nullIfEmpty(tx.ClientID), nullIfEmpty(tx.ProjectID), nullIfEmpty(tx.ProfileID))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, transactionID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM bank_transactions WHERE id = $1", transactionID)
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
