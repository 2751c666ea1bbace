package core

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

func (s *Store) ListProfiles(ctx context.Context, activeOnly bool) ([]Profile, error) {
	query := `
    SELECT id, full_name, email, COALESCE(phone, ''), role,
           COALESCE(employment_type, ''), hourly_rate, salary, is_active,
           start_date, created_at, updated_at
    FROM profiles
  `
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY full_name"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Role, &p.EmploymentType,
			&p.HourlyRate, &p.Salary, &p.IsActive, &p.StartDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *Store) GetProfile(ctx context.Context, profileID string) (*Profile, error) {
	var p Profile
	err := s.DB.QueryRow(ctx, `
    SELECT id, full_name, email, COALESCE(phone, ''), role,
           COALESCE(employment_type, ''), hourly_rate, salary, is_active,
           start_date, created_at, updated_at
    FROM profiles
    WHERE id = $1
  `, profileID).Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Role, &p.EmploymentType,
		&p.HourlyRate, &p.Salary, &p.IsActive, &p.StartDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProfile(ctx context.Context, p Profile, passwordHash string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO profiles (full_name, email, phone, role, employment_type, hourly_rate, salary, is_active, start_date, password_hash)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, p.FullName, p.Email, p.Phone, p.Role, p.EmploymentType, p.HourlyRate, p.Salary, p.IsActive, p.StartDate, passwordHash).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateProfile(ctx context.Context, profileID string, p Profile) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE profiles
    SET full_name = $2, email = $3, phone = $4, role = $5, employment_type = $6,
        hourly_rate = $7, salary = $8, is_active = $9, start_date = $10, updated_at = now()
    WHERE id = $1
  `, profileID, p.FullName, p.Email, p.Phone, p.Role, p.EmploymentType, p.HourlyRate, p.Salary, p.IsActive, p.StartDate)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeactivateProfile(ctx context.Context, profileID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "UPDATE profiles SET is_active = FALSE, updated_at = now() WHERE id = $1", profileID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListClients(ctx context.Context, status string) ([]Client, error) {
	query := `
    SELECT id, name, email, COALESCE(phone, ''), company, status, created_at, updated_at
    FROM clients
  `
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY company"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *Store) CreateClient(ctx context.Context, c Client) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO clients (name, email, phone, company, status)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, c.Name, c.Email, c.Phone, c.Company, c.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateClient(ctx context.Context, clientID string, c Client) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE clients
    SET name = $2, email = $3, phone = $4, company = $5, status = $6, updated_at = now()
    WHERE id = $1
  `, clientID, c.Name, c.Email, c.Phone, c.Company, c.Status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteClient(ctx context.Context, clientID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM clients WHERE id = $1", clientID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListProjects(ctx context.Context, status string) ([]Project, error) {
	query := `
    SELECT id, name, COALESCE(description, ''), client_id, status, start_date, end_date, budget, created_at, updated_at
    FROM projects
  `
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ClientID, &p.Status, &p.StartDate, &p.EndDate, &p.Budget, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) CreateProject(ctx context.Context, p Project) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO projects (name, description, client_id, status, start_date, end_date, budget)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, p.Name, p.Description, p.ClientID, p.Status, p.StartDate, p.EndDate, p.Budget).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateProject(ctx context.Context, projectID string, p Project) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE projects
    SET name = $2, description = $3, client_id = $4, status = $5, start_date = $6, end_date = $7, budget = $8, updated_at = now()
    WHERE id = $1
  `, projectID, p.Name, p.Description, p.ClientID, p.Status, p.StartDate, p.EndDate, p.Budget)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteProject(ctx context.Context, projectID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM projects WHERE id = $1", projectID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
