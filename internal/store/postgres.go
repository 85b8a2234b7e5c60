package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bilgiconline/isealim/internal/application"
)

// Postgres implements Repository over a pgx connection pool. Change
// notifications are emitted by the table trigger installed in the
// migrations, not by this code.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres repository backed by pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const recordColumns = `id, full_name, email, phone, position, experience,
	expected_salary, availability, other_requests, education, certificates,
	"references", military_status, travel_restriction, kvkk_approval,
	cv_url, status, submitted_at`

func (p *Postgres) Insert(ctx context.Context, rec *application.Record) (string, error) {
	id := uuid.NewString()

	_, err := p.pool.Exec(ctx, `
		INSERT INTO applications (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		id, rec.FullName, rec.Email, rec.Phone, rec.Position, rec.Experience,
		rec.ExpectedSalary, rec.Availability, rec.OtherRequests, rec.Education,
		rec.Certificates, rec.References, string(rec.MilitaryStatus),
		rec.TravelRestriction, rec.KVKKApproval, rec.CVURL, string(rec.Status),
		rec.SubmittedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert application: %w", err)
	}

	rec.ID = id
	return id, nil
}

func (p *Postgres) Get(ctx context.Context, id string) (*application.Record, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM applications WHERE id = $1`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return rec, nil
}

func (p *Postgres) UpdateStatus(ctx context.Context, id string, status application.Status) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE applications SET status = $2 WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]application.Record, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+recordColumns+`
		FROM applications
		ORDER BY submitted_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var recs []application.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return recs, nil
}

func scanRecord(row pgx.Row) (*application.Record, error) {
	var rec application.Record
	var militaryStatus, status string

	err := row.Scan(
		&rec.ID, &rec.FullName, &rec.Email, &rec.Phone, &rec.Position,
		&rec.Experience, &rec.ExpectedSalary, &rec.Availability,
		&rec.OtherRequests, &rec.Education, &rec.Certificates,
		&rec.References, &militaryStatus, &rec.TravelRestriction,
		&rec.KVKKApproval, &rec.CVURL, &status, &rec.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.MilitaryStatus = application.MilitaryStatus(militaryStatus)
	rec.Status = application.Status(status)
	return &rec, nil
}
