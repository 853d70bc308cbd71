package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/repository"
)

const requestColumns = `id::text, requester_name, blood_type, hospital, contact_number, status, user_id::text, created_at, updated_at`

type bloodRequestRepository struct {
	pool *pgxpool.Pool
}

func (r *bloodRequestRepository) Create(ctx context.Context, request *domain.BloodRequest) error {
	const query = `
        INSERT INTO blood_requests (id, requester_name, blood_type, hospital, contact_number, status, user_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`

	id := uuid.NewString()
	if err := r.pool.QueryRow(ctx, query,
		id,
		request.RequesterName,
		request.BloodType,
		request.Hospital,
		request.ContactNumber,
		request.Status,
		request.UserID,
	).Scan(&request.CreatedAt, &request.UpdatedAt); err != nil {
		return err
	}
	request.ID = id
	return nil
}

func (r *bloodRequestRepository) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	req, err := scanRequest(r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM blood_requests WHERE id=$1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return req, nil
}

func (r *bloodRequestRepository) List(ctx context.Context) ([]domain.BloodRequest, error) {
	return r.query(ctx, `SELECT `+requestColumns+` FROM blood_requests`)
}

func (r *bloodRequestRepository) ListByUser(ctx context.Context, userID string) ([]domain.BloodRequest, error) {
	if !validID(userID) {
		return make([]domain.BloodRequest, 0), nil
	}
	return r.query(ctx, `SELECT `+requestColumns+` FROM blood_requests WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *bloodRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.BloodRequest, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	const query = `
        UPDATE blood_requests SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + requestColumns

	req, err := scanRequest(r.pool.QueryRow(ctx, query, status, id))
	if err != nil {
		return nil, mapError(err)
	}
	return req, nil
}

func (r *bloodRequestRepository) query(ctx context.Context, query string, args ...any) ([]domain.BloodRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]domain.BloodRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func scanRequest(row pgx.Row) (*domain.BloodRequest, error) {
	var req domain.BloodRequest
	if err := row.Scan(
		&req.ID,
		&req.RequesterName,
		&req.BloodType,
		&req.Hospital,
		&req.ContactNumber,
		&req.Status,
		&req.UserID,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}
