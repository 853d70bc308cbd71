package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SBShweta/blood-donation-app/internal/domain"
)

type donationRepository struct {
	pool *pgxpool.Pool
}

func (r *donationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	const query = `
        INSERT INTO donations (id, donor_name, blood_type, location, contact_number, user_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	id := uuid.NewString()
	if err := r.pool.QueryRow(ctx, query,
		id,
		donation.DonorName,
		donation.BloodType,
		donation.Location,
		donation.ContactNumber,
		donation.UserID,
	).Scan(&donation.CreatedAt, &donation.UpdatedAt); err != nil {
		return err
	}
	donation.ID = id
	return nil
}

func (r *donationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Donation, error) {
	const query = `
        SELECT id::text, donor_name, blood_type, location, contact_number, user_id::text, created_at, updated_at
        FROM donations WHERE user_id=$1
        ORDER BY created_at DESC`

	donations := make([]domain.Donation, 0)
	if !validID(userID) {
		return donations, nil
	}

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(
			&d.ID,
			&d.DonorName,
			&d.BloodType,
			&d.Location,
			&d.ContactNumber,
			&d.UserID,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}
