// README: Rider store backed by PostgreSQL.
package rider

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("rider not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) FindByUUID(ctx context.Context, uuid string) (*Rider, error) {
	row := s.db.QueryRow(ctx, `
		SELECT uuid, access_token, first_name, last_name, email, picture,
		       promo_code, emergency_contact, created_at, updated_at
		FROM riders
		WHERE uuid = $1`, uuid,
	)

	var r Rider
	var email, picture, promo, contact sql.NullString
	err := row.Scan(
		&r.UUID, &r.AccessToken, &r.FirstName, &r.LastName, &email, &picture,
		&promo, &contact, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.Email = email.String
	r.Picture = picture.String
	r.PromoCode = promo.String
	r.EmergencyContact = contact.String
	return &r, nil
}

// Upsert inserts the rider or refreshes the provider-owned fields, keeping the
// locally registered emergency contact.
func (s *Store) Upsert(ctx context.Context, r *Rider) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO riders (
			uuid, access_token, first_name, last_name, email, picture,
			promo_code, emergency_contact, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NOW(), NOW())
		ON CONFLICT (uuid) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			picture = EXCLUDED.picture,
			promo_code = EXCLUDED.promo_code,
			updated_at = NOW()`,
		r.UUID, r.AccessToken, r.FirstName, r.LastName,
		nullable(r.Email), nullable(r.Picture), nullable(r.PromoCode),
		r.EmergencyContact,
	)
	return err
}

func (s *Store) SetEmergencyContact(ctx context.Context, uuid, contact string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE riders SET emergency_contact = $1, updated_at = NOW()
		WHERE uuid = $2`, contact, uuid,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
