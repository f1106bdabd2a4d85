package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridianadvisory/site-backend/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, req *domain.BookingIntakeReq) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Confirm(ctx context.Context, id, confirmedBy string) (*domain.Booking, error)
	List(ctx context.Context, limit, offset int, status *domain.BookingStatus) ([]domain.Booking, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingCols = `id, status, source, confirmed_by,
first_name, last_name, email, phone, company, job_title,
consultation_type, purpose, preferred_date, preferred_time,
alternative_date, alternative_time, timezone, meeting_mode,
agenda, participants, special_requests, newsletter,
created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.Status, &b.Source, &b.ConfirmedBy,
		&b.FirstName, &b.LastName, &b.Email, &b.Phone, &b.Company, &b.JobTitle,
		&b.ConsultationType, &b.Purpose, &b.PreferredDate, &b.PreferredTime,
		&b.AlternativeDate, &b.AlternativeTime, &b.Timezone, &b.MeetingMode,
		&b.Agenda, &b.Participants, &b.SpecialRequests, &b.Newsletter,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, req *domain.BookingIntakeReq) (*domain.Booking, error) {
	const q = `INSERT INTO bookings (
		id, status, source,
		first_name, last_name, email, phone, company, job_title,
		consultation_type, purpose, preferred_date, preferred_time,
		alternative_date, alternative_time, timezone, meeting_mode,
		agenda, participants, special_requests, newsletter
	) VALUES ($1,'pending_confirmation',$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	RETURNING ` + bookingCols

	participants := req.Participants
	if participants < 1 {
		participants = 1
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanBooking(r.pool.QueryRow(ctx, q,
		uuid.NewString(), domain.BookingSource,
		req.FirstName, req.LastName, req.Email, req.Phone, req.Company, req.JobTitle,
		req.ConsultationType, req.Purpose, req.PreferredDate, req.PreferredTime,
		req.AlternativeDate, req.AlternativeTime, req.Timezone, req.MeetingMode,
		req.Agenda, participants, req.SpecialRequests, req.Newsletter,
	))
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanBooking(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return b, err
}

// Confirm stamps the booking confirmed. There is deliberately no status guard:
// confirming twice rewrites the same row, matching the established admin flow.
func (r *bookingRepository) Confirm(ctx context.Context, id, confirmedBy string) (*domain.Booking, error) {
	const q = `UPDATE bookings
		SET status='confirmed', confirmed_by=$2, updated_at=now()
		WHERE id=$1
		RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanBooking(r.pool.QueryRow(ctx, q, id, confirmedBy))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return b, err
}

func (r *bookingRepository) List(ctx context.Context, limit, offset int, status *domain.BookingStatus) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := `SELECT ` + bookingCols + ` FROM bookings`
	args := []any{}
	if status != nil {
		q += ` WHERE status=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, *status, limit, offset)
	} else {
		q += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
