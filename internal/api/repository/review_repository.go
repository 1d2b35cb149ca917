package repository

import (
	"context"
	"ctchen222/Book-Review/internal/api/models"
	"ctchen222/Book-Review/internal/db"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ReviewRepository defines the interface for review data operations.
// Create does not prevent a user from reviewing the same book twice.
type ReviewRepository interface {
	ListByBook(ctx context.Context, bookID int64) ([]models.ReviewWithAuthor, error)
	AverageRating(ctx context.Context, bookID int64) (avg float64, ok bool, err error)
	Count(ctx context.Context, bookID int64) (int, error)
	HasReviewed(ctx context.Context, userID, bookID int64) (bool, error)
	Create(ctx context.Context, review *models.Review) error
}

type sqlReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new SQL-backed ReviewRepository.
func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &sqlReviewRepository{db: db}
}

// ListByBook returns the book's reviews in insertion order, each with the
// reviewer's username.
func (r *sqlReviewRepository) ListByBook(ctx context.Context, bookID int64) ([]models.ReviewWithAuthor, error) {
	ctx, span := tracer.Start(ctx, "ReviewRepository.ListByBook", trace.WithAttributes(
		attribute.Int64("book.id", bookID),
	))
	defer span.End()

	query := r.db.Rebind(`
		SELECT r.id, r.user_id, r.book_id, r.rating, r.review_text, u.username
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = ?
		ORDER BY r.id`)

	reviews := []models.ReviewWithAuthor{}
	if err := r.db.SelectContext(ctx, &reviews, query, bookID); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// AverageRating returns the unrounded mean rating. ok is false when the book
// has no reviews.
func (r *sqlReviewRepository) AverageRating(ctx context.Context, bookID int64) (float64, bool, error) {
	ctx, span := tracer.Start(ctx, "ReviewRepository.AverageRating")
	defer span.End()

	var avg sql.NullFloat64
	query := r.db.Rebind(`SELECT AVG(rating) FROM reviews WHERE book_id = ?`)
	if err := r.db.GetContext(ctx, &avg, query, bookID); err != nil {
		span.RecordError(err)
		return 0, false, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg.Float64, avg.Valid, nil
}

// Count returns the number of reviews for the book.
func (r *sqlReviewRepository) Count(ctx context.Context, bookID int64) (int, error) {
	ctx, span := tracer.Start(ctx, "ReviewRepository.Count")
	defer span.End()

	var count int
	query := r.db.Rebind(`SELECT COUNT(rating) FROM reviews WHERE book_id = ?`)
	if err := r.db.GetContext(ctx, &count, query, bookID); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

// HasReviewed reports whether userID already reviewed bookID.
func (r *sqlReviewRepository) HasReviewed(ctx context.Context, userID, bookID int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "ReviewRepository.HasReviewed")
	defer span.End()

	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM reviews WHERE user_id = ? AND book_id = ?`)
	if err := r.db.GetContext(ctx, &count, query, userID, bookID); err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}
	return count > 0, nil
}

// Create inserts review and sets its ID.
func (r *sqlReviewRepository) Create(ctx context.Context, review *models.Review) error {
	ctx, span := tracer.Start(ctx, "ReviewRepository.Create", trace.WithAttributes(
		attribute.Int64("book.id", review.BookID),
		attribute.Int64("user.id", review.UserID),
	))
	defer span.End()

	id, err := db.InsertReturningID(ctx, r.db,
		`INSERT INTO reviews (user_id, book_id, rating, review_text) VALUES (?, ?, ?, ?)`,
		review.UserID, review.BookID, review.Rating, review.Text)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create review: %w", err)
	}
	review.ID = id
	return nil
}
