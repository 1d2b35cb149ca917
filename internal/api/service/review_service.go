package service

import (
	"context"
	"ctchen222/Book-Review/internal/api/models"
	"ctchen222/Book-Review/internal/api/repository"
	"ctchen222/Book-Review/internal/validator"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ReviewService reads and writes reviews and aggregates ratings.
type ReviewService interface {
	ListByBook(ctx context.Context, bookID int64) ([]models.ReviewWithAuthor, error)
	AverageRating(ctx context.Context, bookID int64) (*float64, error)
	Count(ctx context.Context, bookID int64) (int, error)
	Add(ctx context.Context, userID, bookID int64, req *models.ReviewRequest) error
}

type reviewInput struct {
	Rating int    `validate:"min=1,max=5"`
	Text   string `validate:"required"`
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	created    metric.Int64Counter
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	created, _ := meter.Int64Counter("reviews.created",
		metric.WithDescription("Reviews stored"))
	return &reviewService{reviewRepo: reviewRepo, created: created}
}

func (s *reviewService) ListByBook(ctx context.Context, bookID int64) ([]models.ReviewWithAuthor, error) {
	return s.reviewRepo.ListByBook(ctx, bookID)
}

// AverageRating returns the mean rating rounded to one decimal place, or nil
// when the book has no reviews.
func (s *reviewService) AverageRating(ctx context.Context, bookID int64) (*float64, error) {
	avg, ok, err := s.reviewRepo.AverageRating(ctx, bookID)
	if err != nil || !ok {
		return nil, err
	}
	rounded := RoundRating(avg)
	return &rounded, nil
}

func (s *reviewService) Count(ctx context.Context, bookID int64) (int, error) {
	return s.reviewRepo.Count(ctx, bookID)
}

// Add validates the form and stores the review. It does not check whether the
// user reviewed the book before.
func (s *reviewService) Add(ctx context.Context, userID, bookID int64, req *models.ReviewRequest) error {
	ctx, span := tracer.Start(ctx, "ReviewService.Add")
	defer span.End()

	rating, err := strconv.Atoi(strings.TrimSpace(req.Rating))
	if err != nil {
		return ErrInvalidRating
	}
	in := reviewInput{Rating: rating, Text: strings.TrimSpace(req.Text)}
	if err := validator.GetValidator().Struct(in); err != nil {
		if field, _, ok := validator.FirstFailure(err); ok && field == "Text" {
			return ErrEmptyReview
		}
		return ErrInvalidRating
	}

	review := &models.Review{UserID: userID, BookID: bookID, Rating: in.Rating, Text: in.Text}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		span.RecordError(err)
		return err
	}

	if s.created != nil {
		s.created.Add(ctx, 1, metric.WithAttributes(attribute.Int("rating", in.Rating)))
	}
	return nil
}

// RoundRating rounds avg to one decimal place. The exact binary value is
// rounded and ties go to the even digit, so 4.25 becomes 4.2.
func RoundRating(avg float64) float64 {
	rounded, _ := strconv.ParseFloat(FormatRating(avg), 64)
	return rounded
}

// FormatRating renders a rating with exactly one decimal, e.g. "4.7" or "4.0",
// rounding the same way as RoundRating.
func FormatRating(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 1, 64)
}
