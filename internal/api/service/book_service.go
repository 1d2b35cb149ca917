package service

import (
	"context"
	"ctchen222/Book-Review/internal/api/models"
	"ctchen222/Book-Review/internal/ratings"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RatingLookup fetches third-party rating counts. A nil result means the
// lookup failed or found nothing.
type RatingLookup interface {
	Lookup(ctx context.Context, isbn string) *ratings.Summary
}

// BookService composes the catalog, the reviews and the external lookup into
// the book page, the JSON summary and review submission.
type BookService interface {
	Detail(ctx context.Context, isbn string, userID int64) (*models.BookDetail, error)
	Summary(ctx context.Context, isbn string) (*models.BookSummary, error)
	SubmitReview(ctx context.Context, isbn string, userID int64, req *models.ReviewRequest) error
}

type bookService struct {
	catalog CatalogService
	reviews ReviewService
	checker reviewChecker
	lookup  RatingLookup
}

// reviewChecker is the one repository query the submission flow needs beyond
// ReviewService.
type reviewChecker interface {
	HasReviewed(ctx context.Context, userID, bookID int64) (bool, error)
}

// NewBookService creates a new BookService.
func NewBookService(catalog CatalogService, reviews ReviewService, checker reviewChecker, lookup RatingLookup) BookService {
	return &bookService{catalog: catalog, reviews: reviews, checker: checker, lookup: lookup}
}

func (s *bookService) Detail(ctx context.Context, isbn string, userID int64) (*models.BookDetail, error) {
	ctx, span := tracer.Start(ctx, "BookService.Detail", trace.WithAttributes(
		attribute.String("book.isbn", isbn),
	))
	defer span.End()

	book, err := s.catalog.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByBook(ctx, book.ID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("load reviews for %s: %w", isbn, err)
	}

	avg, err := s.reviews.AverageRating(ctx, book.ID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("load rating for %s: %w", isbn, err)
	}

	detail := &models.BookDetail{
		Book:        *book,
		Reviews:     reviews,
		ReviewCount: len(reviews),
		NotPosted:   true,
	}
	if avg != nil {
		detail.AverageRating = FormatRating(*avg)
	}
	for _, r := range reviews {
		if r.UserID == userID {
			detail.NotPosted = false
			break
		}
	}

	if s.lookup != nil {
		detail.External = s.lookup.Lookup(ctx, isbn)
	}
	return detail, nil
}

// Summary builds the JSON API payload. average_score is "0.0" for a book
// without reviews.
func (s *bookService) Summary(ctx context.Context, isbn string) (*models.BookSummary, error) {
	ctx, span := tracer.Start(ctx, "BookService.Summary", trace.WithAttributes(
		attribute.String("book.isbn", isbn),
	))
	defer span.End()

	book, err := s.catalog.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	count, err := s.reviews.Count(ctx, book.ID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	avg, err := s.reviews.AverageRating(ctx, book.ID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	score := FormatRating(0)
	if avg != nil {
		score = FormatRating(*avg)
	}

	return &models.BookSummary{
		Title:        book.Title,
		Author:       book.Author,
		Year:         book.Year,
		ISBN:         book.ISBN,
		ReviewCount:  count,
		AverageScore: score,
	}, nil
}

// SubmitReview stores a review for the book unless the user already wrote one.
func (s *bookService) SubmitReview(ctx context.Context, isbn string, userID int64, req *models.ReviewRequest) error {
	ctx, span := tracer.Start(ctx, "BookService.SubmitReview", trace.WithAttributes(
		attribute.String("book.isbn", isbn),
		attribute.Int64("user.id", userID),
	))
	defer span.End()

	book, err := s.catalog.GetByISBN(ctx, isbn)
	if err != nil {
		return err
	}

	reviewed, err := s.checker.HasReviewed(ctx, userID, book.ID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if reviewed {
		return fmt.Errorf("review %s by user %d: %w", isbn, userID, ErrAlreadyReviewed)
	}

	return s.reviews.Add(ctx, userID, book.ID, req)
}
