package service

import (
	"context"
	"ctchen222/Book-Review/internal/api/models"
	"ctchen222/Book-Review/internal/api/repository"
	"fmt"
	"strconv"
	"strings"
)

// CatalogService searches and looks up books.
type CatalogService interface {
	Search(ctx context.Context, term string) ([]models.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
}

type catalogService struct {
	bookRepo repository.BookRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(bookRepo repository.BookRepository) CatalogService {
	return &catalogService{bookRepo: bookRepo}
}

// Search matches the trimmed term against title, isbn and author. A purely
// numeric term additionally matches the publication year; those rows are
// appended without removing duplicates.
func (s *catalogService) Search(ctx context.Context, term string) ([]models.Book, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Search")
	defer span.End()

	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Book{}, nil
	}

	books, err := s.bookRepo.Search(ctx, term)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if year, ok := parseYear(term); ok {
		byYear, err := s.bookRepo.FindByYear(ctx, year)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		books = append(books, byYear...)
	}
	return books, nil
}

// GetByISBN returns ErrBookNotFound when the catalog has no such isbn.
func (s *catalogService) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	book, err := s.bookRepo.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, fmt.Errorf("lookup isbn %q: %w", isbn, ErrBookNotFound)
	}
	return book, nil
}

// parseYear accepts a term made only of ASCII digits whose value fits the
// INTEGER year column.
func parseYear(term string) (int, bool) {
	for _, r := range term {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, err := strconv.ParseInt(term, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(year), true
}
