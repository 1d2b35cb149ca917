package repository

import (
	"context"
	"ctchen222/Book-Review/internal/api/models"
	"ctchen222/Book-Review/internal/db"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BookRepository defines read access to the catalog. Insert exists for the
// import command only; the web application never writes books.
type BookRepository interface {
	Search(ctx context.Context, term string) ([]models.Book, error)
	FindByYear(ctx context.Context, year int) ([]models.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
	Insert(ctx context.Context, book *models.Book) error
}

type sqlBookRepository struct {
	db *sqlx.DB
}

// NewBookRepository creates a new SQL-backed BookRepository.
func NewBookRepository(db *sqlx.DB) BookRepository {
	return &sqlBookRepository{db: db}
}

// Search returns books whose title, isbn or author contain term, ignoring case.
func (r *sqlBookRepository) Search(ctx context.Context, term string) ([]models.Book, error) {
	ctx, span := tracer.Start(ctx, "BookRepository.Search", trace.WithAttributes(
		attribute.String("search.term", term),
	))
	defer span.End()

	pattern := "%" + term + "%"
	query := r.db.Rebind(`
		SELECT id, isbn, title, author, year
		FROM books
		WHERE LOWER(title) LIKE LOWER(?) OR LOWER(isbn) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)
		ORDER BY id`)

	books := []models.Book{}
	if err := r.db.SelectContext(ctx, &books, query, pattern, pattern, pattern); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	span.SetAttributes(attribute.Int("search.results", len(books)))
	return books, nil
}

// FindByYear returns books published in year.
func (r *sqlBookRepository) FindByYear(ctx context.Context, year int) ([]models.Book, error) {
	ctx, span := tracer.Start(ctx, "BookRepository.FindByYear")
	defer span.End()

	query := r.db.Rebind(`SELECT id, isbn, title, author, year FROM books WHERE year = ? ORDER BY id`)

	books := []models.Book{}
	if err := r.db.SelectContext(ctx, &books, query, year); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to find books by year: %w", err)
	}
	return books, nil
}

// GetByISBN returns the book with isbn, or (nil, nil) when there is none.
func (r *sqlBookRepository) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	ctx, span := tracer.Start(ctx, "BookRepository.GetByISBN", trace.WithAttributes(
		attribute.String("book.isbn", isbn),
	))
	defer span.End()

	var book models.Book
	query := r.db.Rebind(`SELECT id, isbn, title, author, year FROM books WHERE isbn = ?`)
	if err := r.db.GetContext(ctx, &book, query, isbn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get book by isbn: %w", err)
	}
	return &book, nil
}

// Insert adds a book and sets its ID.
func (r *sqlBookRepository) Insert(ctx context.Context, book *models.Book) error {
	ctx, span := tracer.Start(ctx, "BookRepository.Insert")
	defer span.End()

	id, err := db.InsertReturningID(ctx, r.db,
		`INSERT INTO books (isbn, title, author, year) VALUES (?, ?, ?, ?)`,
		book.ISBN, book.Title, book.Author, book.Year)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to insert book %s: %w", book.ISBN, err)
	}
	book.ID = id
	return nil
}
