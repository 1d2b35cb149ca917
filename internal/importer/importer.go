// Package importer loads the book catalog from CSV.
package importer

import (
	"context"
	"ctchen222/Book-Review/internal/api/models"
	"ctchen222/Book-Review/internal/api/repository"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

var expectedHeader = []string{"isbn", "title", "author", "year"}

// Result counts what an import did.
type Result struct {
	Inserted int
	Skipped  int
}

// Import reads rows of isbn,title,author,year after a header line and inserts
// every book whose isbn is not in the catalog yet. It stops at the first
// malformed row; rows before it stay inserted.
func Import(ctx context.Context, r io.Reader, books repository.BookRepository) (Result, error) {
	var res Result

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(expectedHeader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return res, errors.New("empty csv")
	}
	if err != nil {
		return res, fmt.Errorf("failed to read header: %w", err)
	}
	for i, name := range expectedHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return res, fmt.Errorf("unexpected header %v, want %v", header, expectedHeader)
		}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		book, err := parseRecord(record)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}

		existing, err := books.GetByISBN(ctx, book.ISBN)
		if err != nil {
			return res, err
		}
		if existing != nil {
			res.Skipped++
			continue
		}

		if err := books.Insert(ctx, book); err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		res.Inserted++
		if res.Inserted%1000 == 0 {
			slog.InfoContext(ctx, "Import progress", "inserted", res.Inserted)
		}
	}
}

func parseRecord(record []string) (*models.Book, error) {
	isbn := strings.TrimSpace(record[0])
	if isbn == "" {
		return nil, errors.New("missing isbn")
	}
	year, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return nil, fmt.Errorf("invalid year %q", record[3])
	}
	return &models.Book{
		ISBN:   isbn,
		Title:  strings.TrimSpace(record[1]),
		Author: strings.TrimSpace(record[2]),
		Year:   year,
	}, nil
}
