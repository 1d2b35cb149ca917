package service

import (
	"context"
	"ctchen222/Book-Review/internal/api/models"
	"ctchen222/Book-Review/internal/api/repository/mocks"
	"ctchen222/Book-Review/internal/ratings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubLookup struct {
	summary *ratings.Summary
	calls   []string
}

func (s *stubLookup) Lookup(_ context.Context, isbn string) *ratings.Summary {
	s.calls = append(s.calls, isbn)
	return s.summary
}

type bookServiceFixture struct {
	books   *mocks.MockBookRepository
	reviews *mocks.MockReviewRepository
	lookup  *stubLookup
	svc     BookService
}

func newBookServiceFixture(t *testing.T) *bookServiceFixture {
	ctrl := gomock.NewController(t)
	books := mocks.NewMockBookRepository(ctrl)
	reviews := mocks.NewMockReviewRepository(ctrl)
	lookup := &stubLookup{}
	svc := NewBookService(NewCatalogService(books), NewReviewService(reviews), reviews, lookup)
	return &bookServiceFixture{books: books, reviews: reviews, lookup: lookup, svc: svc}
}

func threeReviews(bookID int64) []models.ReviewWithAuthor {
	return []models.ReviewWithAuthor{
		{Review: models.Review{ID: 1, UserID: 10, BookID: bookID, Rating: 4, Text: "Solid"}, Username: "alice"},
		{Review: models.Review{ID: 2, UserID: 11, BookID: bookID, Rating: 5, Text: "Loved it"}, Username: "bob"},
		{Review: models.Review{ID: 3, UserID: 12, BookID: bookID, Rating: 5, Text: "Classic"}, Username: "carol"},
	}
}

func TestBookService_Detail(t *testing.T) {
	f := newBookServiceFixture(t)
	f.lookup.summary = &ratings.Summary{ISBN: darkTower.ISBN, WorkRatingsCount: 26, AverageRating: "4.04"}

	f.books.EXPECT().GetByISBN(gomock.Any(), darkTower.ISBN).Return(&darkTower, nil).Times(2)
	f.reviews.EXPECT().ListByBook(gomock.Any(), darkTower.ID).Return(threeReviews(darkTower.ID), nil).Times(2)
	f.reviews.EXPECT().AverageRating(gomock.Any(), darkTower.ID).Return(14.0/3.0, true, nil).Times(2)

	detail, err := f.svc.Detail(context.Background(), darkTower.ISBN, 99)
	require.NoError(t, err)
	assert.Equal(t, darkTower, detail.Book)
	assert.Equal(t, 3, detail.ReviewCount)
	assert.Equal(t, "4.7", detail.AverageRating)
	assert.True(t, detail.NotPosted)
	require.NotNil(t, detail.External)
	assert.Equal(t, "4.04", detail.External.AverageRating)
	assert.Equal(t, []string{darkTower.ISBN}, f.lookup.calls)

	detail, err = f.svc.Detail(context.Background(), darkTower.ISBN, 11)
	require.NoError(t, err)
	assert.False(t, detail.NotPosted, "bob already reviewed")
}

func TestBookService_DetailWithoutReviewsOrRatings(t *testing.T) {
	f := newBookServiceFixture(t)

	f.books.EXPECT().GetByISBN(gomock.Any(), darkTower.ISBN).Return(&darkTower, nil)
	f.reviews.EXPECT().ListByBook(gomock.Any(), darkTower.ID).Return(nil, nil)
	f.reviews.EXPECT().AverageRating(gomock.Any(), darkTower.ID).Return(0.0, false, nil)

	detail, err := f.svc.Detail(context.Background(), darkTower.ISBN, 1)
	require.NoError(t, err)
	assert.Zero(t, detail.ReviewCount)
	assert.Empty(t, detail.AverageRating)
	assert.True(t, detail.NotPosted)
	assert.Nil(t, detail.External)
}

func TestBookService_DetailUnknownBook(t *testing.T) {
	f := newBookServiceFixture(t)
	f.books.EXPECT().GetByISBN(gomock.Any(), "missing").Return(nil, nil)

	_, err := f.svc.Detail(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.Empty(t, f.lookup.calls)
}

func TestBookService_Summary(t *testing.T) {
	f := newBookServiceFixture(t)

	f.books.EXPECT().GetByISBN(gomock.Any(), darkTower.ISBN).Return(&darkTower, nil)
	f.reviews.EXPECT().Count(gomock.Any(), darkTower.ID).Return(3, nil)
	f.reviews.EXPECT().AverageRating(gomock.Any(), darkTower.ID).Return(14.0/3.0, true, nil)

	summary, err := f.svc.Summary(context.Background(), darkTower.ISBN)
	require.NoError(t, err)
	assert.Equal(t, &models.BookSummary{
		Title:        "The Dark Tower",
		Author:       "Stephen King",
		Year:         1982,
		ISBN:         "0312853238",
		ReviewCount:  3,
		AverageScore: "4.7",
	}, summary)
}

func TestBookService_SummaryWithoutReviews(t *testing.T) {
	f := newBookServiceFixture(t)

	f.books.EXPECT().GetByISBN(gomock.Any(), darkTower.ISBN).Return(&darkTower, nil)
	f.reviews.EXPECT().Count(gomock.Any(), darkTower.ID).Return(0, nil)
	f.reviews.EXPECT().AverageRating(gomock.Any(), darkTower.ID).Return(0.0, false, nil)

	summary, err := f.svc.Summary(context.Background(), darkTower.ISBN)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ReviewCount)
	assert.Equal(t, "0.0", summary.AverageScore)
}

func TestBookService_SubmitReview(t *testing.T) {
	t.Run("stores first review", func(t *testing.T) {
		f := newBookServiceFixture(t)
		f.books.EXPECT().GetByISBN(gomock.Any(), darkTower.ISBN).Return(&darkTower, nil)
		f.reviews.EXPECT().HasReviewed(gomock.Any(), int64(5), darkTower.ID).Return(false, nil)
		f.reviews.EXPECT().Create(gomock.Any(), &models.Review{UserID: 5, BookID: darkTower.ID, Rating: 3, Text: "Fine"}).Return(nil)

		err := f.svc.SubmitReview(context.Background(), darkTower.ISBN, 5, &models.ReviewRequest{Rating: "3", Text: "Fine"})
		assert.NoError(t, err)
	})

	t.Run("rejects second review", func(t *testing.T) {
		f := newBookServiceFixture(t)
		f.books.EXPECT().GetByISBN(gomock.Any(), darkTower.ISBN).Return(&darkTower, nil)
		f.reviews.EXPECT().HasReviewed(gomock.Any(), int64(5), darkTower.ID).Return(true, nil)

		err := f.svc.SubmitReview(context.Background(), darkTower.ISBN, 5, &models.ReviewRequest{Rating: "3", Text: "Again"})
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("unknown book", func(t *testing.T) {
		f := newBookServiceFixture(t)
		f.books.EXPECT().GetByISBN(gomock.Any(), "missing").Return(nil, nil)

		err := f.svc.SubmitReview(context.Background(), "missing", 5, &models.ReviewRequest{Rating: "3", Text: "Fine"})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("invalid rating", func(t *testing.T) {
		f := newBookServiceFixture(t)
		f.books.EXPECT().GetByISBN(gomock.Any(), darkTower.ISBN).Return(&darkTower, nil)
		f.reviews.EXPECT().HasReviewed(gomock.Any(), int64(5), darkTower.ID).Return(false, nil)

		err := f.svc.SubmitReview(context.Background(), darkTower.ISBN, 5, &models.ReviewRequest{Rating: "0", Text: "Fine"})
		assert.ErrorIs(t, err, ErrInvalidRating)
	})
}
