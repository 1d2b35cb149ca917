package service

import (
	"context"
	"ctchen222/Book-Review/internal/api/models"
	"ctchen222/Book-Review/internal/api/repository/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReviewService_AddRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		req     models.ReviewRequest
		wantErr error
	}{
		{name: "no rating", req: models.ReviewRequest{Text: "Great"}, wantErr: ErrInvalidRating},
		{name: "zero rating", req: models.ReviewRequest{Rating: "0", Text: "Great"}, wantErr: ErrInvalidRating},
		{name: "rating above five", req: models.ReviewRequest{Rating: "6", Text: "Great"}, wantErr: ErrInvalidRating},
		{name: "non numeric rating", req: models.ReviewRequest{Rating: "abc", Text: "Great"}, wantErr: ErrInvalidRating},
		{name: "fractional rating", req: models.ReviewRequest{Rating: "4.5", Text: "Great"}, wantErr: ErrInvalidRating},
		{name: "empty text", req: models.ReviewRequest{Rating: "4"}, wantErr: ErrEmptyReview},
		{name: "whitespace text", req: models.ReviewRequest{Rating: "4", Text: " \n\t"}, wantErr: ErrEmptyReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockReviewRepository(ctrl)
			svc := NewReviewService(repo)

			err := svc.Add(context.Background(), 1, 1, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReviewService_AddStoresTrimmedReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReviewRepository(ctrl)
	svc := NewReviewService(repo)

	repo.EXPECT().Create(gomock.Any(), &models.Review{UserID: 2, BookID: 9, Rating: 5, Text: "Loved it"}).Return(nil)

	err := svc.Add(context.Background(), 2, 9, &models.ReviewRequest{Rating: "5", Text: "  Loved it  "})
	assert.NoError(t, err)
}

func TestReviewService_AverageRating(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReviewRepository(ctrl)
	svc := NewReviewService(repo)

	repo.EXPECT().AverageRating(gomock.Any(), int64(1)).Return(14.0/3.0, true, nil)
	repo.EXPECT().AverageRating(gomock.Any(), int64(2)).Return(0.0, false, nil)

	avg, err := svc.AverageRating(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 4.7, *avg)

	avg, err = svc.AverageRating(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, avg)
}

func TestReviewService_AverageRatingTiesToEven(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReviewRepository(ctrl)
	svc := NewReviewService(repo)

	// Ratings 4, 4, 4 and 5.
	repo.EXPECT().AverageRating(gomock.Any(), int64(1)).Return(17.0/4.0, true, nil)

	avg, err := svc.AverageRating(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 4.2, *avg)
	assert.Equal(t, "4.2", FormatRating(*avg))
}

func TestRoundAndFormatRating(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{avg: 14.0 / 3.0, want: "4.7"},
		{avg: 4, want: "4.0"},
		{avg: 17.0 / 4.0, want: "4.2"},
		{avg: 13.0 / 4.0, want: "3.2"},
		{avg: 81.0 / 20.0, want: "4.0"},
		{avg: 15.0 / 4.0, want: "3.8"},
		{avg: 1.04, want: "1.0"},
		{avg: 0, want: "0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRating(tt.avg))
			assert.Equal(t, tt.want, FormatRating(RoundRating(tt.avg)))
		})
	}
}
