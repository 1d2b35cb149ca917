package models

import "ctchen222/Book-Review/internal/ratings"

// Review is a single user's rating and comment for a book.
type Review struct {
	ID     int64  `db:"id"`
	UserID int64  `db:"user_id"`
	BookID int64  `db:"book_id"`
	Rating int    `db:"rating"`
	Text   string `db:"review_text"`
}

// ReviewWithAuthor is a review joined with the reviewer's username.
type ReviewWithAuthor struct {
	Review
	Username string `db:"username"`
}

// ReviewRequest is the review form. Rating arrives as text and is parsed by
// the review service.
type ReviewRequest struct {
	Rating string `form:"rating"`
	Text   string `form:"review"`
}

// BookDetail is everything the book page renders.
type BookDetail struct {
	Book          Book
	Reviews       []ReviewWithAuthor
	ReviewCount   int
	AverageRating string // empty when the book has no reviews
	NotPosted     bool   // the current user has not reviewed this book yet
	External      *ratings.Summary
}
