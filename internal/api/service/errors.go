// Package service holds the book-review business rules: registration and
// login, catalog search, and review aggregation.
//
// Errors returned by this package wrap one of the sentinels below with
// fmt.Errorf("...: %w"). Controllers match them with errors.Is and choose the
// status code noted next to each sentinel.
package service

import "errors"

var (
	// ErrMissingUsername: 403, username field empty.
	ErrMissingUsername = errors.New("must provide username")

	// ErrMissingPassword: 403, password field empty.
	ErrMissingPassword = errors.New("must provide password")

	// ErrPasswordMismatch: 403, confirmation differs from password.
	ErrPasswordMismatch = errors.New("password and confirm password must be equal")

	// ErrPasswordTooLong: 403, bcrypt rejects passwords over 72 bytes.
	ErrPasswordTooLong = errors.New("password can't be longer than 72 bytes")

	// ErrUsernameTaken: 403, registration with an existing username.
	ErrUsernameTaken = errors.New("username already in use")

	// ErrInvalidCredentials: 403. Used for both unknown users and wrong
	// passwords so callers cannot tell which one happened.
	ErrInvalidCredentials = errors.New("invalid username and/or password")

	// ErrBookNotFound: 404 on the book page, 422 on the JSON API.
	ErrBookNotFound = errors.New("book not found")

	// ErrInvalidRating: 403, rating is not an integer from 1 to 5.
	ErrInvalidRating = errors.New("select a rating")

	// ErrEmptyReview: 403, review text is blank.
	ErrEmptyReview = errors.New("review can't be empty")

	// ErrAlreadyReviewed: 403, the user already reviewed this book.
	ErrAlreadyReviewed = errors.New("you already reviewed this book")
)
