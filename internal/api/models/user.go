package models

// User represents a user in the database.
type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Username     string `form:"username" validate:"required"`
	Password     string `form:"password" validate:"required"`
	Confirmation string `form:"confpassword" validate:"eqfield=Password"`
}

// LoginRequest is the login form.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}
