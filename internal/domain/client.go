package domain

import "time"

type Client struct {
	ID           int64
	FullName     string
	PassportData string
	PhoneNumber  string
	Email        *string
	Address      *string
	PasswordHash *string
	CreatedAt    time.Time
}
