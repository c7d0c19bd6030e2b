package domain

import "time"

type ContactSubmission struct {
	ID          int64
	Name        string
	Email       string
	Company     string
	Phone       string
	Service     string
	Budget      string
	Timeline    string
	Message     string
	SubmittedAt time.Time
}

type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Company      string
	PasswordHash string
	CreatedAt    time.Time
}
