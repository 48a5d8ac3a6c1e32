package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Caller is the identity decoded from a verified credential.
type Caller struct {
	ID       string
	Username string
}

// Author is the public projection of a note owner.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (c Caller) Author() *Author {
	return &Author{ID: c.ID, Username: c.Username}
}

func (u User) Author() *Author {
	return &Author{ID: u.ID, Username: u.Username}
}
