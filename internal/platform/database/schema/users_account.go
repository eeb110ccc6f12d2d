// Copyright (c) 2026 Clipstream. All rights reserved.

// Package schema centralizes table and column identifiers for every query
// in the storage layer, so a rename touches exactly one file.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table         string
	ID            string
	Username      string
	Email         string
	FullName      string
	AvatarURL     string
	CoverImageURL string
	PasswordHash  string
	RefreshToken  string
	WatchHistory  string
	CreatedAt     string
	UpdatedAt     string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:         "users.account",
	ID:            "id",
	Username:      "username",
	Email:         "email",
	FullName:      "fullname",
	AvatarURL:     "avatarurl",
	CoverImageURL: "coverimageurl",
	PasswordHash:  "passwordhash",
	RefreshToken:  "refreshtoken",
	WatchHistory:  "watchhistory",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.FullName, t.AvatarURL, t.CoverImageURL,
		t.PasswordHash, t.RefreshToken, t.WatchHistory, t.CreatedAt, t.UpdatedAt,
	}
}
