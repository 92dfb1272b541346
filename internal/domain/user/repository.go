package user

import "context"

type Repository interface {
	// Upsert inserts the user or refreshes name/email/image, leaving the
	// stored resume untouched.
	Upsert(ctx context.Context, u User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateResume(ctx context.Context, id, resume string) error
}
