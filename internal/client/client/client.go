package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// AuthAPI covers authentication and the user profile.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Signup(ctx context.Context, name, email, password string) (*AuthResponse, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error)
	UploadProfilePicture(ctx context.Context, filename string, r io.Reader) (*models.User, error)
	DeleteProfilePicture(ctx context.Context) (*models.User, error)
}

// NotesAPI covers the notes collection of the signed-in user.
type NotesAPI interface {
	ListNotes(ctx context.Context) ([]models.Note, error)
	CreateNote(ctx context.Context, draft models.Draft) (*models.Note, error)
	UpdateNote(ctx context.Context, id models.ID, draft models.Draft) (*models.Note, error)
	DeleteNote(ctx context.Context, id models.ID) error
}

// Client is the complete backend contract.
type Client interface {
	AuthAPI
	NotesAPI
	Ping(ctx context.Context) error
}

var _ Client = (*HTTPClient)(nil)
