package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// ProfilePictureField is the multipart form field of the picture upload.
const ProfilePictureField = "profilePicture"

type userEnvelope struct {
	User models.User `json:"user"`
}

type noteEnvelope struct {
	Note models.Note `json:"note"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	req := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Name: name, Email: email, Password: password}

	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var resp userEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/api/user/profile", update, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UploadProfilePicture sends r as a multipart/form-data file under
// ProfilePictureField.
func (c *HTTPClient) UploadProfilePicture(ctx context.Context, filename string, r io.Reader) (*models.User, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(ProfilePictureField, filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	var resp userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/user/profile-picture", &buf, mw.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) DeleteProfilePicture(ctx context.Context) (*models.User, error) {
	var resp userEnvelope
	if err := c.doJSON(ctx, http.MethodDelete, "/api/user/profile-picture", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, draft models.Draft) (*models.Note, error) {
	var resp noteEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/api/notes", draft, &resp); err != nil {
		return nil, err
	}
	return &resp.Note, nil
}

func (c *HTTPClient) UpdateNote(ctx context.Context, id models.ID, draft models.Draft) (*models.Note, error) {
	var resp noteEnvelope
	if err := c.doJSON(ctx, http.MethodPut, notePath(id), draft, &resp); err != nil {
		return nil, err
	}
	return &resp.Note, nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id models.ID) error {
	return c.doJSON(ctx, http.MethodDelete, notePath(id), nil, nil)
}

// Ping checks that the backend answers at all.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/health", nil, nil)
}

func notePath(id models.ID) string {
	return "/api/notes/" + url.PathEscape(string(id))
}
