package models

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// User is the profile of the signed-in account. Only the session store
// replaces it.
type User struct {
	ID             ID        `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"createdAt"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
}

// UnmarshalJSON accepts both "id" and "_id" for the identifier.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var aux struct {
		plain
		MongoID ID `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// PictureKind classifies User.ProfilePicture.
type PictureKind int

const (
	PictureNone PictureKind = iota
	// PictureInline is a data: URI carrying the encoded image itself.
	PictureInline
	// PictureLegacyPath is a server-relative path from the file-based
	// storage the backend used before inline images.
	PictureLegacyPath
)

func (u *User) PictureKind() PictureKind {
	switch {
	case u == nil || u.ProfilePicture == "":
		return PictureNone
	case strings.HasPrefix(u.ProfilePicture, "data:"):
		return PictureInline
	default:
		return PictureLegacyPath
	}
}

// PictureURL returns a displayable URL for the profile picture: inline
// images are returned as-is, legacy paths are resolved with resolve. Empty
// when the user has no picture.
func (u *User) PictureURL(resolve func(path string) string) string {
	switch u.PictureKind() {
	case PictureInline:
		return u.ProfilePicture
	case PictureLegacyPath:
		return resolve(u.ProfilePicture)
	default:
		return ""
	}
}

// Initials is the avatar placeholder: the first letter of the name,
// upper-cased, or "U".
func (u *User) Initials() string {
	if u == nil || u.Name == "" {
		return "U"
	}
	r, _ := utf8.DecodeRuneInString(u.Name)
	return string(unicode.ToUpper(r))
}

// ProfileUpdate carries the profile fields to change; nil fields are not sent.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}
