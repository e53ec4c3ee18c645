// Package media stores storefront imagery: user avatars and product
// placeholders. Backends share a small Store interface; DiskStore is
// the default and S3Store serves deployments that keep media in a
// bucket.
package media

import (
	"errors"
	"io"
	"strings"
)

// ErrNotFound is returned when an object doesn't exist.
var ErrNotFound = errors.New("media: object not found")

// ErrTooLarge is returned when an object exceeds the size limit.
var ErrTooLarge = errors.New("media: object too large")

// Store is the interface for media storage backends.
type Store interface {
	// Save stores the object and returns its id.
	Save(name string, contentType string, r io.Reader) (id string, err error)

	// Open returns a reader over the stored object.
	// The caller owns closing it.
	Open(id string) (io.ReadCloser, error)

	// URL returns an address consumers can render the object from.
	URL(id string) (string, error)

	// Delete removes the object. Deleting an absent id is a no-op.
	Delete(id string) error
}

// avatarTemplate is the placeholder image written for newly registered
// users.
const avatarTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200"><rect width="200" height="200" fill="#e5e7eb"/><circle cx="100" cy="80" r="36" fill="#9ca3af"/><path d="M40 180c8-40 32-60 60-60s52 20 60 60z" fill="#9ca3af"/></svg>`

// TemplateAvatarID is the id the template avatar is stored under.
const TemplateAvatarID = "avatar-template.svg"

// EnsureTemplateAvatar writes the placeholder avatar into the store if
// supported and returns its URL. Stores that assign ids on Save get the
// template under a fresh id.
func EnsureTemplateAvatar(s Store) (string, error) {
	if _, err := s.Open(TemplateAvatarID); err == nil {
		return s.URL(TemplateAvatarID)
	}

	id, err := s.Save(TemplateAvatarID, "image/svg+xml", strings.NewReader(avatarTemplate))
	if err != nil {
		return "", err
	}
	return s.URL(id)
}
