package session

import "errors"

// ErrInvalidCredentials is returned by Login when the email or password
// is empty. This is placeholder validation; no real credential check
// exists in this scope.
var ErrInvalidCredentials = errors.New("session: invalid credentials")

// ErrInvalidRegistration is returned by Register when any field is empty.
var ErrInvalidRegistration = errors.New("session: invalid registration data")

// ErrBusy is returned by Login and Register when an attempt is already
// in flight. Re-exported from the reactive layer's drop policy so
// callers only need this package's taxonomy.
var ErrBusy = errors.New("session: authentication already in progress")
