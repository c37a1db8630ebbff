// Package session resolves the signed-in student from the profile store.
//
// A session is the studentUser record written at login plus a random
// session id minted alongside it. Load reports whether the record exists and
// is readable; callers that get ErrNoSession or ErrCorrupt send the user to
// the login page.
//
// # Usage
//
//	rec, err := session.Load(ctx, st, logger)
//	if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrCorrupt) {
//	    redirect(cfg.LoginURL)
//	}
//	fmt.Println(session.DisplayName(rec))
package session

import (
	"context"
	stderrors "errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pyprac/profilesvg/pkg/errors"
	"github.com/pyprac/profilesvg/pkg/profile"
	"github.com/pyprac/profilesvg/pkg/store"
)

// DefaultLoginURL is where signed-out users are sent.
const DefaultLoginURL = "/PyPrac/login.html"

// DefaultDisplayName is shown when the record has no first name.
const DefaultDisplayName = "Student"

// Sentinel errors for session operations.
var (
	// ErrNoSession is returned when no studentUser record is stored.
	ErrNoSession = errors.New(errors.ErrCodeNotFound, "no signed-in student")

	// ErrCorrupt is returned when the stored record cannot be parsed. The
	// record has already been removed when Load returns it.
	ErrCorrupt = errors.New(errors.ErrCodeMalformedRecord, "stored student record is corrupt")
)

// Load reads and parses the studentUser record. A corrupt record is removed
// from s before ErrCorrupt is returned. A nil logger logs to log.Default().
func Load(ctx context.Context, s store.Store, logger *log.Logger) (profile.Value, error) {
	if logger == nil {
		logger = log.Default()
	}
	raw, ok, err := s.Get(ctx, profile.KeyStudentUser)
	if err != nil {
		return profile.Absent(), err
	}
	if !ok {
		return profile.Absent(), ErrNoSession
	}

	rec, perr := profile.Parse(raw)
	if perr != nil {
		logger.Error("error parsing user data", "err", perr)
		if err := Logout(ctx, s); err != nil {
			return profile.Absent(), stderrors.Join(ErrCorrupt, err)
		}
		return profile.Absent(), ErrCorrupt
	}
	return rec, nil
}

// Login validates raw, stores it verbatim as the studentUser record, and
// stores a fresh random session id under profile.KeySessionID. Text that
// neither strict nor tolerant parsing accepts is rejected and nothing is
// written.
func Login(ctx context.Context, s store.Store, raw string) (profile.Value, error) {
	rec, err := profile.Parse(raw)
	if err != nil {
		return profile.Absent(), err
	}
	if rec.Kind() != profile.KindMap {
		return profile.Absent(), errors.New(errors.ErrCodeInvalidInput, "student record must be an object, got %s", rec.Kind())
	}
	if err := s.Set(ctx, profile.KeyStudentUser, raw); err != nil {
		return profile.Absent(), err
	}
	if err := s.Set(ctx, profile.KeySessionID, uuid.NewString()); err != nil {
		return profile.Absent(), err
	}
	return rec, nil
}

// ID returns the session id minted by the last Login, or ErrNoSession.
// Records written without Login have no id.
func ID(ctx context.Context, s store.Store) (string, error) {
	id, ok, err := s.Get(ctx, profile.KeySessionID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoSession
	}
	return id, nil
}

// Logout removes the studentUser record and the session id. Removing a
// missing record is not an error.
func Logout(ctx context.Context, s store.Store) error {
	return stderrors.Join(
		s.Remove(ctx, profile.KeyStudentUser),
		s.Remove(ctx, profile.KeySessionID),
	)
}

// DisplayName returns the record's first name, or DefaultDisplayName when it
// is missing or falsy.
func DisplayName(rec profile.Value) string {
	if v := rec.Get("firstName"); v.Truthy() {
		return v.String()
	}
	return DefaultDisplayName
}
