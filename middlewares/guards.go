package middlewares

import (
	"errors"
	"time"

	"civicsync-client/session"
	authUtils "civicsync-client/utils"
)

var (
	ErrNotAuthenticated = errors.New("you are not logged in; run `civicsync login` first")
	ErrSessionExpired   = errors.New("your session has expired; run `civicsync login` again")
	ErrForbidden        = errors.New("this action requires an administrator account")
)

// Guard decides whether a command may run for the current session.
type Guard func(sess *session.Session) error

// Clock lets tests pin the time used for expiry checks.
var Clock = time.Now

// RequireAuth admits sessions holding a credential that has not expired.
// A token the client cannot decode is let through; the backend will reject
// it if it is bad.
func RequireAuth() Guard {
	return func(sess *session.Session) error {
		if !sess.Authenticated() {
			return ErrNotAuthenticated
		}
		info, err := authUtils.InspectToken(sess.Credential())
		if err == nil && info.Expired(Clock()) {
			return ErrSessionExpired
		}
		return nil
	}
}

// RequireAdmin admits authenticated sessions with the admin role.
func RequireAdmin() Guard {
	auth := RequireAuth()
	return func(sess *session.Session) error {
		if err := auth(sess); err != nil {
			return err
		}
		if !sess.IsAdmin() {
			return ErrForbidden
		}
		return nil
	}
}
