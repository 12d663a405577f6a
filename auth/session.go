package auth

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/findash/findash/users"
)

// Session is the single authenticated session for this client. A session is
// authenticated iff it exists and ExpiresAt is strictly in the future.
type Session struct {
	User      users.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// Authenticated reports whether the session is still valid at now.
func (s *Session) Authenticated(now time.Time) bool {
	return s != nil && s.ExpiresAt.After(now)
}

// encode serializes the session for the durable slot.
func (s *Session) encode() ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "[Session.encode] json.Marshal")
	}
	return payload, nil
}

// decodeSession parses a persisted session and checks its structure: a
// well-formed user with email, name and employment sub-object, a token string
// and a parseable expiry. Any field failing to parse invalidates the record.
func decodeSession(payload []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, errors.Wrap(err, "[decodeSession] json.Unmarshal")
	}
	if s.Token == "" {
		return nil, errors.New("[decodeSession] missing token")
	}
	if s.ExpiresAt.IsZero() {
		return nil, errors.New("[decodeSession] missing expiry")
	}
	if s.User.Email == "" {
		return nil, errors.New("[decodeSession] missing user email")
	}
	if s.User.FirstName == "" && s.User.LastName == "" {
		return nil, errors.New("[decodeSession] missing user name")
	}
	if s.User.EmploymentInfo.Employer == "" {
		return nil, errors.New("[decodeSession] missing employment info")
	}
	return &s, nil
}
