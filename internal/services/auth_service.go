package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Supermili365/expirapp/internal/domain"
	"github.com/Supermili365/expirapp/internal/repos"
	"github.com/Supermili365/expirapp/internal/upstream"
)

var ErrBadCreds = errors.New("invalid email or password")

// Session is the gateway-side view of a logged-in user. It satisfies
// checkout.Identity, which is the only shape the core ever sees.
type Session struct {
	SID         string
	BearerToken string
	User        *domain.User
}

func (s *Session) Token() string { return s.BearerToken }

func (s *Session) CurrentUser() *domain.User { return s.User }

// AuthService delegates credential checks to the backend and keeps the
// resulting token + usuario in the local session store.
type AuthService struct {
	API      *upstream.Client
	Sessions *repos.SessionRepo
}

func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*domain.User, error) {
	creds, err := s.API.Login(ctx, email, password)
	if err != nil {
		var se *upstream.StatusError
		if errors.As(err, &se) && se.Code >= 400 && se.Code < 500 {
			return nil, ErrBadCreds
		}
		return nil, err
	}
	userJSON, err := json.Marshal(creds.User)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(sid, creds.Token, string(userJSON)); err != nil {
		return nil, err
	}
	u := creds.User
	return &u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Sessions.Clear(sid)
}

// Current returns the live session, or nil when the sid is unknown or
// holds no token.
func (s *AuthService) Current(sid string) (*Session, error) {
	row, err := s.Sessions.Get(sid)
	if err != nil || row == nil {
		return nil, err
	}
	if row.Token == "" {
		return nil, nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(row.UserJSON), &u); err != nil {
		return nil, err
	}
	return &Session{SID: sid, BearerToken: row.Token, User: &u}, nil
}

// RefreshUser rewrites the stored usuario after a profile update.
func (s *AuthService) RefreshUser(sid string, u *domain.User) error {
	row, err := s.Sessions.Get(sid)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}
	userJSON, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.Sessions.Save(sid, row.Token, string(userJSON))
}
