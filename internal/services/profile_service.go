package services

import (
	"context"

	"github.com/Supermili365/expirapp/internal/domain"
	"github.com/Supermili365/expirapp/internal/upstream"
)

// ProfileService reads and updates the user or store profile upstream and
// keeps the session copy in sync.
type ProfileService struct {
	API  *upstream.Client
	Auth *AuthService
}

func (s *ProfileService) GetUser(ctx context.Context, sess *Session) (*domain.User, error) {
	u, err := s.API.GetUser(ctx, sess.BearerToken, sess.User.ID)
	if err != nil {
		return nil, err
	}
	if u.ID == 0 {
		u.ID = sess.User.ID
	}
	return u, nil
}

func (s *ProfileService) UpdateUser(ctx context.Context, sess *Session, in upstream.UpdateUserInput) (*domain.User, error) {
	if err := s.API.UpdateUser(ctx, sess.BearerToken, sess.User.ID, in); err != nil {
		return nil, err
	}
	u := *sess.User
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if err := s.Auth.RefreshUser(sess.SID, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *ProfileService) GetStore(ctx context.Context, sess *Session) (*upstream.Store, error) {
	if !sess.User.IsSeller() {
		return nil, ErrNotASeller
	}
	return s.API.GetStore(ctx, sess.BearerToken, *sess.User.StoreID)
}

func (s *ProfileService) UpdateStore(ctx context.Context, sess *Session, in upstream.UpdateStoreInput) error {
	if !sess.User.IsSeller() {
		return ErrNotASeller
	}
	return s.API.UpdateStore(ctx, sess.BearerToken, *sess.User.StoreID, in)
}
