package service

import (
	"context"
	"fmt"
	"log"

	"toro-admin/admin-svc/internal/domain"
)

type UserService struct {
	*Controller[domain.User]
	actions UserActions
}

func NewUserService(res Resource[domain.User], actions UserActions, deps Deps) *UserService {
	return &UserService{
		Controller: newController(entity[domain.User]{
			plural:   "users",
			singular: "user",
			id:       func(u domain.User) string { return u.UID },
			setID:    func(u *domain.User, id string) { u.UID = id },
			label: func(u domain.User) string {
				if u.DisplayName != "" {
					return u.DisplayName
				}
				return u.Email
			},
		}, res, deps),
		actions: actions,
	}
}

// Fetch loads one user from the backend and refreshes its cached row.
func (s *UserService) Fetch(ctx context.Context, uid string) (domain.User, error) {
	u, err := s.actions.GetUser(ctx, uid)
	if err != nil {
		log.Printf("[admin-svc] fetch user %s: %v", uid, err)
		return u, fmt.Errorf("fetch user: %w", err)
	}
	if u.UID != "" {
		s.items.Upsert(u)
	}
	return u, nil
}

func (s *UserService) SetStatus(ctx context.Context, uid, status string) (domain.User, error) {
	return s.apply(ctx, uid, "status", func(u *domain.User) { u.Status = status },
		func() (domain.User, error) { return s.actions.UpdateUserStatus(ctx, uid, status) })
}

// BackendStats returns the backend's own user aggregates.
func (s *UserService) BackendStats(ctx context.Context) (domain.BackendStats, error) {
	st, err := s.actions.UserStats(ctx)
	if err != nil {
		log.Printf("[admin-svc] user stats: %v", err)
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return st, nil
}

func (s *UserService) Stats() domain.UserStats {
	return UserStats(s.Items())
}

func UserStats(list []domain.User) domain.UserStats {
	st := domain.UserStats{Total: len(list)}
	for _, u := range list {
		if u.LocationEnabled {
			st.LocationEnabled++
		}
		if u.Email != "" {
			st.WithEmail++
		}
		if u.PhoneNumber != "" {
			st.WithPhone++
		}
	}
	return st
}
