package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lottotrack/backoffice/internal/domain"
)

var ErrDeleteForbidden = errors.New("only an owner can delete their own account")

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	DeleteOwnerCascade(ctx context.Context, ownerID uint) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// DeleteAccount removes an owner account and cascades over every dependent
// store, book, scan log and report row in one transaction. Owners can only
// delete themselves; the super admin can delete any owner.
func (s *UserService) DeleteAccount(ctx context.Context, requester domain.User, targetID uint) error {
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if target.Role != domain.RoleOwner {
		return ErrDeleteForbidden
	}
	if !requester.IsSuperAdmin() && requester.ID != target.ID {
		return ErrDeleteForbidden
	}

	if err = s.repo.DeleteOwnerCascade(ctx, target.ID); err != nil {
		return fmt.Errorf("s.repo.DeleteOwnerCascade -> %w", err)
	}

	return nil
}
