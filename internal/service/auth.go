package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lottotrack/backoffice/internal/domain"
	"github.com/lottotrack/backoffice/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrWrongPassword   = errors.New("wrong password")
	ErrInvalidRole     = errors.New("role must be owner or clerk")
	ErrClerkNeedsStore = errors.New("clerk signup requires a store_id")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type AuthStoreRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Store, error)
}

type AuthService struct {
	repo      AuthUserRepository
	storeRepo AuthStoreRepository
}

func NewAuthService(repo AuthUserRepository, storeRepo AuthStoreRepository) *AuthService {
	return &AuthService{
		repo:      repo,
		storeRepo: storeRepo,
	}
}

// Signup registers an owner or a clerk. Clerks must name the store they
// work at; the super admin account is seeded at boot, never signed up.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	switch user.Role {
	case domain.RoleOwner:
		user.StoreID = nil
	case domain.RoleClerk:
		if user.StoreID == nil {
			return domain.User{}, ErrClerkNeedsStore
		}
		if _, err := s.storeRepo.FindByID(ctx, *user.StoreID); err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return domain.User{}, ErrStoreNotFound
			}

			return domain.User{}, fmt.Errorf("s.storeRepo.FindByID -> %w", err)
		}
	default:
		return domain.User{}, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}
