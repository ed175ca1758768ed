package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/errs"
	"github.com/finsight/finsight-backend/internal/models"
	"github.com/finsight/finsight-backend/internal/store"
	"github.com/finsight/finsight-backend/pkg/helpers"
)

type userStore interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, id int) (models.User, error)
}

type userService struct {
	users userStore
}

func NewUserService(users userStore) *userService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id int) (models.User, error) {
	u, err := s.users.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return u, errs.NewNotFoundError("USER_NOT_FOUND", "User not found")
	}
	return u, err
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := foldEmail(req.Email)

	if name == "" || email == "" || req.Password == "" {
		return models.User{}, errs.NewValidationError("MISSING_REQUIRED_FIELDS",
			"Name, email, and password are required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return models.User{}, errs.NewValidationError("INVALID_PASSWORD",
			"Password must be a non-empty string")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return models.User{}, errs.NewAlreadyExistsError("EMAIL_EXISTS", "Email already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	return s.users.Create(ctx, models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Balance:  helpers.Value(req.Balance),
		Avatar:   req.Avatar,
	})
}

func (s *userService) Update(ctx context.Context, id int, req dto.UpdateUserRequest) (models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return u, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return models.User{}, errs.NewValidationError("INVALID_NAME",
				"Name must be a non-empty string")
		}
		u.Name = name
	}

	if req.Email != nil {
		email := foldEmail(*req.Email)
		if email == "" {
			return models.User{}, errs.NewValidationError("INVALID_EMAIL",
				"Email must be a non-empty string")
		}
		if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing.ID != id {
			return models.User{}, errs.NewAlreadyExistsError("EMAIL_EXISTS", "Email already exists")
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return models.User{}, err
		}
		u.Email = email
	}

	if req.Password != nil {
		if strings.TrimSpace(*req.Password) == "" {
			return models.User{}, errs.NewValidationError("INVALID_PASSWORD",
				"Password must be a non-empty string")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		u.Password = string(hash)
	}

	if req.Balance != nil {
		u.Balance = *req.Balance
	}
	if req.Avatar != nil {
		u.Avatar = req.Avatar
	}

	return s.users.Update(ctx, u)
}

// Delete removes only the user row; dependents are deliberately untouched
// (cascade behavior is undefined).
func (s *userService) Delete(ctx context.Context, id int) (models.User, error) {
	u, err := s.users.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return u, errs.NewNotFoundError("USER_NOT_FOUND", "User not found")
	}
	return u, err
}

func (s *userService) Login(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, errs.NewValidationError("MISSING_CREDENTIALS",
			"Email and password are required")
	}

	u, err := s.users.GetByEmail(ctx, foldEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, errs.NewUnauthorizedError("Invalid email or password")
	}
	if err != nil {
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return models.User{}, errs.NewUnauthorizedError("Invalid email or password")
	}
	return u, nil
}

func foldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
