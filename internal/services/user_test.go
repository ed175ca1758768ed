package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/errs"
	"github.com/finsight/finsight-backend/internal/models"
	"github.com/finsight/finsight-backend/internal/store"
	"github.com/finsight/finsight-backend/pkg/helpers"
)

type fakeUserStore struct {
	byID    map[int]models.User
	byEmail map[string]models.User

	created models.User
	updated models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    map[int]models.User{},
		byEmail: map[string]models.User{},
	}
}

func (f *fakeUserStore) add(u models.User) {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserStore) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(f.byID))
	for _, u := range f.byID {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserStore) Get(ctx context.Context, id int) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = len(f.byID) + 1
	f.created = u
	f.add(u)
	return u, nil
}

func (f *fakeUserStore) Update(ctx context.Context, u models.User) (models.User, error) {
	f.updated = u
	f.add(u)
	return u, nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id int) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	delete(f.byID, id)
	delete(f.byEmail, u.Email)
	return u, nil
}

func TestCreateUserHashesPasswordAndFoldsEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users)

	created, err := svc.Create(helpers.TestCtx(), dto.CreateUserRequest{
		Name:     "  Jane Doe ",
		Email:    " Jane@Example.COM ",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Name != "Jane Doe" || created.Email != "jane@example.com" {
		t.Fatalf("normalization: %+v", created)
	}
	if users.created.Password == "s3cret" {
		t.Fatalf("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users.created.Password), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	users.add(models.User{ID: 1, Email: "jane@example.com"})
	svc := NewUserService(users)

	_, err := svc.Create(helpers.TestCtx(), dto.CreateUserRequest{
		Name:     "Jane",
		Email:    "JANE@example.com",
		Password: "pw",
	})
	var dupErr *errs.AlreadyExistsError
	if !errors.As(err, &dupErr) || dupErr.Code != "EMAIL_EXISTS" {
		t.Fatalf("expected EMAIL_EXISTS, got %v", err)
	}
}

func TestCreateUserMissingFields(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.Create(helpers.TestCtx(), dto.CreateUserRequest{Name: "Jane"})
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) || vErr.Code != "MISSING_REQUIRED_FIELDS" {
		t.Fatalf("expected MISSING_REQUIRED_FIELDS, got %v", err)
	}
}

func TestUpdateUserEmailUniquenessExcludesSelf(t *testing.T) {
	users := newFakeUserStore()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	users.add(models.User{ID: 1, Name: "Jane", Email: "jane@example.com", Password: string(hash)})
	users.add(models.User{ID: 2, Name: "John", Email: "john@example.com"})
	svc := NewUserService(users)

	// Re-submitting your own email is fine.
	if _, err := svc.Update(helpers.TestCtx(), 1, dto.UpdateUserRequest{
		Email: helpers.Ptr("jane@example.com"),
	}); err != nil {
		t.Fatalf("own email must not conflict: %v", err)
	}

	// Taking another user's email is not.
	_, err := svc.Update(helpers.TestCtx(), 1, dto.UpdateUserRequest{
		Email: helpers.Ptr("john@example.com"),
	})
	var dupErr *errs.AlreadyExistsError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected EMAIL_EXISTS, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	users := newFakeUserStore()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	users.add(models.User{ID: 1, Email: "jane@example.com", Password: string(hash)})
	svc := NewUserService(users)

	u, err := svc.Login(helpers.TestCtx(), " JANE@example.com ", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("wrong user: %+v", u)
	}

	_, err = svc.Login(helpers.TestCtx(), "jane@example.com", "wrong")
	var authErr *errs.UnauthorizedError
	if !errors.As(err, &authErr) {
		t.Fatalf("wrong password must be unauthorized, got %v", err)
	}

	_, err = svc.Login(helpers.TestCtx(), "nobody@example.com", "pw")
	if !errors.As(err, &authErr) {
		t.Fatalf("unknown email must be unauthorized, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.Get(helpers.TestCtx(), 42)
	var nfErr *errs.NotFoundError
	if !errors.As(err, &nfErr) || nfErr.Code != "USER_NOT_FOUND" {
		t.Fatalf("expected USER_NOT_FOUND, got %v", err)
	}
}
