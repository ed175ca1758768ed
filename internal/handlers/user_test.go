package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/errs"
	"github.com/finsight/finsight-backend/internal/models"
)

type stubUserService struct {
	createCalled bool
	createReq    dto.CreateUserRequest
	createUser   models.User
	createErr    error

	getID   int
	getUser models.User
	getErr  error

	loginEmail    string
	loginPassword string
	loginUser     models.User
	loginErr      error
}

func (s *stubUserService) List(ctx context.Context) ([]models.User, error) { return nil, nil }

func (s *stubUserService) Get(ctx context.Context, id int) (models.User, error) {
	s.getID = id
	return s.getUser, s.getErr
}

func (s *stubUserService) Create(ctx context.Context, req dto.CreateUserRequest) (models.User, error) {
	s.createCalled = true
	s.createReq = req
	return s.createUser, s.createErr
}

func (s *stubUserService) Update(ctx context.Context, id int, req dto.UpdateUserRequest) (models.User, error) {
	return models.User{}, nil
}

func (s *stubUserService) Delete(ctx context.Context, id int) (models.User, error) {
	return models.User{}, nil
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (models.User, error) {
	s.loginEmail = email
	s.loginPassword = password
	return s.loginUser, s.loginErr
}

type stubResponseHandler struct {
	writeJSONCalled bool
	writeJSONStatus int
	writeJSONData   any

	handleErrorCalled bool
	handleError       error
}

func (s *stubResponseHandler) WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	s.writeJSONCalled = true
	s.writeJSONStatus = status
	s.writeJSONData = data
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

func TestCreateUserSuccess(t *testing.T) {
	userSvc := &stubUserService{createUser: models.User{ID: 1, Name: "Jane"}}
	resp := &stubResponseHandler{}

	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	body := `{"name":"Jane","email":"jane@example.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if !userSvc.createCalled {
		t.Fatalf("expected Create to be called on service")
	}
	if userSvc.createReq.Email != "jane@example.com" {
		t.Fatalf("service received wrong request: %+v", userSvc.createReq)
	}
	if !resp.writeJSONCalled || resp.writeJSONStatus != http.StatusCreated {
		t.Fatalf("WriteJSON not called with status 201")
	}
	if u, ok := resp.writeJSONData.(models.User); !ok || u.ID != 1 {
		t.Fatalf("expected bare user record, got %T", resp.writeJSONData)
	}
}

func TestCreateUserInvalidJSON(t *testing.T) {
	userSvc := &stubUserService{}
	resp := &stubResponseHandler{}

	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("not-json"))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if userSvc.createCalled {
		t.Fatalf("service must not be called on malformed JSON")
	}
	if !resp.handleErrorCalled {
		t.Fatalf("expected HandleError for malformed JSON")
	}
	vErr, ok := resp.handleError.(*errs.ValidationError)
	if !ok || vErr.Code != "INVALID_JSON" {
		t.Fatalf("expected INVALID_JSON, got %v", resp.handleError)
	}
}

func TestGetUserByID(t *testing.T) {
	userSvc := &stubUserService{getUser: models.User{ID: 7}}
	resp := &stubResponseHandler{}

	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	req := httptest.NewRequest(http.MethodGet, "/users?id=7", nil)
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if userSvc.getID != 7 {
		t.Fatalf("service received wrong id: %d", userSvc.getID)
	}
	if !resp.writeJSONCalled || resp.writeJSONStatus != http.StatusOK {
		t.Fatalf("WriteJSON not called with status 200")
	}
}

func TestGetUserInvalidID(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: &stubUserService{}})

	req := httptest.NewRequest(http.MethodGet, "/users?id=abc", nil)
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if !resp.handleErrorCalled {
		t.Fatalf("expected HandleError for non-numeric id")
	}
	vErr, ok := resp.handleError.(*errs.ValidationError)
	if !ok || vErr.Code != "INVALID_ID" {
		t.Fatalf("expected INVALID_ID, got %v", resp.handleError)
	}
}

func TestLoginPassesCredentials(t *testing.T) {
	userSvc := &stubUserService{loginUser: models.User{ID: 1}}
	resp := &stubResponseHandler{}

	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	body := `{"email":"jane@example.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if userSvc.loginEmail != "jane@example.com" || userSvc.loginPassword != "pw" {
		t.Fatalf("wrong credentials passed: %s/%s", userSvc.loginEmail, userSvc.loginPassword)
	}
	if !resp.writeJSONCalled || resp.writeJSONStatus != http.StatusOK {
		t.Fatalf("WriteJSON not called with status 200")
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: &stubUserService{}})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.c"}`))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	vErr, ok := resp.handleError.(*errs.ValidationError)
	if !ok || vErr.Code != "MISSING_CREDENTIALS" {
		t.Fatalf("expected MISSING_CREDENTIALS, got %v", resp.handleError)
	}
}
