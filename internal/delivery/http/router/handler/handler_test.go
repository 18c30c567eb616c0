package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"pledger/config"
	"pledger/internal/delivery/http/render"
	"pledger/internal/delivery/http/validator"
	"pledger/internal/domain/entity"
	"pledger/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// Usecase stubs with overridable behaviour per test.

type stubAuthUsecase struct {
	signupFn      func(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error)
	loginFn       func(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error)
	logoutFn      func(ctx context.Context, input *usecase.LogoutInput) error
	currentUserFn func(ctx context.Context, sessionToken string) (*entity.User, error)
}

func (s *stubAuthUsecase) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	return s.signupFn(ctx, input)
}

func (s *stubAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	return s.loginFn(ctx, input)
}

func (s *stubAuthUsecase) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	return s.logoutFn(ctx, input)
}

func (s *stubAuthUsecase) CurrentUser(ctx context.Context, sessionToken string) (*entity.User, error) {
	return s.currentUserFn(ctx, sessionToken)
}

type stubCommitmentUsecase struct {
	createFn   func(ctx context.Context, input *usecase.CreateCommitmentInput) (*usecase.CommitmentOutput, error)
	listFn     func(ctx context.Context, userID uuid.UUID) (*usecase.CommitmentListOutput, error)
	getOwnedFn func(ctx context.Context, userID, commitmentID uuid.UUID) (*usecase.CommitmentOutput, error)
	resolveFn  func(ctx context.Context, input *usecase.ResolveCommitmentInput) (*usecase.CommitmentOutput, error)
}

func (s *stubCommitmentUsecase) Create(ctx context.Context, input *usecase.CreateCommitmentInput) (*usecase.CommitmentOutput, error) {
	return s.createFn(ctx, input)
}

func (s *stubCommitmentUsecase) ListByUser(ctx context.Context, userID uuid.UUID) (*usecase.CommitmentListOutput, error) {
	return s.listFn(ctx, userID)
}

func (s *stubCommitmentUsecase) GetOwned(ctx context.Context, userID, commitmentID uuid.UUID) (*usecase.CommitmentOutput, error) {
	return s.getOwnedFn(ctx, userID, commitmentID)
}

func (s *stubCommitmentUsecase) Resolve(ctx context.Context, input *usecase.ResolveCommitmentInput) (*usecase.CommitmentOutput, error) {
	return s.resolveFn(ctx, input)
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	renderer, err := render.New()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.Validator = validator.New()

	return e
}

func testConfig() *config.Config {
	return &config.Config{Session: &config.SessionConfig{CookieName: "pledger_session", TTL: time.Hour}}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFormContext(e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func testUser() *entity.User {
	return &entity.User{ID: uuid.New(), Username: "alice"}
}

func openCommitment(userID uuid.UUID) *entity.Commitment {
	return &entity.Commitment{
		ID:            uuid.New(),
		UserID:        userID,
		Text:          "ship the release",
		ConfidencePct: 80,
		Deadline:      time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		Status:        entity.StatusOpen,
	}
}
