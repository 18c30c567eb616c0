// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"pledger/config"
	deliverycontext "pledger/internal/delivery/context"
	"pledger/internal/domain/entity"
	domainerrors "pledger/internal/domain/errors"
	"pledger/internal/domain/repository"
	"pledger/internal/domain/service"
	"pledger/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.SessionTokenService
	sessionTTL   time.Duration
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.SessionTokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	sessionTTL := time.Duration(0)
	if params.Config != nil && params.Config.Session != nil {
		sessionTTL = params.Config.Session.TTL
	}

	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		sessionTTL:   sessionTTL,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates a new account and logs it in immediately.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	username := strings.TrimSpace(input.Username)
	srv.log(ctx).Info("Starting signup", slog.String("username", username))

	if username == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrCredentialsRequired, "signup rejected")
	}

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during signup")
	}

	newUser := &entity.User{
		Username:     username,
		PasswordHash: hashedPassword,
	}

	var output *usecase.AuthOutput
	txErr := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		sessionRepo := repoFactory.SessionRepo()

		if err := userRepo.Create(ctx, newUser); err != nil {
			if errors.Is(err, repository.ErrUsernameExists) {
				return errors.Wrap(domainerrors.ErrUsernameTaken, "signup rejected")
			}

			return errors.Wrap(err, "failed to create user during signup")
		}

		sessionOutput, err := srv.openSession(ctx, sessionRepo, newUser)
		if err != nil {
			return err
		}
		output = sessionOutput

		return nil
	})

	if txErr != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("username", username), slog.Any("error", txErr))

		return nil, errors.Wrap(txErr, "failed to execute signup transaction")
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", newUser.ID))

	return output, nil
}

// Login authenticates an existing account and opens a fresh session.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user during login")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	// Single insert, no transaction needed.
	output, err := srv.openSession(ctx, srv.sessionRepo, user)
	if err != nil {
		srv.log(ctx).Error("Failed to open session during login", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to open session during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return output, nil
}

// openSession issues a signed cookie value and stores the matching session row.
func (srv *authService) openSession(ctx context.Context, sessionRepo repository.SessionRepository, user *entity.User) (*usecase.AuthOutput, error) {
	cookieValue, tokenHash, err := srv.tokenService.Issue(user.ID, srv.sessionTTL)
	if err != nil {
		return nil, errors.Wrapf(domainerrors.ErrSessionCreationFailed, "failed to issue session token: %v", err)
	}

	expiresAt := time.Now().Add(srv.sessionTTL)
	newSession := &entity.Session{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}

	if err := sessionRepo.Create(ctx, newSession); err != nil {
		return nil, errors.Wrap(err, "failed to store session")
	}

	return &usecase.AuthOutput{
		User:          user,
		SessionToken:  cookieValue,
		SessionExpiry: expiresAt,
	}, nil
}

// Logout invalidates the session carried by the cookie. An invalid or
// already-deleted session is not an error.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Info("Attempting to log out")

	_, tokenHash, err := srv.tokenService.Verify(input.SessionToken)
	if err != nil {
		// Nothing to delete when the cookie cannot be verified.
		srv.log(ctx).Warn("Logout with invalid session cookie", slog.Any("error", err))

		return nil
	}

	// Single operation - use direct repository instance
	if err := srv.sessionRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
		srv.log(ctx).Error("Failed to delete session", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete session")
	}
	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// CurrentUser resolves a session cookie to its user. Every absence case
// (bad signature, missing row, expired row, deleted user) yields (nil, nil).
func (srv *authService) CurrentUser(ctx context.Context, sessionToken string) (*entity.User, error) {
	if sessionToken == "" {
		return nil, nil
	}

	userID, tokenHash, err := srv.tokenService.Verify(sessionToken)
	if err != nil {
		srv.log(ctx).Debug("Session cookie rejected", slog.Any("error", err))

		return nil, nil
	}

	sess, err := srv.sessionRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil
		}
		if errors.Is(err, repository.ErrSessionExpired) {
			// Clean up the expired row so the table does not accumulate them.
			if delErr := srv.sessionRepo.DeleteByTokenHash(ctx, tokenHash); delErr != nil {
				srv.log(ctx).Warn("Failed to delete expired session", slog.Any("error", delErr))
			}

			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find session")
	}

	if sess.UserID != userID {
		srv.log(ctx).Warn("Session user mismatch", slog.Any("cookieUserID", userID), slog.Any("sessionUserID", sess.UserID))

		return nil, nil
	}

	user, err := srv.userRepo.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find session user")
	}

	return user, nil
}
