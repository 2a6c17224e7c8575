package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Muizzyranking/drf-auth/internal/auth"
	"github.com/Muizzyranking/drf-auth/internal/domain"
	"github.com/Muizzyranking/drf-auth/internal/event"
	"github.com/Muizzyranking/drf-auth/internal/mailer"
	"github.com/Muizzyranking/drf-auth/internal/repository"
	apperrors "github.com/Muizzyranking/drf-auth/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// Config holds the environment-derived settings for the auth service.
type Config struct {
	// VerificationExpiry is the max age of email verification tokens.
	VerificationExpiry time.Duration
	// MailFrom is the sender address on verification emails.
	MailFrom string
	// PublicBaseURL, when set, overrides the request-derived base URL in
	// confirmation links. Set it when the service runs behind a proxy that
	// does not forward the external host.
	PublicBaseURL string
}

// AuthService implements the business logic for signup, activation, and
// session issuing.
type AuthService struct {
	userRepo   repository.UserRepository
	signer     *auth.VerificationSigner
	jwtManager *auth.JWTManager
	mailer     mailer.Mailer
	producer   *event.Producer
	logger     *slog.Logger
	cfg        Config
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	signer *auth.VerificationSigner,
	jwtManager *auth.JWTManager,
	mail mailer.Mailer,
	producer *event.Producer,
	logger *slog.Logger,
	cfg Config,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		signer:     signer,
		jwtManager: jwtManager,
		mailer:     mail,
		producer:   producer,
		logger:     logger,
		cfg:        cfg,
	}
}

// --- Input types ---

// RegisterInput holds the parameters for registering a new user. BaseURL is
// the scheme://host of the incoming request, used to build the confirmation
// link.
type RegisterInput struct {
	Email    string
	Password string
	BaseURL  string
}

// LoginInput holds the parameters for user login.
type LoginInput struct {
	Email    string
	Password string
}

// --- Operations ---

// Register creates an inactive user and dispatches the verification email.
// If the email cannot be dispatched the user is deleted again, so a failed
// signup leaves no row behind and the address stays free to retry.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsActive:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.Validation("Email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.sendVerificationEmail(ctx, user, input.BaseURL); err != nil {
		// Compensate: the account is unusable without its verification
		// email, so remove it rather than strand the address.
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			s.logger.ErrorContext(ctx, "failed to delete user after dispatch failure",
				slog.String("user_id", user.ID),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, apperrors.EmailDispatch(err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// ConfirmEmail validates a verification token and activates the user it names.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) error {
	userID, err := s.signer.Verify(token, s.cfg.VerificationExpiry)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.UserNotFound()
		}
		return fmt.Errorf("get user for activation: %w", err)
	}

	if user.IsActive {
		return apperrors.AlreadyVerified()
	}

	if err := s.userRepo.Activate(ctx, user.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.UserNotFound()
		}
		return fmt.Errorf("activate user: %w", err)
	}
	user.IsActive = true

	// Publish verification event (non-blocking on failure).
	if err := s.producer.PublishUserVerified(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.verified event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "email verified",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// ResendVerification dispatches a fresh verification email to an inactive
// user. Unlike Register, a dispatch failure is not compensated; the account
// already existed.
func (s *AuthService) ResendVerification(ctx context.Context, email, baseURL string) error {
	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.UserNotFound()
		}
		return fmt.Errorf("get user for resend: %w", err)
	}

	if user.IsActive {
		return apperrors.AlreadyVerified()
	}

	if err := s.sendVerificationEmail(ctx, user, baseURL); err != nil {
		return apperrors.EmailDispatch(err)
	}

	s.logger.InfoContext(ctx, "verification email resent",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// Login authenticates a user with email and password, returning a token pair.
// A missing user and a wrong password are indistinguishable to the caller; an
// unverified account is reported as such only after the password matched.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		return nil, apperrors.AuthenticationFailed("Invalid email or password.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.AuthenticationFailed("Invalid email or password.")
	}

	if !user.IsActive {
		return nil, apperrors.AuthenticationFailed("Email not verified. Please verify your email.")
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	// Publish login event (non-blocking on failure).
	if err := s.producer.PublishUserLoggedIn(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.logged_in event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return tokens, nil
}

// Refresh validates a refresh token and mints a new access token. The refresh
// token is stateless: no store lookup, no rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperrors.InvalidRefreshToken()
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	s.logger.DebugContext(ctx, "access token refreshed",
		slog.String("user_id", claims.UserID),
	)

	return accessToken, nil
}

// --- Helpers ---

// generateTokenPair mints an access/refresh token pair for the user.
func (s *AuthService) generateTokenPair(user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &domain.TokenPair{
		Access:  accessToken,
		Refresh: refreshToken,
	}, nil
}

// sendVerificationEmail signs a token for the user and dispatches the
// verification email carrying the confirmation link.
func (s *AuthService) sendVerificationEmail(ctx context.Context, user *domain.User, baseURL string) error {
	token, err := s.signer.Sign(user.ID)
	if err != nil {
		return fmt.Errorf("sign verification token: %w", err)
	}

	html, err := mailer.RenderVerificationEmail(s.confirmURL(baseURL, token))
	if err != nil {
		return err
	}

	msg := &mailer.Message{
		From:    s.cfg.MailFrom,
		To:      user.Email,
		Subject: mailer.SubjectVerifyEmail,
		HTML:    html,
	}

	return s.mailer.Send(ctx, msg)
}

// confirmURL builds the link embedded in verification emails. A configured
// public base URL wins over the request-derived one.
func (s *AuthService) confirmURL(requestBaseURL, token string) string {
	base := s.cfg.PublicBaseURL
	if base == "" {
		base = requestBaseURL
	}
	return strings.TrimRight(base, "/") + "/api/auth/confirm-email/" + token
}
