package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Muizzyranking/drf-auth/internal/auth"
	"github.com/Muizzyranking/drf-auth/internal/domain"
	"github.com/Muizzyranking/drf-auth/internal/event"
	"github.com/Muizzyranking/drf-auth/internal/mailer"
	"github.com/Muizzyranking/drf-auth/internal/service"
	apperrors "github.com/Muizzyranking/drf-auth/pkg/errors"
	"github.com/Muizzyranking/drf-auth/pkg/health"
	"github.com/Muizzyranking/drf-auth/pkg/httputil"
	pkgkafka "github.com/Muizzyranking/drf-auth/pkg/kafka"
	"github.com/Muizzyranking/drf-auth/pkg/middleware"
)

const (
	testJWTSecret          = "test-jwt-secret-key-for-testing-only"
	testVerificationSecret = "test-verification-secret-for-testing"
)

// ============================================================================
// Mocks
// ============================================================================

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Activate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *mockMailer) Send(ctx context.Context, msg *mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager(testJWTSecret, 15*time.Minute, 7*24*time.Hour)
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func testAuthService(repo *mockUserRepository, mail *mockMailer) *service.AuthService {
	return service.NewAuthService(
		repo,
		auth.NewVerificationSigner(testVerificationSecret),
		testJWTManager(),
		mail,
		testEventProducer(),
		testLogger(),
		service.Config{
			VerificationExpiry: 24 * time.Hour,
			MailFrom:           "no-reply@example.com",
		},
	)
}

// setupRouter builds the production router backed by mocks, so routing,
// middleware, and handler behavior are tested end-to-end.
func setupRouter(repo *mockUserRepository, mail *mockMailer) http.Handler {
	return NewRouter(
		testAuthService(repo, mail),
		testJWTManager(),
		health.NewHandler(),
		testLogger(),
		middleware.DefaultCORSConfig(),
		nil,
	)
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func getPath(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeMessage reads the {"message": ...} response body.
func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp httputil.MessageResponse
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp.Message
}

func hashForTest(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), 4)
	if err != nil {
		panic(err)
	}
	return string(h)
}

func activeUser() *domain.User {
	return &domain.User{
		ID:           "user-123",
		Email:        "alice@example.com",
		PasswordHash: hashForTest("SecurePass123"),
		IsActive:     true,
	}
}

func inactiveUser() *domain.User {
	u := activeUser()
	u.IsActive = false
	return u
}

// ============================================================================
// POST /api/auth/signup
// ============================================================================

func TestSignup_Success(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	mail.On("Send", mock.Anything, mock.AnythingOfType("*mailer.Message")).Return(nil)

	rec := postJSON(t, router, "/api/auth/signup", map[string]string{
		"email":    "alice@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "User created successfully", decodeMessage(t, rec))
	repo.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestSignup_ConfirmLinkUsesRequestHost(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	var sent *mailer.Message
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	mail.On("Send", mock.Anything, mock.AnythingOfType("*mailer.Message")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*mailer.Message) }).
		Return(nil)

	b, _ := json.Marshal(map[string]string{"email": "alice@example.com", "password": "pw"})
	req := httptest.NewRequest(http.MethodPost, "http://auth.example.com/api/auth/signup", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, sent)
	assert.Contains(t, sent.HTML, "https://auth.example.com/api/auth/confirm-email/")
}

func TestSignup_MissingEmail(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	rec := postJSON(t, router, "/api/auth/signup", map[string]string{
		"password": "SecurePass123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email is required", decodeMessage(t, rec))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_InvalidEmail(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	rec := postJSON(t, router, "/api/auth/signup", map[string]string{
		"email":    "not-an-email",
		"password": "SecurePass123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Enter a valid email address.", decodeMessage(t, rec))
}

func TestSignup_MissingPassword(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	rec := postJSON(t, router, "/api/auth/signup", map[string]string{
		"email": "alice@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password is required", decodeMessage(t, rec))
}

func TestSignup_MalformedJSON(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader([]byte(`{`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeMessage(t, rec))
}

func TestSignup_WrongContentType(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader([]byte("email=a")))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, "Content-Type must be application/json", decodeMessage(t, rec))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(apperrors.Wrap(apperrors.ErrAlreadyExists, "insert user alice@example.com"))

	rec := postJSON(t, router, "/api/auth/signup", map[string]string{
		"email":    "alice@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already exists", decodeMessage(t, rec))
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSignup_DispatchFailure(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	mail.On("Send", mock.Anything, mock.AnythingOfType("*mailer.Message")).
		Return(assert.AnError)
	repo.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	rec := postJSON(t, router, "/api/auth/signup", map[string]string{
		"email":    "alice@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMessage(t, rec), "failed to send verification email:")
	repo.AssertCalled(t, "Delete", mock.Anything, mock.AnythingOfType("string"))
}

// ============================================================================
// GET /api/auth/confirm-email/{token}
// ============================================================================

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.NewVerificationSigner(testVerificationSecret).Sign(userID)
	require.NoError(t, err)
	return token
}

func TestConfirmEmail_Success(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("GetByID", mock.Anything, "user-123").Return(inactiveUser(), nil)
	repo.On("Activate", mock.Anything, "user-123").Return(nil)

	rec := getPath(router, "/api/auth/confirm-email/"+signToken(t, "user-123"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Email verified successfully!", decodeMessage(t, rec))
	repo.AssertExpectations(t)
}

func TestConfirmEmail_InvalidToken(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	rec := getPath(router, "/api/auth/confirm-email/not-a-real-token")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid token", decodeMessage(t, rec))
}

func TestConfirmEmail_UserNotFound(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("GetByID", mock.Anything, "user-gone").Return(nil, apperrors.ErrNotFound)

	rec := getPath(router, "/api/auth/confirm-email/"+signToken(t, "user-gone"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeMessage(t, rec))
}

func TestConfirmEmail_AlreadyVerified(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("GetByID", mock.Anything, "user-123").Return(activeUser(), nil)

	rec := getPath(router, "/api/auth/confirm-email/"+signToken(t, "user-123"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email is already verified.", decodeMessage(t, rec))
	repo.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
}

// ============================================================================
// GET /api/auth/resend_verification_mail
// ============================================================================

func TestResendVerification_Success(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(inactiveUser(), nil)
	mail.On("Send", mock.Anything, mock.AnythingOfType("*mailer.Message")).Return(nil)

	rec := getPath(router, "/api/auth/resend_verification_mail?email=alice@example.com")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Verification email sent", decodeMessage(t, rec))
	mail.AssertExpectations(t)
}

func TestResendVerification_NoEmail(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	rec := getPath(router, "/api/auth/resend_verification_mail")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No email is provided", decodeMessage(t, rec))
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestResendVerification_UnknownEmail(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	rec := getPath(router, "/api/auth/resend_verification_mail?email=ghost@example.com")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeMessage(t, rec))
}

func TestResendVerification_AlreadyVerified(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(activeUser(), nil)

	rec := getPath(router, "/api/auth/resend_verification_mail?email=alice@example.com")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email is already verified.", decodeMessage(t, rec))
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

// ============================================================================
// POST /api/auth/login
// ============================================================================

func TestLogin_Success(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(activeUser(), nil)

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)

	claims, err := testJWTManager().ValidateAccessToken(resp.Access)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(activeUser(), nil)

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "WrongPass456",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password.", decodeMessage(t, rec))
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password.", decodeMessage(t, rec))
}

func TestLogin_UnverifiedUser(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(inactiveUser(), nil)

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Email not verified. Please verify your email.", decodeMessage(t, rec))
}

func TestLogin_MissingPassword(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"email": "alice@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password is required", decodeMessage(t, rec))
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

// ============================================================================
// POST /api/auth/refresh_token
// ============================================================================

func TestRefreshToken_Success(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	refreshToken, err := testJWTManager().GenerateRefreshToken("user-123", "alice@example.com")
	require.NoError(t, err)

	rec := postJSON(t, router, "/api/auth/refresh_token", map[string]string{
		"refresh": refreshToken,
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	// The body carries the new access token and nothing else.
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Contains(t, body, "access")
	assert.NotContains(t, body, "refresh")
	assert.NotContains(t, body, "message")

	claims, err := testJWTManager().ValidateAccessToken(body["access"].(string))
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestRefreshToken_Invalid(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	rec := postJSON(t, router, "/api/auth/refresh_token", map[string]string{
		"refresh": "garbage",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid refresh token.", decodeMessage(t, rec))
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	accessToken, err := testJWTManager().GenerateAccessToken("user-123", "alice@example.com")
	require.NoError(t, err)

	rec := postJSON(t, router, "/api/auth/refresh_token", map[string]string{
		"refresh": accessToken,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid refresh token.", decodeMessage(t, rec))
}

func TestRefreshToken_MissingField(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	rec := postJSON(t, router, "/api/auth/refresh_token", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Refresh is required", decodeMessage(t, rec))
}

// ============================================================================
// GET /api/auth/protected
// ============================================================================

func TestProtected_WithValidToken(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	accessToken, err := testJWTManager().GenerateAccessToken("user-123", "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "You have accessed a protected route!", decodeMessage(t, rec))
}

func TestProtected_MissingHeader(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	rec := getPath(router, "/api/auth/protected")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing authorization header", decodeMessage(t, rec))
}

func TestProtected_MalformedHeader(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid authorization header format", decodeMessage(t, rec))
}

func TestProtected_GarbageToken(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", decodeMessage(t, rec))
}

func TestProtected_RefreshTokenRejected(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	refreshToken, err := testJWTManager().GenerateRefreshToken("user-123", "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", decodeMessage(t, rec))
}

// ============================================================================
// Router wiring
// ============================================================================

func TestRouter_UnknownRoute(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	rec := getPath(router, "/api/auth/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "resource not found", decodeMessage(t, rec))
}

func TestRouter_WrongMethod(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	rec := getPath(router, "/api/auth/signup")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method not allowed", decodeMessage(t, rec))
}

func TestRouter_HealthEndpoints(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	root := getPath(router, "/health")
	assert.Equal(t, http.StatusOK, root.Code)

	live := getPath(router, "/health/live")
	assert.Equal(t, http.StatusOK, live.Code)

	ready := getPath(router, "/health/ready")
	assert.Equal(t, http.StatusOK, ready.Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	repo := new(mockUserRepository)
	mail := new(mockMailer)
	router := setupRouter(repo, mail)

	rec := getPath(router, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}
