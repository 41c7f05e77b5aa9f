package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuananhdo/shopora-backend/pkg/config"
	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
	"github.com/tuananhdo/shopora-backend/pkg/security"
)

type stubUserRepo struct {
	byEmail    map[string]*models.User
	created    []*models.User
	lastLogins []uuid.UUID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: map[string]*models.User{}}
}

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	r.created = append(r.created, user)
	r.byEmail[user.Email] = user
	return nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.byEmail[email], nil
}

func (r *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.lastLogins = append(r.lastLogins, id)
	return nil
}

type stubSessions struct {
	generated []string
	revoked   []string
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) error {
	s.generated = append(s.generated, accessID)
	return nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testService(t *testing.T, repo *stubUserRepo, sessions *stubSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "shopora-test",
			ExpirationMinutes: 60,
		},
		PasswordConfig: config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     8,
			ArgonKeyLen:      16,
		},
	})
	require.NoError(t, err)
	return svc
}

func TestRegisterCreatesUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := testService(t, repo, &stubSessions{})

	dto, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "An Tran",
		Email:    "An@Example.com",
		Phone:    "0900000001",
		Username: "antran",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "an@example.com", dto.Email)
	assert.Equal(t, "customer", dto.Roles)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)

	ok, err := security.VerifyPassword("hunter2hunter2", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.byEmail["an@example.com"] = &models.User{ID: uuid.New(), Email: "an@example.com"}
	svc := testService(t, repo, &stubSessions{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "An Tran",
		Email:    "an@example.com",
		Phone:    "0900000001",
		Username: "antran",
		Password: "hunter2hunter2",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestLoginReturnsBearerToken(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessions{}
	svc := testService(t, repo, sessions)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "An Tran",
		Email:    "an@example.com",
		Phone:    "0900000001",
		Username: "antran",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "an@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "an@example.com", resp.User.Email)
	assert.Len(t, sessions.generated, 1)
	assert.Len(t, repo.lastLogins, 1)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := testService(t, repo, &stubSessions{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "An Tran",
		Email:    "an@example.com",
		Phone:    "0900000001",
		Username: "antran",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "an@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc := testService(t, newStubUserRepo(), &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessions{}
	svc := testService(t, newStubUserRepo(), sessions)

	require.NoError(t, svc.Logout(context.Background(), "access-1"))
	assert.Equal(t, []string{"access-1"}, sessions.revoked)

	err := svc.Logout(context.Background(), " ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}
