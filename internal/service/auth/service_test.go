package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medvault/records-api/internal/model"
	pkgauth "github.com/medvault/records-api/pkg/auth"
	apperrors "github.com/medvault/records-api/pkg/errors"
	"github.com/medvault/records-api/pkg/security"
)

type fakeAccounts struct {
	items map[uuid.UUID]*model.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{items: make(map[uuid.UUID]*model.Account)}
}

func (f *fakeAccounts) Create(_ context.Context, a *model.Account) error {
	a.ID = uuid.New()
	f.items[a.ID] = a
	return nil
}

func (f *fakeAccounts) Get(_ context.Context, id uuid.UUID) (*model.Account, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("account")
	}
	return a, nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range f.items {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, apperrors.NotFound("account")
}

func (f *fakeAccounts) GetBySubject(_ context.Context, subject string) (*model.Account, error) {
	for _, a := range f.items {
		if a.Subject == subject {
			return a, nil
		}
	}
	return nil, apperrors.NotFound("account")
}

func (f *fakeAccounts) Update(_ context.Context, a *model.Account) error {
	f.items[a.ID] = a
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeAccounts) List(_ context.Context, _ map[string]string) ([]*model.Account, error) {
	return nil, nil
}

func (f *fakeAccounts) AppendProfile(_ context.Context, accountID, profileID uuid.UUID) error {
	a := f.items[accountID]
	a.ProfileIDs = append(a.ProfileIDs, profileID)
	return nil
}

func (f *fakeAccounts) RemoveProfile(_ context.Context, accountID, profileID uuid.UUID) error {
	a := f.items[accountID]
	a.ProfileIDs = a.ProfileIDs.Without(profileID)
	return nil
}

type memRevocations struct {
	revoked map[string]bool
}

func (m *memRevocations) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	m.revoked[tokenID] = true
	return nil
}

func (m *memRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return m.revoked[tokenID], nil
}

func newTestService() (*Service, *fakeAccounts) {
	accounts := newFakeAccounts()
	tokens := pkgauth.NewJWTService(pkgauth.Config{Secret: "test-secret", Issuer: "records-api", ExpiryHours: 1})
	revocations := &memRevocations{revoked: make(map[string]bool)}
	return NewService(accounts, tokens, revocations, security.NewBcryptHasher(4)), accounts
}

func TestRegisterIssuesUserCredential(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "pat@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	assert.Equal(t, model.LevelUser, resp.Account.Level)
	assert.NotEmpty(t, resp.Account.Subject)
	assert.NotEqual(t, "correct-horse", resp.Account.PasswordHash)

	// The credential round-trips to the same account and level.
	principal, _, err := svc.VerifyCredential(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Account.ID, principal.AccountID)
	assert.Equal(t, model.LevelUser, principal.Level)
	assert.Equal(t, "pat@example.com", principal.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{Email: "pat@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &model.RegisterRequest{Email: "pat@example.com", Password: "another-pass"})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestLoginChecksPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{Email: "pat@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &model.LoginRequest{Email: "pat@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "pat@example.com", Password: "wrong"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestCredentialCarriesStoredLevel(t *testing.T) {
	svc, accounts := newTestService()
	ctx := context.Background()

	hospitalID := uuid.New()
	account := &model.Account{
		Email:      "clinic@example.com",
		Subject:    uuid.New().String(),
		Level:      model.LevelHospital,
		HospitalID: &hospitalID,
	}
	require.NoError(t, accounts.Create(ctx, account))

	token, err := pkgauth.NewJWTService(pkgauth.Config{Secret: "test-secret", Issuer: "records-api", ExpiryHours: 1}).
		Issue(account.Subject, account.Email, model.GroupsForLevel(account.Level))
	require.NoError(t, err)

	principal, _, err := svc.VerifyCredential(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, model.LevelHospital, principal.Level)
	require.NotNil(t, principal.HospitalID)
	assert.Equal(t, hospitalID, *principal.HospitalID)
}

func TestLogoutRevokesCredential(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &model.RegisterRequest{Email: "pat@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	tokenID, expiresAt, err := svc.TokenExpiry(resp.AccessToken)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, tokenID, expiresAt))

	_, _, err = svc.VerifyCredential(ctx, resp.AccessToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestVerifyCredentialUnknownSubject(t *testing.T) {
	svc, _ := newTestService()

	token, err := pkgauth.NewJWTService(pkgauth.Config{Secret: "test-secret", Issuer: "records-api", ExpiryHours: 1}).
		Issue("ghost-subject", "ghost@example.com", nil)
	require.NoError(t, err)

	_, _, err = svc.VerifyCredential(context.Background(), token)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
