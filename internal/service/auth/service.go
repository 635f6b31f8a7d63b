package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/model"
	"github.com/medvault/records-api/internal/repository"
	pkgauth "github.com/medvault/records-api/pkg/auth"
	apperrors "github.com/medvault/records-api/pkg/errors"
	"github.com/medvault/records-api/pkg/security"
)

type Service struct {
	accounts    repository.AccountRepository
	tokens      pkgauth.TokenService
	revocations pkgauth.RevocationStore
	hasher      security.PasswordHasher
}

func NewService(accounts repository.AccountRepository, tokens pkgauth.TokenService,
	revocations pkgauth.RevocationStore, hasher security.PasswordHasher) *Service {
	return &Service{
		accounts:    accounts,
		tokens:      tokens,
		revocations: revocations,
		hasher:      hasher,
	}
}

// Register creates a user-tier account and issues its first credential.
// Hospital and admin accounts are provisioned through the accounts service.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	if existing, _ := s.accounts.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperrors.Conflict("email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	account := &model.Account{
		Email:        req.Email,
		Subject:      uuid.New().String(),
		PasswordHash: hash,
		Level:        model.LevelUser,
		ProfileIDs:   model.UUIDList{},
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return s.issue(account)
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	return s.issue(account)
}

// Logout revokes the presented credential until its natural expiry.
func (s *Service) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	return s.revocations.Revoke(ctx, tokenID, expiresAt)
}

// VerifyCredential resolves a bearer credential to a principal. Each request
// re-verifies the token; the only state consulted besides the account lookup
// is the revocation list.
func (s *Service) VerifyCredential(ctx context.Context, credential string) (*model.Principal, string, error) {
	claims, err := s.tokens.Verify(credential)
	if err != nil {
		return nil, "", apperrors.Unauthorized("invalid token")
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	if revoked {
		return nil, "", apperrors.Unauthorized("token revoked")
	}

	account, err := s.accounts.GetBySubject(ctx, claims.Subject)
	if err != nil {
		return nil, "", apperrors.NotFound("account")
	}

	principal := &model.Principal{
		AccountID:  account.ID,
		Email:      account.Email,
		Level:      model.LevelFromGroups(claims.Groups),
		HospitalID: account.HospitalID,
		ProfileIDs: account.ProfileIDs,
	}
	return principal, claims.TokenID, nil
}

// TokenExpiry reports when the presented credential lapses, for revocation.
func (s *Service) TokenExpiry(credential string) (string, time.Time, error) {
	claims, err := s.tokens.Verify(credential)
	if err != nil {
		return "", time.Time{}, apperrors.Unauthorized("invalid token")
	}
	return claims.TokenID, claims.ExpiresAt, nil
}

func (s *Service) issue(account *model.Account) (*model.TokenResponse, error) {
	token, err := s.tokens.Issue(account.Subject, account.Email, model.GroupsForLevel(account.Level))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.TokenResponse{AccessToken: token, Account: account}, nil
}
