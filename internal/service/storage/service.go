package storage

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"

	"github.com/medvault/records-api/internal/config"
	"github.com/medvault/records-api/internal/model"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

// Credentials are short-lived scoped storage credentials. Only metadata and
// path keys flow through this service; file content goes straight to the
// object store.
type Credentials struct {
	AccessToken string    `json:"access_token"`
	Bucket      string    `json:"bucket"`
	Prefix      string    `json:"prefix"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Service struct {
	secret []byte
	bucket string
	ttl    time.Duration
	issued *cache.Cache
}

func NewService(cfg config.StorageConfig) *Service {
	ttl := time.Duration(cfg.CredentialTTLMin) * time.Minute
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Service{
		secret: []byte(cfg.CredentialSecret),
		bucket: cfg.Bucket,
		ttl:    ttl,
		issued: cache.New(ttl, 2*ttl),
	}
}

// Vend issues credentials scoped to the caller's own prefix. Admin callers
// may request an arbitrary prefix. Issued credentials are reused until they
// expire.
func (s *Service) Vend(principal *model.Principal, prefix string) (*Credentials, error) {
	own := fmt.Sprintf("accounts/%s/", principal.AccountID)
	if prefix == "" {
		prefix = own
	}
	if prefix != own && !principal.Level.AtLeast(model.LevelAdmin) {
		return nil, apperrors.Forbidden("cannot request credentials outside own prefix")
	}

	cacheKey := principal.AccountID.String() + "|" + prefix
	if v, ok := s.issued.Get(cacheKey); ok {
		return v.(*Credentials), nil
	}

	expires := time.Now().Add(s.ttl)
	claims := jwt.MapClaims{
		"sub":    principal.AccountID.String(),
		"bucket": s.bucket,
		"prefix": prefix,
		"exp":    expires.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	creds := &Credentials{
		AccessToken: token,
		Bucket:      s.bucket,
		Prefix:      prefix,
		ExpiresAt:   expires,
	}
	s.issued.Set(cacheKey, creds, time.Until(expires)-time.Minute)
	return creds, nil
}
