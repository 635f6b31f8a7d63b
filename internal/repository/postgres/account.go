package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medvault/records-api/internal/model"
	"github.com/medvault/records-api/internal/repository"
)

type accountRepository struct {
	BaseRepository
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{NewBaseRepository(db)}
}

const accountColumns = `id, email, subject, password_hash, access_level, hospital_id, profile_ids, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (id, email, subject, password_hash, access_level, hospital_id, profile_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	if account.ProfileIDs == nil {
		account.ProfileIDs = model.UUIDList{}
	}

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.Subject,
		account.PasswordHash,
		account.Level,
		account.HospitalID,
		account.ProfileIDs,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err := translateErr(err, "account"); err != nil {
		return err
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	if err := translateErr(err, "account"); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	if err := translateErr(err, "account"); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetBySubject(ctx context.Context, subject string) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account,
		`SELECT `+accountColumns+` FROM accounts WHERE subject = $1`, subject)
	if err := translateErr(err, "account"); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE accounts
		SET email = $1, password_hash = $2, access_level = $3, hospital_id = $4, profile_ids = $5, updated_at = $6
		WHERE id = $7
	`
	account.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		account.Email,
		account.PasswordHash,
		account.Level,
		account.HospitalID,
		account.ProfileIDs,
		account.UpdatedAt,
		account.ID,
	)
	if err := translateErr(err, "account"); err != nil {
		return err
	}
	return checkAffected(result, "account")
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return checkAffected(result, "account")
}

var accountFilterColumns = map[string]bool{
	"email":        true,
	"access_level": true,
	"hospital_id":  true,
	"created_at":   true,
}

func (r *accountRepository) List(ctx context.Context, filters map[string]string) ([]*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE 1=1`

	clause, args, err := buildFilterClause(filters, accountFilterColumns, 1)
	if err != nil {
		return nil, err
	}
	query += clause + " ORDER BY created_at DESC"

	var accounts []*model.Account
	if err := r.db.SelectContext(ctx, &accounts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) AppendProfile(ctx context.Context, accountID, profileID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET profile_ids = array_append(profile_ids, $2::uuid), updated_at = $3 WHERE id = $1`,
		accountID, profileID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append profile reference: %w", err)
	}
	return checkAffected(result, "account")
}

func (r *accountRepository) RemoveProfile(ctx context.Context, accountID, profileID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET profile_ids = array_remove(profile_ids, $2::uuid), updated_at = $3 WHERE id = $1`,
		accountID, profileID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to remove profile reference: %w", err)
	}
	return checkAffected(result, "account")
}
