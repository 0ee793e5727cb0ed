package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talentsphere/internal/types"
)

// DefaultScanLimit caps ListScans when the caller passes no limit.
const DefaultScanLimit = 50

// Store persists accounts and scan history.
type Store interface {
	// CreateAccount inserts the account. It returns false, without error, when
	// the username is already taken.
	CreateAccount(ctx context.Context, acc *AccountRecord) (bool, error)
	// GetAccountByUsername returns nil, nil when no such account exists.
	GetAccountByUsername(ctx context.Context, username string) (*AccountRecord, error)
	SaveScan(ctx context.Context, scan *types.Scan) error
	ListScans(ctx context.Context, username string, limit int) ([]types.Scan, error)
	Close()
}

// AccountRecord is an account row, password hash included.
type AccountRecord struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         string
	CompanyName  string
	CompanyType  string
	CreatedAt    time.Time
}

// Account returns the public view of the record.
func (r *AccountRecord) Account() *types.Account {
	if r == nil {
		return nil
	}
	return &types.Account{
		ID:          r.ID,
		Username:    r.Username,
		Role:        r.Role,
		CompanyName: r.CompanyName,
		CompanyType: r.CompanyType,
		CreatedAt:   r.CreatedAt,
	}
}

func scanLimit(limit int) int {
	if limit <= 0 {
		return DefaultScanLimit
	}
	return limit
}

// prepareScan fills in the ID and timestamp of a scan about to be stored.
func prepareScan(scan *types.Scan) {
	if scan.ID == uuid.Nil {
		scan.ID = uuid.New()
	}
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now().UTC()
	}
}
