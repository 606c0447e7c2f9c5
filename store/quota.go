package store

import "fmt"

// DefaultQuotaBytes is the amount requested when no quota size is configured.
const DefaultQuotaBytes int64 = 5 * 1024 * 1024

// QuotaManager grants storage before the first directory is obtained.
type QuotaManager interface {
	Request(bytes int64) (granted int64, err error)
}

// UnlimitedQuota grants every request in full.
type UnlimitedQuota struct{}

func (UnlimitedQuota) Request(bytes int64) (int64, error) { return bytes, nil }

// FixedQuota grants requests up to Limit bytes and denies anything larger.
type FixedQuota struct {
	Limit int64
}

func (q FixedQuota) Request(bytes int64) (int64, error) {
	if bytes <= 0 {
		return 0, nil
	}
	if bytes > q.Limit {
		return 0, fmt.Errorf("requested %d bytes, limit %d: %w", bytes, q.Limit, ErrQuotaExceeded)
	}
	return bytes, nil
}
