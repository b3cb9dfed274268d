package audit

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AccountAuditLogger records account actions to the audit_logs table.
type AccountAuditLogger struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewAccountAuditLogger(db *gorm.DB, logger zerolog.Logger) *AccountAuditLogger {
	return &AccountAuditLogger{db: db, logger: logger}
}

type AccountAuditEntry struct {
	UserID     uint
	Username   string
	Action     string
	IPAddress  string
	UserAgent  string
	StatusCode int
	Error      error
}

// Log persists the account action; best-effort (logs warning on failure).
func (l *AccountAuditLogger) Log(ctx context.Context, entry AccountAuditEntry) {
	if l == nil || l.db == nil {
		return
	}

	var userID any
	if entry.UserID != 0 {
		userID = entry.UserID
	}

	sql := `
INSERT INTO companion.audit_logs
    (user_id, username, action, ip_address, user_agent, status_code, error_message)
VALUES
    (?, ?, ?, ?, ?, ?, ?)
`
	if err := l.db.WithContext(ctx).Exec(sql,
		userID,
		entry.Username,
		entry.Action,
		entry.IPAddress,
		entry.UserAgent,
		entry.StatusCode,
		errorString(entry.Error),
	).Error; err != nil {
		l.logger.Warn().Err(err).Str("action", entry.Action).Msg("failed to write account audit log")
	}
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
