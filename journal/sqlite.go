package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradejournal/internal/id"
)

// SQLite is a Store backed by a single SQLite file.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

// SaveTrade inserts t when it has no ID yet, otherwise updates the stored
// trade with the same ID and owner. On insert the ID and CreatedAt are filled in.
func (j *SQLite) SaveTrade(ctx context.Context, t *Trade) error {
	if t.ID == "" {
		now := j.now().UTC()
		t.ID = id.NewAt(now)
		t.CreatedAt = now
		_, err := j.db.ExecContext(ctx, `
			INSERT INTO trades
			(id, user_id, trade_date, asset, financial_result, result_type, risk_reward_ratio,
			 followed_plan, image_url, comment, emotions, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.UserID, t.TradeDate, t.Asset, t.FinancialResult, string(t.ResultType),
			t.RiskRewardRatio, t.FollowedPlan, t.ImageURL, t.Comment, t.Emotions, t.CreatedAt,
		)
		if err != nil {
			t.ID = ""
			return fmt.Errorf("insert trade: %w", err)
		}
		return nil
	}

	res, err := j.db.ExecContext(ctx, `
		UPDATE trades SET
			trade_date = ?, asset = ?, financial_result = ?, result_type = ?, risk_reward_ratio = ?,
			followed_plan = ?, image_url = ?, comment = ?, emotions = ?
		WHERE id = ? AND user_id = ?`,
		t.TradeDate, t.Asset, t.FinancialResult, string(t.ResultType), t.RiskRewardRatio,
		t.FollowedPlan, t.ImageURL, t.Comment, t.Emotions,
		t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	return expectOneRow(res, "trade", t.ID)
}

func (j *SQLite) DeleteTrade(ctx context.Context, userID, tradeID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ? AND user_id = ?`, tradeID, userID)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	return expectOneRow(res, "trade", tradeID)
}

// CreateUser stores u with a fresh ID. Emails are compared case-insensitively.
func (j *SQLite) CreateUser(ctx context.Context, u *User) error {
	now := j.now().UTC()
	u.ID = id.NewAt(now)
	u.Email = normalizeEmail(u.Email)
	u.CreatedAt = now

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, subscription_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.SubscriptionStatus, u.CreatedAt,
	)
	if err != nil {
		u.ID = ""
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("create user %q: %w", u.Email, ErrDuplicateEmail)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (j *SQLite) UpdateSubscription(ctx context.Context, userID, status string) error {
	res, err := j.db.ExecContext(ctx, `UPDATE users SET subscription_status = ? WHERE id = ?`, status, userID)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return expectOneRow(res, "user", userID)
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func expectOneRow(res sql.Result, kind, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", kind, key, ErrNotFound)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
