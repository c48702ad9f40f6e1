package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const tradeColumns = `id, user_id, trade_date, asset, financial_result, result_type, risk_reward_ratio,
	followed_plan, image_url, comment, emotions, created_at`

// GetTrade returns a single trade owned by userID.
func (j *SQLite) GetTrade(ctx context.Context, userID, tradeID string) (Trade, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE id = ? AND user_id = ?`, tradeID, userID)

	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Trade{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return Trade{}, err
	}
	return rec, nil
}

// ListTradesBetween returns the user's trades dated within [start, end], both
// inclusive YYYY-MM-DD strings, oldest first.
func (j *SQLite) ListTradesBetween(ctx context.Context, userID, start, end string) ([]Trade, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE user_id = ? AND trade_date >= ? AND trade_date <= ?
		ORDER BY trade_date ASC, id ASC`, userID, start, end)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

// ListTrades returns the user's trades matching f, newest first.
func (j *SQLite) ListTrades(ctx context.Context, userID string, f Filter) ([]Trade, error) {
	where, args := f.where()
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE user_id = ?`
	if where != "" {
		query += " AND " + where
	}
	query += " ORDER BY trade_date DESC, id DESC"

	rows, err := j.db.QueryContext(ctx, query, append([]any{userID}, args...)...)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

func (j *SQLite) GetUser(ctx context.Context, userID string) (User, error) {
	return j.getUser(ctx, "id = ?", userID)
}

func (j *SQLite) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return j.getUser(ctx, "email = ?", normalizeEmail(email))
}

func (j *SQLite) getUser(ctx context.Context, cond string, arg string) (User, error) {
	var u User
	err := j.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, subscription_status, created_at
		FROM users
		WHERE `+cond, arg).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.SubscriptionStatus,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, fmt.Errorf("user %q: %w", arg, ErrNotFound)
		}
		return User{}, err
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (Trade, error) {
	var (
		rec        Trade
		resultType string
	)
	err := s.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.TradeDate,
		&rec.Asset,
		&rec.FinancialResult,
		&resultType,
		&rec.RiskRewardRatio,
		&rec.FollowedPlan,
		&rec.ImageURL,
		&rec.Comment,
		&rec.Emotions,
		&rec.CreatedAt,
	)
	rec.ResultType = ResultType(resultType)
	return rec, err
}

func collectTrades(rows *sql.Rows) ([]Trade, error) {
	defer rows.Close()

	out := []Trade{}
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
