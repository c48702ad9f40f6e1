// Package journal holds the trade and user records of the trading journal
// and the SQLite store they live in.
package journal

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ResultType is the outcome the trader tagged a trade with. It is set by hand
// and is not derived from the sign of the financial result.
type ResultType string

const (
	Win       ResultType = "WIN"
	Loss      ResultType = "LOSS"
	BreakEven ResultType = "BE"
)

// Valid reports whether r is one of WIN, LOSS or BE.
func (r ResultType) Valid() bool {
	switch r {
	case Win, Loss, BreakEven:
		return true
	}
	return false
}

// ParseResultType accepts any casing of WIN, LOSS or BE.
func ParseResultType(s string) (ResultType, bool) {
	r := ResultType(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// DateLayout is the civil date format used for trade dates.
const DateLayout = "2006-01-02"

// Trade is one journal entry.
type Trade struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	TradeDate       string     `json:"tradeDate"`
	Asset           string     `json:"asset"`
	FinancialResult string     `json:"financialResult"`
	ResultType      ResultType `json:"resultType"`
	RiskRewardRatio string     `json:"riskRewardRatio,omitempty"`
	FollowedPlan    bool       `json:"followedPlan"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	Comment         string     `json:"comment,omitempty"`
	Emotions        string     `json:"emotions,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Subscription statuses mirrored from the billing provider.
const (
	SubscriptionActive   = "active"
	SubscriptionTrialing = "trialing"
	SubscriptionCanceled = "canceled"
	SubscriptionUnpaid   = "unpaid"
	SubscriptionExpired  = "incomplete_expired"
)

// User owns a set of trades.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	PasswordHash       string    `json:"-"`
	SubscriptionStatus string    `json:"subscriptionStatus"`
	CreatedAt          time.Time `json:"createdAt"`
}

// HasAccess reports whether the user's subscription unlocks the journal.
func (u User) HasAccess() bool {
	return SubscriptionGrantsAccess(u.SubscriptionStatus)
}

// SubscriptionGrantsAccess is true for active and trialing subscriptions.
func SubscriptionGrantsAccess(status string) bool {
	return status == SubscriptionActive || status == SubscriptionTrialing
}

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store is the data-access side of the journal.
type Store interface {
	SaveTrade(ctx context.Context, t *Trade) error
	DeleteTrade(ctx context.Context, userID, tradeID string) error
	GetTrade(ctx context.Context, userID, tradeID string) (Trade, error)
	ListTradesBetween(ctx context.Context, userID, start, end string) ([]Trade, error)
	ListTrades(ctx context.Context, userID string, f Filter) ([]Trade, error)

	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, userID string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateSubscription(ctx context.Context, userID, status string) error

	Close() error
}
