package journal

const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	subscription_status TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	trade_date TEXT NOT NULL,
	asset TEXT NOT NULL,
	financial_result TEXT NOT NULL,
	result_type TEXT NOT NULL,
	risk_reward_ratio TEXT NOT NULL DEFAULT '',
	followed_plan BOOLEAN NOT NULL DEFAULT 0,
	image_url TEXT NOT NULL DEFAULT '',
	comment TEXT NOT NULL DEFAULT '',
	emotions TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_user_date ON trades(user_id, trade_date);
`
