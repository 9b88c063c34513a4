package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the persistent ledger store. All mutations are single
// statements or transactions, so concurrent readers never observe a partial
// write.
type SQLiteRepository struct {
	db *sql.DB

	// now stamps created_at on insert; injectable for deterministic tests.
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertTransaction implements ledger.TransactionWriter.
func (r *SQLiteRepository) InsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	createdAt := r.now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (user_id, kind, category, amount_cents, description, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Owner, string(t.Kind), t.Category, t.Amount.Cents, t.Description, t.Date.String(), createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"owner", t.Owner,
		"kind", t.Kind,
		"category", t.Category,
		"amount_cents", t.Amount.Cents,
		"date", t.Date.String())

	return id, nil
}

// ListTransactions implements ledger.TransactionLister.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, owner string, limit int) ([]core.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, kind, category, amount_cents, description, date, created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY date DESC, created_at DESC
		LIMIT ?`,
		owner, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetTransaction implements ledger.TransactionGetter.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, kind, category, amount_cents, description, date, created_at
		FROM transactions
		WHERE id = ?`, id)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// DeleteTransaction implements ledger.TransactionDeleter. A hard delete;
// returns core.ErrNotFound when the id does not exist.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// UpsertBudgetGoal implements ledger.GoalWriter. A colliding
// (owner, category, month, year) key replaces the prior amount in place.
func (r *SQLiteRepository) UpsertBudgetGoal(ctx context.Context, g core.BudgetGoal) error {
	if err := g.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budget_goals (user_id, category, amount_cents, month, year)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, category, month, year)
		DO UPDATE SET amount_cents = excluded.amount_cents`,
		g.Owner, g.Category, g.Amount.Cents, g.Month, g.Year)
	if err != nil {
		return fmt.Errorf("upsert budget goal: %w", err)
	}

	slog.InfoContext(ctx, "Budget goal set",
		"owner", g.Owner,
		"category", g.Category,
		"amount_cents", g.Amount.Cents,
		"month", g.Month,
		"year", g.Year)

	return nil
}

// ListBudgetGoals implements ledger.GoalLister. Month and year both non-zero
// narrow the result to one period, otherwise all goals for the owner.
func (r *SQLiteRepository) ListBudgetGoals(ctx context.Context, owner string, month, year int) ([]core.BudgetGoal, error) {
	query := `
		SELECT id, user_id, category, amount_cents, month, year
		FROM budget_goals
		WHERE user_id = ?
		ORDER BY year, month, category`
	args := []any{owner}

	if month != 0 && year != 0 {
		query = `
			SELECT id, user_id, category, amount_cents, month, year
			FROM budget_goals
			WHERE user_id = ? AND month = ? AND year = ?
			ORDER BY category`
		args = append(args, month, year)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budget goals: %w", err)
	}
	defer rows.Close()

	var goals []core.BudgetGoal
	for rows.Next() {
		var g core.BudgetGoal
		if err := rows.Scan(&g.ID, &g.Owner, &g.Category, &g.Amount.Cents, &g.Month, &g.Year); err != nil {
			return nil, fmt.Errorf("scan budget goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budget goals: %w", err)
	}
	return goals, nil
}

// ListTransactionsSince implements ledger.HistoryReader.
func (r *SQLiteRepository) ListTransactionsSince(ctx context.Context, owner string, from core.Date) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, kind, category, amount_cents, description, date, created_at
		FROM transactions
		WHERE user_id = ? AND date >= ?
		ORDER BY date, created_at`,
		owner, from.String())
	if err != nil {
		return nil, fmt.Errorf("list transactions since %s: %w", from, err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ExpenseTotalsByCategory implements ledger.SpendingReader. Sums expense
// amounts for one calendar month, grouped by category.
func (r *SQLiteRepository) ExpenseTotalsByCategory(ctx context.Context, owner string, month, year int) (map[string]core.Money, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents)
		FROM transactions
		WHERE user_id = ? AND kind = 'expense'
			AND strftime('%m', date) = ?
			AND strftime('%Y', date) = ?
		GROUP BY category`,
		owner, fmt.Sprintf("%02d", month), fmt.Sprintf("%04d", year))
	if err != nil {
		return nil, fmt.Errorf("expense totals by category: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]core.Money)
	for rows.Next() {
		var category string
		var cents int64
		if err := rows.Scan(&category, &cents); err != nil {
			return nil, fmt.Errorf("scan expense total: %w", err)
		}
		totals[category] = core.Money{Cents: cents}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense totals: %w", err)
	}
	return totals, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t       core.Transaction
		kind    string
		dateStr string
	)
	if err := row.Scan(&t.ID, &t.Owner, &kind, &t.Category, &t.Amount.Cents, &t.Description, &dateStr, &t.CreatedAt); err != nil {
		return core.Transaction{}, err
	}
	t.Kind = core.TransactionKind(kind)

	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored date %q: %w", dateStr, err)
	}
	t.Date = date
	return t, nil
}

func scanTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var txs []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}
