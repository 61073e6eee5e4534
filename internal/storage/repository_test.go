package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency/internal/core"
)

// tickingClock advances one second per call so created_at values differ.
func tickingClock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
}

func newTestRepo(t *testing.T, opts ...Option) *SQLiteRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agency.db")
	opts = append([]Option{WithClock(tickingClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)))}, opts...)
	repo, err := NewSQLiteRepository(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustTask(t *testing.T, title, category, due string) core.Task {
	t.Helper()
	task, err := core.NewTask(title, category, due)
	require.NoError(t, err)
	return task
}

func mustSale(t *testing.T, client, amount, date, status string) core.Sale {
	t.Helper()
	s, err := core.NewSale(client, "Retainer", amount, date, status)
	require.NoError(t, err)
	return s
}

func TestTasks_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	a, err := repo.CreateTask(ctx, mustTask(t, "Invoice", "Admin", "2024-03-20"))
	require.NoError(t, err)
	b, err := repo.CreateTask(ctx, mustTask(t, "Kickoff", "Meeting", "2024-03-10"))
	require.NoError(t, err)
	c, err := repo.CreateTask(ctx, mustTask(t, "Pitch", "Outreach", "2024-03-01"))
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	require.NoError(t, repo.CompleteTask(ctx, c.ID))

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []int64{b.ID, a.ID, c.ID}, []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID})
	assert.True(t, tasks[2].Completed)
	assert.Equal(t, "Outreach", tasks[2].Category)

	pending, err := repo.CountPendingTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)

	byCat, err := repo.CountTasksByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Admin": 1, "Meeting": 1, "Outreach": 1}, byCat)

	require.NoError(t, repo.DeleteTask(ctx, a.ID))
	tasks, err = repo.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestTasks_MissingIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	err := repo.DeleteTask(ctx, 4242)
	assert.True(t, errors.Is(err, core.ErrNotFound), "got %v", err)

	err = repo.CompleteTask(ctx, 4242)
	assert.True(t, errors.Is(err, core.ErrNotFound), "got %v", err)
}

func TestClients_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, name := range []string{"First", "Second", "Third"} {
		c, err := core.NewClient(name, "", "", "")
		require.NoError(t, err)
		_, err = repo.CreateClient(ctx, c)
		require.NoError(t, err)
	}
	active, err := core.NewClient("Acme", "Acme Inc", "ops@acme.test", "Active")
	require.NoError(t, err)
	active, err = repo.CreateClient(ctx, active)
	require.NoError(t, err)

	clients, err := repo.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 4)
	assert.Equal(t, "Acme", clients[0].Name)
	assert.Equal(t, "Acme Inc", clients[0].Company)
	assert.Equal(t, "First", clients[3].Name)
	assert.Equal(t, core.ClientLead, clients[3].Status)
	assert.True(t, clients[0].CreatedAt.After(clients[1].CreatedAt))

	n, err := repo.CountClientsByStatus(ctx, core.ClientActive)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.DeleteClient(ctx, active.ID))
	assert.ErrorIs(t, repo.DeleteClient(ctx, active.ID), core.ErrNotFound)
}

func TestSales_ListAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	inputs := []core.Sale{
		mustSale(t, "Acme", "100", "2024-02-14", "Closed Won"),
		mustSale(t, "Acme", "50.25", "2024-02-13", "Closed Won"),
		mustSale(t, "Globex", "700", "2024-03-01", ""),
		mustSale(t, "Initech", "300", "2024-03-02", "Closed Lost"),
	}
	var ids []int64
	for _, s := range inputs {
		saved, err := repo.CreateSale(ctx, s)
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}

	all, err := repo.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, ids[3], all[0].ID, "newest first")
	assert.Equal(t, ids[0], all[3].ID)
	assert.Equal(t, core.SaleInProgress, all[1].Status)

	won, err := repo.ListSalesByStatus(ctx, core.SaleClosedWon, "")
	require.NoError(t, err)
	require.Len(t, won, 2)
	assert.Equal(t, "50.25", won[0].Amount.String())

	won, err = repo.ListSalesByStatus(ctx, core.SaleClosedWon, "2024-02-14")
	require.NoError(t, err)
	require.Len(t, won, 1, "cutoff is inclusive")
	assert.Equal(t, "2024-02-14", won[0].Date)

	require.NoError(t, repo.DeleteSale(ctx, ids[2]))
	assert.ErrorIs(t, repo.DeleteSale(ctx, ids[2]), core.ErrNotFound)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Seed(ctx))

	fin, err := repo.ListFinancials(ctx)
	require.NoError(t, err)
	require.Len(t, fin, 6)
	var revenues []float64
	for i, f := range fin {
		assert.Equal(t, i+1, f.OrderIndex)
		revenues = append(revenues, f.Revenue.Float64())
	}
	assert.Equal(t, []float64{30000, 35000, 40000, 42000, 50000, 55000}, revenues)
	assert.Equal(t, "Mar", fin[5].Month)

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Q3 Strategy Call", tasks[0].Title)
	assert.Equal(t, "Deliver Mockups", tasks[1].Title)

	// second run changes nothing
	require.NoError(t, repo.Seed(ctx))
	tasks, err = repo.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	fin, err = repo.ListFinancials(ctx)
	require.NoError(t, err)
	assert.Len(t, fin, 6)
}

func TestSeed_RepairsFinancialCount(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.db.ExecContext(ctx, `INSERT INTO financial (month, revenue, order_index) VALUES ('Jan', 1, 1)`)
	require.NoError(t, err)

	require.NoError(t, repo.Seed(ctx))
	fin, err := repo.ListFinancials(ctx)
	require.NoError(t, err)
	assert.Len(t, fin, 6)
}

func writeLegacyFile(t *testing.T, path string, stmts ...string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err, s)
	}
}

func TestSchemaMismatch_Rebuilds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agency.db")
	writeLegacyFile(t, path,
		`CREATE TABLE financial (id INTEGER PRIMARY KEY, month VARCHAR(20), revenue FLOAT)`,
		`INSERT INTO financial (month, revenue) VALUES ('Jan', 10)`,
		`CREATE TABLE leftover (x INTEGER)`,
	)

	repo, err := NewSQLiteRepository(path, WithRebuildOnMismatch(true))
	require.NoError(t, err)
	defer repo.Close()

	fin, err := repo.ListFinancials(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fin, "rebuild drops existing rows")

	var n int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='leftover'`).Scan(&n))
	assert.Zero(t, n)
}

func TestSchemaMismatch_RebuildDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agency.db")
	writeLegacyFile(t, path,
		`CREATE TABLE client (id INTEGER PRIMARY KEY, name VARCHAR(100))`,
	)

	_, err := NewSQLiteRepository(path, WithRebuildOnMismatch(false))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrSchemaMismatch)
}

func TestCompatibleLegacyFileKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agency.db")
	writeLegacyFile(t, path,
		`CREATE TABLE task (id INTEGER PRIMARY KEY, title VARCHAR(100) NOT NULL, category VARCHAR(50), due_date VARCHAR(20), is_completed BOOLEAN, created_at DATETIME)`,
		`CREATE TABLE client (id INTEGER PRIMARY KEY, name VARCHAR(100) NOT NULL, company VARCHAR(100), email VARCHAR(100), status VARCHAR(20), created_at DATETIME)`,
		`CREATE TABLE sale (id INTEGER PRIMARY KEY, client_name VARCHAR(100) NOT NULL, service VARCHAR(100), amount FLOAT NOT NULL, status VARCHAR(20), date VARCHAR(20))`,
		`CREATE TABLE financial (id INTEGER PRIMARY KEY, month VARCHAR(20), revenue FLOAT, order_index INTEGER)`,
		`INSERT INTO client (name, status, created_at) VALUES ('Legacy Co', 'Active', '2023-10-01 08:30:00.000000')`,
	)

	repo, err := NewSQLiteRepository(path, WithRebuildOnMismatch(true))
	require.NoError(t, err)
	defer repo.Close()

	clients, err := repo.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Legacy Co", clients[0].Name)
	assert.Equal(t, 2023, clients[0].CreatedAt.Year())
}

func TestSales_OversizedAmounts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	huge := core.Sale{ClientName: "Acme", Amount: core.NewMoney(decimal.RequireFromString("1e400")), Status: core.SaleClosedWon}
	_, err := repo.CreateSale(ctx, huge)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	// rows written by older builds may hold infinities
	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO sale (client_name, service, amount, status, date) VALUES ('Acme', 'Retainer', 9e999, 'Closed Won', '2024-03-01')`)
	require.NoError(t, err)

	sales, err := repo.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.True(t, sales[0].Amount.IsZero())

	won, err := repo.ListSalesByStatus(ctx, core.SaleClosedWon, "")
	require.NoError(t, err)
	require.Len(t, won, 1)
}
