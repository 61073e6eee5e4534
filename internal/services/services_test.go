package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency/internal/amqp"
	"agency/internal/core"
	"agency/internal/log"
	"agency/internal/sheets/memory"
)

type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	tasks    map[int64]core.Task
	clients  map[int64]core.Client
	sales    map[int64]core.Sale
	closeErr error
	closed   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tasks:   map[int64]core.Task{},
		clients: map[int64]core.Client{},
		sales:   map[int64]core.Sale{},
	}
}

func (f *fakeStore) id() int64 { f.nextID++; return f.nextID }

func (f *fakeStore) CreateTask(_ context.Context, t core.Task) (core.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.id()
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeStore) ListTasks(context.Context) ([]core.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]core.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) CompleteTask(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return core.ErrNotFound
	}
	t.Completed = true
	f.tasks[id] = t
	return nil
}

func (f *fakeStore) DeleteTask(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeStore) CreateClient(_ context.Context, c core.Client) (core.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.id()
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeStore) ListClients(context.Context) ([]core.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]core.Client, 0, len(f.clients))
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) DeleteClient(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.clients, id)
	return nil
}

func (f *fakeStore) CreateSale(_ context.Context, s core.Sale) (core.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = f.id()
	f.sales[s.ID] = s
	return s, nil
}

func (f *fakeStore) ListSales(context.Context) ([]core.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]core.Sale, 0, len(f.sales))
	for _, s := range f.sales {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) DeleteSale(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sales[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.sales, id)
	return nil
}

func (f *fakeStore) ListFinancials(context.Context) ([]core.Financial, error) {
	return []core.Financial{{ID: 1, Month: "Jan", Revenue: core.MoneyFromInt(1000), OrderIndex: 1}}, nil
}

func (f *fakeStore) Ping(context.Context) error { return nil }

func (f *fakeStore) Close() error {
	f.closed = true
	return f.closeErr
}

type recordingPublisher struct {
	mu       sync.Mutex
	keys     []string
	err      error
	closeErr error
}

func (p *recordingPublisher) PublishActivity(_ context.Context, msg *amqp.ActivityMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, msg.RoutingKey())
	return nil
}

func (p *recordingPublisher) Close() error { return p.closeErr }

func quietLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Writer = io.Discard
	return log.New(cfg)
}

func TestTaskService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	pub := &recordingPublisher{}
	svc := New(store, Options{Publisher: pub, Logger: quietLogger()})

	task, err := svc.Tasks.Create(ctx, "Call Acme", "", "2024-04-01")
	require.NoError(t, err)
	assert.Equal(t, "Meeting", task.Category)

	require.NoError(t, svc.Tasks.Complete(ctx, task.ID))
	require.NoError(t, svc.Tasks.Delete(ctx, task.ID))

	assert.Equal(t, []string{"task.created", "task.completed", "task.deleted"}, pub.keys)
}

func TestTaskService_RejectsBlankTitle(t *testing.T) {
	store := newFakeStore()
	pub := &recordingPublisher{}
	svc := New(store, Options{Publisher: pub, Logger: quietLogger()})

	_, err := svc.Tasks.Create(context.Background(), "   ", "Admin", "2024-04-01")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, store.tasks)
	assert.Empty(t, pub.keys)
}

func TestTaskService_MissingIDIsNotFound(t *testing.T) {
	pub := &recordingPublisher{}
	svc := New(newFakeStore(), Options{Publisher: pub, Logger: quietLogger()})

	assert.ErrorIs(t, svc.Tasks.Complete(context.Background(), 42), core.ErrNotFound)
	assert.ErrorIs(t, svc.Tasks.Delete(context.Background(), 42), core.ErrNotFound)
	assert.Empty(t, pub.keys)
}

func TestClientService_CreateAndDelete(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := New(newFakeStore(), Options{Publisher: pub, Logger: quietLogger()})

	c, err := svc.Clients.Create(ctx, "Jane Doe", "Acme", "jane@acme.test", "")
	require.NoError(t, err)
	assert.Equal(t, core.ClientLead, c.Status)

	_, err = svc.Clients.Create(ctx, "", "Acme", "", "Active")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	require.NoError(t, svc.Clients.Delete(ctx, c.ID))
	assert.Equal(t, []string{"client.created", "client.deleted"}, pub.keys)
}

func TestSaleService_MirrorsToLedger(t *testing.T) {
	ctx := context.Background()
	ledger := memory.New()
	svc := New(newFakeStore(), Options{Ledger: ledger, Logger: quietLogger()})

	s, err := svc.Sales.Create(ctx, "Acme", "Website", "1500.50", "2024-03-01", "Closed Won")
	require.NoError(t, err)
	assert.Equal(t, core.SaleClosedWon, s.Status)

	rows := ledger.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0][2])

	_, err = svc.Sales.Create(ctx, "Acme", "Website", "-3", "2024-03-01", "")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Len(t, ledger.Rows(), 1)
}

func TestSideChannelFailuresDoNotFailWrites(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := New(store, Options{Publisher: pub, Ledger: failingLedger{}, Logger: quietLogger()})

	s, err := svc.Sales.Create(ctx, "Acme", "Audit", "200", "2024-03-02", "In Progress")
	require.NoError(t, err)
	assert.Contains(t, store.sales, s.ID)
}

type failingLedger struct{}

func (failingLedger) AppendSale(context.Context, core.Sale) (string, error) {
	return "", errors.New("quota exceeded")
}

func TestServices_CloseAggregatesErrors(t *testing.T) {
	store := newFakeStore()
	store.closeErr = errors.New("db busy")
	pub := &recordingPublisher{closeErr: errors.New("channel closed")}
	svc := New(store, Options{Publisher: pub, Logger: quietLogger()})

	err := svc.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage: db busy")
	assert.Contains(t, err.Error(), "amqp: channel closed")
	assert.True(t, store.closed)
}

func TestServices_CloseClean(t *testing.T) {
	svc := New(newFakeStore(), Options{Logger: quietLogger()})
	assert.NoError(t, svc.Close())

	fin, err := svc.Financials(context.Background())
	require.NoError(t, err)
	assert.Len(t, fin, 1)
	assert.NoError(t, svc.Ping(context.Background()))
}
