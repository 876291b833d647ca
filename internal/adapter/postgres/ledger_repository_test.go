package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse-ads/internal/core/domain"
)

type stubRow struct{ err error }

func (r stubRow) Scan(...any) error { return r.err }

// stubTx fakes the transaction surface the ledger touches; everything else
// fails loudly.
type stubTx struct {
	insertErr error
	commitErr error

	commits   int
	rollbacks int
	queryArgs []any
}

func (t *stubTx) Begin(context.Context) (pgx.Tx, error) { return nil, errors.New("not supported") }

func (t *stubTx) Commit(context.Context) error {
	t.commits++
	return t.commitErr
}

func (t *stubTx) Rollback(context.Context) error {
	t.rollbacks++
	return nil
}

func (t *stubTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not supported")
}

func (t *stubTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func (t *stubTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *stubTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not supported")
}

func (t *stubTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *stubTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (t *stubTx) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	t.queryArgs = args
	return stubRow{err: t.insertErr}
}

func (t *stubTx) Conn() *pgx.Conn { return nil }

// stubLedgerDB hands out the planned transactions in order, repeating the
// last one once the plan runs out.
type stubLedgerDB struct {
	plan []*stubTx
	txs  []*stubTx
}

func (d *stubLedgerDB) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	i := len(d.txs)
	if i >= len(d.plan) {
		i = len(d.plan) - 1
	}
	tx := d.plan[i]
	d.txs = append(d.txs, tx)
	return tx, nil
}

func (d *stubLedgerDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func TestRegisterClickRetriesCommitSerializationFailure(t *testing.T) {
	// under serializable isolation a 40001 routinely surfaces at COMMIT,
	// after the insert itself scanned fine
	first := &stubTx{commitErr: &pgconn.PgError{Code: "40001"}}
	second := &stubTx{commitErr: &pgconn.PgError{Code: "40001"}}
	third := &stubTx{}
	db := &stubLedgerDB{plan: []*stubTx{first, second, third}}
	r := &LedgerRepository{db: db}

	err := r.RegisterClick(context.Background(), uuid.New(), uuid.New(), 0)

	require.NoError(t, err)
	assert.Len(t, db.txs, 3)
	assert.Equal(t, 1, first.commits)
	assert.Equal(t, 1, second.commits)
	assert.Equal(t, 1, third.commits)
}

func TestRegisterClickSurfacesCommitError(t *testing.T) {
	tx := &stubTx{commitErr: errors.New("connection reset")}
	db := &stubLedgerDB{plan: []*stubTx{tx}}
	r := &LedgerRepository{db: db}

	err := r.RegisterClick(context.Background(), uuid.New(), uuid.New(), 0)

	require.Error(t, err)
	var repoErr *domain.RepositoryError
	assert.ErrorAs(t, err, &repoErr)
	// permanent errors are not retried
	assert.Len(t, db.txs, 1)
}

func TestRegisterImpressionSurfacesExhaustedCommitRetries(t *testing.T) {
	tx := &stubTx{commitErr: &pgconn.PgError{Code: "40001"}}
	db := &stubLedgerDB{plan: []*stubTx{tx}}
	r := &LedgerRepository{db: db}

	err := r.RegisterImpression(context.Background(), uuid.New(), uuid.New(), 0)

	require.Error(t, err)
	var repoErr *domain.RepositoryError
	assert.ErrorAs(t, err, &repoErr)
	assert.Equal(t, maxAttempts, len(db.txs))
}

func TestRegisterImpressionStampsEventType(t *testing.T) {
	tx := &stubTx{}
	db := &stubLedgerDB{plan: []*stubTx{tx}}
	r := &LedgerRepository{db: db}

	clientID, campaignID := uuid.New(), uuid.New()
	err := r.RegisterImpression(context.Background(), clientID, campaignID, 4)

	require.NoError(t, err)
	require.Len(t, tx.queryArgs, 5)
	assert.Equal(t, clientID, tx.queryArgs[0])
	assert.Equal(t, campaignID, tx.queryArgs[1])
	assert.Equal(t, 4, tx.queryArgs[3])
	assert.Equal(t, domain.EventImpression, tx.queryArgs[4])
}

func TestRegisterClickStampsEventTypes(t *testing.T) {
	tx := &stubTx{}
	db := &stubLedgerDB{plan: []*stubTx{tx}}
	r := &LedgerRepository{db: db}

	err := r.RegisterClick(context.Background(), uuid.New(), uuid.New(), 0)

	require.NoError(t, err)
	require.Len(t, tx.queryArgs, 6)
	assert.Equal(t, domain.EventImpression, tx.queryArgs[4])
	assert.Equal(t, domain.EventClick, tx.queryArgs[5])
}

func TestRegisterClickRollsBackOnInsertError(t *testing.T) {
	tx := &stubTx{insertErr: errors.New("syntax error")}
	db := &stubLedgerDB{plan: []*stubTx{tx}}
	r := &LedgerRepository{db: db}

	err := r.RegisterClick(context.Background(), uuid.New(), uuid.New(), 0)

	require.Error(t, err)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Zero(t, tx.commits)
}
