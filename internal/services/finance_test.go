package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/lifetracker/internal/models"
	"github.com/localnerve/lifetracker/internal/testhelpers"
	"github.com/localnerve/lifetracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransactionDecrementsBalance(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	account := testhelpers.MustAccount(t, store, "Checking", 1000)

	txn, err := store.CreateTransaction(ctx, account.ID, 50, models.Day(2025, time.June, 3), "groceries", nil)
	require.NoError(t, err)
	assert.Equal(t, account.ID, txn.AccountID)
	assert.Equal(t, 50.0, txn.Amount)
	assert.Equal(t, "2025-06-03", models.FormatDate(txn.Date))
	assert.Empty(t, txn.TagNames)

	got, err := store.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.InDelta(t, 950.0, got.Balance, 1e-9)

	// negative amounts are refunds and raise the balance
	_, err = store.CreateTransaction(ctx, account.ID, -20, models.Day(2025, time.June, 4), "refund", nil)
	require.NoError(t, err)
	got, err = store.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.InDelta(t, 970.0, got.Balance, 1e-9)
}

func TestCreateTransactionUnknownAccountWritesNothing(t *testing.T) {
	store, db := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	_, err := store.CreateTransaction(ctx, "missing", 50, models.Day(2025, time.June, 3), "", []string{"food"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)

	var txns, tags int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&txns).Error)
	require.NoError(t, db.Model(&models.Tag{}).Count(&tags).Error)
	assert.Zero(t, txns)
	assert.Zero(t, tags)
}

func TestCreateTransactionIsAtomic(t *testing.T) {
	store, db := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	account := testhelpers.MustAccount(t, store, "Savings", 500)

	// Break the link table so the last step of the unit of work fails.
	require.NoError(t, db.Migrator().DropTable(&models.TransactionTag{}))

	_, err := store.CreateTransaction(ctx, account.ID, 50, models.Day(2025, time.June, 3), "", []string{"food"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrStorage)

	got, err := store.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, got.Balance, 1e-9, "balance must roll back with the failed insert")

	var txns int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&txns).Error)
	assert.Zero(t, txns)
}

func TestCreateTransactionDeduplicatesTags(t *testing.T) {
	store, db := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	account := testhelpers.MustAccount(t, store, "Card", 0)

	txn, err := store.CreateTransaction(ctx, account.ID, 12.5, models.Day(2025, time.June, 3), "lunch", []string{"food", "food", " ", " food "})
	require.NoError(t, err)
	assert.Equal(t, []string{"food"}, txn.TagNames)

	var links int64
	require.NoError(t, db.Model(&models.TransactionTag{}).Where("transaction_id = ?", txn.ID).Count(&links).Error)
	assert.Equal(t, int64(1), links)

	// an existing tag is reused
	second, err := store.CreateTransaction(ctx, account.ID, 30, models.Day(2025, time.June, 4), "dinner", []string{"food", "eating out"})
	require.NoError(t, err)
	assert.Equal(t, []string{"eating out", "food"}, second.TagNames)

	tags, err := store.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "eating out", tags[0].Name)
	assert.Equal(t, "food", tags[1].Name)
}

func TestListTransactionsWithTags(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	checking := testhelpers.MustAccount(t, store, "Checking", 100)
	card := testhelpers.MustAccount(t, store, "Card", 100)

	first, err := store.CreateTransaction(ctx, checking.ID, 10, models.Day(2025, time.May, 1), "bus", []string{"travel"})
	require.NoError(t, err)
	second, err := store.CreateTransaction(ctx, card.ID, 20, models.Day(2025, time.May, 2), "books", nil)
	require.NoError(t, err)
	third, err := store.CreateTransaction(ctx, checking.ID, 30, models.Day(2025, time.May, 3), "train", []string{"travel", "work"})
	require.NoError(t, err)

	txns, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, first.ID, txns[0].ID)
	assert.Equal(t, second.ID, txns[1].ID)
	assert.Equal(t, third.ID, txns[2].ID)
	assert.Equal(t, []string{"travel"}, txns[0].TagNames)
	assert.Equal(t, []string{}, txns[1].TagNames)
	assert.Equal(t, []string{"travel", "work"}, txns[2].TagNames)

	byAccount, err := store.ListTransactionsByAccount(ctx, checking.ID)
	require.NoError(t, err)
	require.Len(t, byAccount, 2)
	assert.Equal(t, first.ID, byAccount[0].ID)
	assert.Equal(t, third.ID, byAccount[1].ID)

	_, err = store.ListTransactionsByAccount(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)

	got, err := store.GetTransaction(ctx, third.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"travel", "work"}, got.TagNames)

	_, err = store.GetTransaction(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAddAccount(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	account, err := store.AddAccount(ctx, " Brokerage ", 2500.75, "investment")
	require.NoError(t, err)
	assert.Equal(t, "Brokerage", account.Name)
	assert.Equal(t, 2500.75, account.Balance)
	assert.Equal(t, "investment", account.Type)

	_, err = store.AddAccount(ctx, "", 0, "cash")
	assert.ErrorIs(t, err, types.ErrValidation)

	accounts, err := store.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	_, err = store.GetAccount(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteAccount(t *testing.T) {
	store, db := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	doomed := testhelpers.MustAccount(t, store, "Old card", 100)
	kept := testhelpers.MustAccount(t, store, "Checking", 100)

	_, err := store.CreateTransaction(ctx, doomed.ID, 10, models.Day(2025, time.April, 1), "", []string{"food"})
	require.NoError(t, err)
	keptTxn, err := store.CreateTransaction(ctx, kept.ID, 10, models.Day(2025, time.April, 1), "", []string{"food"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteAccount(ctx, doomed.ID))

	_, err = store.GetAccount(ctx, doomed.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	txns, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, keptTxn.ID, txns[0].ID)
	assert.Equal(t, []string{"food"}, txns[0].TagNames)

	var links int64
	require.NoError(t, db.Model(&models.TransactionTag{}).Count(&links).Error)
	assert.Equal(t, int64(1), links)

	tags, err := store.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1, "tags outlive the account")

	err = store.DeleteAccount(ctx, doomed.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
