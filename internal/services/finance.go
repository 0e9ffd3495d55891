package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/localnerve/lifetracker/internal/models"
	"github.com/localnerve/lifetracker/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddAccount stores a new account with an opening balance.
func (s *Store) AddAccount(ctx context.Context, name string, balance float64, accountType string) (*models.Account, error) {
	const op = "AddAccount"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, s.fail(op, types.NewValidationError(op, "name is required"))
	}

	account := &models.Account{
		ID:      uuid.NewString(),
		Name:    name,
		Balance: balance,
		Type:    strings.TrimSpace(accountType),
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", account.ID).Take(account).Error
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("added account", "id", account.ID, "name", account.Name, "balance", account.Balance)
	return account, nil
}

// ListAccounts returns every account in creation order.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	accounts, err := listAll[models.Account](s.read(ctx, "listAccounts"))
	if err != nil {
		return nil, s.fail("ListAccounts", err)
	}
	return accounts, nil
}

// GetAccount loads one account.
func (s *Store) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := findByID[models.Account](s.read(ctx, "getAccount"), "GetAccount", "account", id)
	if err != nil {
		return nil, s.fail("GetAccount", err)
	}
	return account, nil
}

// DeleteAccount removes an account along with its transactions and their
// tag links. Tags themselves are kept.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	const op = "DeleteAccount"

	var removed int64
	err := s.write(ctx, func(tx *gorm.DB) error {
		if err := mustExist[models.Account](tx, op, "account", id); err != nil {
			return err
		}

		txIDs := tx.Model(&models.Transaction{}).Select("id").Where("account_id = ?", id)
		if err := tx.Where("transaction_id IN (?)", txIDs).Delete(&models.TransactionTag{}).Error; err != nil {
			return err
		}

		result := tx.Where("account_id = ?", id).Delete(&models.Transaction{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected

		return tx.Where("id = ?", id).Delete(&models.Account{}).Error
	})
	if err != nil {
		return s.fail(op, err)
	}

	s.log.Info("deleted account", "id", id, "transactions", removed)
	return nil
}

// CreateTransaction records money leaving an account. The transaction row,
// the balance decrement and the tag links are one unit of work: either all of
// them persist or none do. Tag names are trimmed, blanks are skipped and
// duplicates collapse to a single link. Unknown tags are created.
func (s *Store) CreateTransaction(ctx context.Context, accountID string, amount float64, date datatypes.Date, description string, tagNames []string) (*models.Transaction, error) {
	const op = "CreateTransaction"

	names := uniqueTagNames(tagNames)
	txn := &models.Transaction{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Amount:      amount,
		Date:        models.NormalizeDate(date),
		Description: description,
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		var account models.Account
		if err := lockAccount(tx, accountID, &account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError(op, "account", accountID)
			}
			return err
		}

		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		if err := tx.Model(&account).
			Update("balance", gorm.Expr("balance - ?", amount)).Error; err != nil {
			return err
		}

		if len(names) > 0 {
			tags := make([]models.Tag, len(names))
			links := make([]models.TransactionTag, len(names))
			for i, name := range names {
				tags[i] = models.Tag{Name: name}
				links[i] = models.TransactionTag{TransactionID: txn.ID, TagName: name}
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error; err != nil {
				return err
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("id = ?", txn.ID).Take(txn).Error; err != nil {
			return err
		}
		return attachTags(tx, []*models.Transaction{txn})
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("added transaction",
		"id", txn.ID, "account_id", accountID, "amount", amount, "tags", len(txn.TagNames))
	return txn, nil
}

// lockAccount loads an account row and holds it for update until the
// transaction ends. sqlite takes no row lock; SQL Server gets a table hint
// in place of FOR UPDATE.
func lockAccount(tx *gorm.DB, id string, account *models.Account) *gorm.DB {
	q := tx
	switch tx.Dialector.Name() {
	case "sqlite":
	case "sqlserver":
		q = tx.Table("accounts WITH (UPDLOCK, ROWLOCK)")
	default:
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q.Where("id = ?", id).Take(account)
}

// ListTransactions returns every transaction in creation order with its tag names.
func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.listTransactions(ctx, "ListTransactions", s.read(ctx, "listTransactions"))
}

// ListTransactionsByAccount returns the transactions of one account, oldest first.
func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID string) ([]models.Transaction, error) {
	const op = "ListTransactionsByAccount"

	if err := mustExist[models.Account](s.read(ctx, "accountExists"), op, "account", accountID); err != nil {
		return nil, s.fail(op, err)
	}
	return s.listTransactions(ctx, op, s.read(ctx, "listTransactionsByAccount").Where("account_id = ?", accountID))
}

func (s *Store) listTransactions(ctx context.Context, op string, q *gorm.DB) ([]models.Transaction, error) {
	txns, err := listAll[models.Transaction](q)
	if err != nil {
		return nil, s.fail(op, err)
	}

	ptrs := make([]*models.Transaction, len(txns))
	for i := range txns {
		ptrs[i] = &txns[i]
	}
	if err := attachTags(s.read(ctx, "transactionTags"), ptrs); err != nil {
		return nil, s.fail(op, err)
	}
	return txns, nil
}

// GetTransaction loads one transaction with its tag names.
func (s *Store) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	const op = "GetTransaction"

	txn, err := findByID[models.Transaction](s.read(ctx, "getTransaction"), op, "transaction", id)
	if err != nil {
		return nil, s.fail(op, err)
	}
	if err := attachTags(s.read(ctx, "transactionTags"), []*models.Transaction{txn}); err != nil {
		return nil, s.fail(op, err)
	}
	return txn, nil
}

// ListTags returns every tag ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := s.read(ctx, "listTags").Order("name ASC").Find(&tags).Error; err != nil {
		return nil, s.fail("ListTags", err)
	}
	return tags, nil
}

// attachTags fills TagNames on each transaction from one join over
// transaction_tags and tags.
func attachTags(q *gorm.DB, txns []*models.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	ids := make([]string, len(txns))
	byID := make(map[string]*models.Transaction, len(txns))
	for i, t := range txns {
		ids[i] = t.ID
		t.TagNames = []string{}
		byID[t.ID] = t
	}

	type row struct {
		TransactionID string
		TagName       string
	}
	var rows []row
	err := q.Table("transaction_tags").
		Select("transaction_tags.transaction_id, tags.name AS tag_name").
		Joins("JOIN tags ON tags.name = transaction_tags.tag_name").
		Where("transaction_tags.transaction_id IN ?", ids).
		Order("transaction_tags.transaction_id ASC").
		Order("tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	for _, r := range rows {
		if t, ok := byID[r.TransactionID]; ok {
			t.TagNames = append(t.TagNames, r.TagName)
		}
	}
	return nil
}

// uniqueTagNames trims names, drops blanks and duplicates, and sorts the rest.
func uniqueTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
