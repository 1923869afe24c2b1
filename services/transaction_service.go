package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotel-console/cache"
	"hotel-console/models"
	"hotel-console/store"
	"hotel-console/utils"
)

// DefaultLedgerLimit caps the ledger list when the caller sets no limit.
const DefaultLedgerLimit = 500

type TransactionInput struct {
	Type            models.TransactionType     `json:"type"`
	Category        models.TransactionCategory `json:"category"`
	Amount          *decimal.Decimal           `json:"amount"`
	Description     string                     `json:"description"`
	ReferenceID     *uint                      `json:"reference_id"`
	TransactionDate string                     `json:"transaction_date"`
	PaymentMethod   models.PaymentMethod       `json:"payment_method"`
}

type TransactionChanges struct {
	Type            *models.TransactionType     `json:"type"`
	Category        *models.TransactionCategory `json:"category"`
	Amount          *decimal.Decimal            `json:"amount"`
	Description     *string                     `json:"description"`
	TransactionDate *string                     `json:"transaction_date"`
	PaymentMethod   *models.PaymentMethod       `json:"payment_method"`
}

type TransactionFilter struct {
	Type models.TransactionType
	// Search matches the description or the category.
	Search string
	Range  Range
	Limit  int
}

// TransactionService keeps the manual side of the ledger.
type TransactionService struct {
	Store  *store.Store
	Cache  cache.Reader
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewTransactionService(st *store.Store, c cache.Reader, logger *logrus.Logger) *TransactionService {
	return &TransactionService{Store: st, Cache: c, Logger: logger, Now: time.Now}
}

func (s *TransactionService) List(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLedgerLimit
	}
	txs, err := cachedList(ctx, s.Cache, cache.Transactions, s.Store.Transactions,
		store.ListOptions{Order: "-transaction_date", Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	since, bounded := f.Range.Start(s.Now())
	search := strings.TrimSpace(f.Search)
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if bounded && t.TransactionDate.Before(since) {
			continue
		}
		if search != "" && !containsFold(t.Description, search) &&
			!containsFold(string(t.Category), search) && !containsFold(t.Category.Label(), search) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *TransactionService) Get(ctx context.Context, id uint) (models.Transaction, error) {
	return s.Store.Transactions.Get(ctx, id)
}

func validateEntry(typ models.TransactionType, cat models.TransactionCategory, amount decimal.Decimal, method models.PaymentMethod) error {
	if !typ.Valid() {
		return invalid("unknown transaction type %q", typ)
	}
	if !typ.AllowsCategory(cat) {
		return invalid("category %q is not a %s category", cat, typ)
	}
	if !amount.IsPositive() {
		return invalid("amount must be greater than zero")
	}
	if !method.Valid() {
		return invalid("unknown payment_method %q", method)
	}
	return nil
}

func (s *TransactionService) Create(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	if in.Amount == nil {
		return nil, invalid("amount is required")
	}
	tx := models.Transaction{
		Type:          in.Type,
		Category:      in.Category,
		Amount:        *in.Amount,
		Description:   strings.TrimSpace(in.Description),
		ReferenceID:   in.ReferenceID,
		PaymentMethod: in.PaymentMethod,
	}
	if tx.PaymentMethod == "" {
		tx.PaymentMethod = models.PaymentCash
	}
	if err := validateEntry(tx.Type, tx.Category, tx.Amount, tx.PaymentMethod); err != nil {
		return nil, err
	}
	tx.TransactionDate = models.NewDate(s.Now())
	if strings.TrimSpace(in.TransactionDate) != "" {
		d, err := models.ParseDate(in.TransactionDate)
		if err != nil {
			return nil, invalid("transaction_date: %v", err)
		}
		tx.TransactionDate = d
	}

	if err := s.Store.Transactions.Create(ctx, &tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	s.Cache.Invalidate(cache.Transactions)
	s.Logger.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"type":           tx.Type,
		"category":       tx.Category,
		"amount":         tx.Amount.StringFixed(2),
	}).Info("transaction recorded")
	return &tx, nil
}

func (s *TransactionService) Update(ctx context.Context, id uint, ch TransactionChanges) (models.Transaction, error) {
	current, err := s.Store.Transactions.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to load transaction %d: %w", id, err)
	}

	fields := map[string]any{}
	next := current
	if ch.Type != nil {
		next.Type = *ch.Type
		fields["type"] = *ch.Type
	}
	if ch.Category != nil {
		next.Category = *ch.Category
		fields["category"] = *ch.Category
	}
	if ch.Amount != nil {
		next.Amount = *ch.Amount
		fields["amount"] = *ch.Amount
	}
	if ch.PaymentMethod != nil {
		next.PaymentMethod = *ch.PaymentMethod
		fields["payment_method"] = *ch.PaymentMethod
	}
	if err := validateEntry(next.Type, next.Category, next.Amount, next.PaymentMethod); err != nil {
		return models.Transaction{}, err
	}
	if ch.Description != nil {
		fields["description"] = strings.TrimSpace(*ch.Description)
	}
	if ch.TransactionDate != nil {
		d, err := models.ParseDate(*ch.TransactionDate)
		if err != nil {
			return models.Transaction{}, invalid("transaction_date: %v", err)
		}
		fields["transaction_date"] = d
	}

	if err := s.Store.Transactions.Update(ctx, id, fields); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to update transaction %d: %w", id, err)
	}
	s.Cache.Invalidate(cache.Transactions)
	return s.Store.Transactions.Get(ctx, id)
}

func (s *TransactionService) Delete(ctx context.Context, id uint) error {
	if err := s.Store.Transactions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	s.Cache.Invalidate(cache.Transactions)
	return nil
}

// Export writes the filtered ledger as an xlsx workbook.
func (s *TransactionService) Export(ctx context.Context, f TransactionFilter, w io.Writer) (int, error) {
	txs, err := s.List(ctx, f)
	if err != nil {
		return 0, err
	}
	if err := utils.WriteLedgerWorkbook(w, txs); err != nil {
		return 0, fmt.Errorf("failed to export ledger: %w", err)
	}
	return len(txs), nil
}
