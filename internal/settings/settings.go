package settings

import (
	"errors"

	"github.com/google/uuid"
)

// Kind names one configurable option list. Each kind is backed by its own
// table and has built-in defaults used until the shop saves its own rows.
type Kind string

const (
	KindSaleCategories        Kind = "sale_categories"
	KindPaymentMethods        Kind = "payment_methods"
	KindExpenseCategories     Kind = "expense_categories"
	KindExpensePaymentMethods Kind = "expense_payment_methods"
	KindCardCompanies         Kind = "card_companies"
	KindProductCategories     Kind = "product_categories"
)

// Kinds lists every configurable option list, in display order.
var Kinds = []Kind{
	KindSaleCategories,
	KindPaymentMethods,
	KindExpenseCategories,
	KindExpensePaymentMethods,
	KindCardCompanies,
	KindProductCategories,
}

func (k Kind) Valid() bool {
	switch k {
	case KindSaleCategories, KindPaymentMethods, KindExpenseCategories,
		KindExpensePaymentMethods, KindCardCompanies, KindProductCategories:
		return true
	}

	return false
}

var (
	ErrUnknownKind = errors.New("unknown settings kind")
	ErrNotFound    = errors.New("settings option not found")
	ErrValueTaken  = errors.New("option value already exists")
)

// Option is one selectable entry of a kind, e.g. a sale category or a card
// company. Value is the stable identifier referenced from other records;
// Label and Color are presentation.
type Option struct {
	ID        uuid.UUID
	Label     string
	Value     string
	Color     string
	SortOrder int
}
