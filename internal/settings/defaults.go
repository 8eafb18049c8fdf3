package settings

// defaults are served when a kind's table has no rows yet. Saving any row for
// a kind replaces the whole default list for that kind.
var defaults = map[Kind][]*Option{
	KindSaleCategories: {
		{Label: "Bouquet", Value: "bouquet", Color: "#f472b6", SortOrder: 0},
		{Label: "Arrangement", Value: "arrangement", Color: "#a78bfa", SortOrder: 1},
		{Label: "Basket", Value: "basket", Color: "#fbbf24", SortOrder: 2},
		{Label: "Wreath", Value: "wreath", Color: "#34d399", SortOrder: 3},
		{Label: "Potted plant", Value: "potted_plant", Color: "#4ade80", SortOrder: 4},
		{Label: "Other", Value: "other", Color: "#94a3b8", SortOrder: 5},
	},
	KindPaymentMethods: {
		{Label: "Card", Value: "card", Color: "#60a5fa", SortOrder: 0},
		{Label: "Cash", Value: "cash", Color: "#4ade80", SortOrder: 1},
		{Label: "Bank transfer", Value: "transfer", Color: "#fbbf24", SortOrder: 2},
	},
	KindExpenseCategories: {
		{Label: "Flowers", Value: "flowers", Color: "#f472b6", SortOrder: 0},
		{Label: "Supplies", Value: "supplies", Color: "#a78bfa", SortOrder: 1},
		{Label: "Rent", Value: "rent", Color: "#fbbf24", SortOrder: 2},
		{Label: "Utilities", Value: "utilities", Color: "#60a5fa", SortOrder: 3},
		{Label: "Other", Value: "other", Color: "#94a3b8", SortOrder: 4},
	},
	KindExpensePaymentMethods: {
		{Label: "Card", Value: "card", Color: "#60a5fa", SortOrder: 0},
		{Label: "Cash", Value: "cash", Color: "#4ade80", SortOrder: 1},
		{Label: "Bank transfer", Value: "transfer", Color: "#fbbf24", SortOrder: 2},
	},
	KindCardCompanies: {
		{Label: "KB", Value: "kb", Color: "#fbbf24", SortOrder: 0},
		{Label: "Shinhan", Value: "shinhan", Color: "#60a5fa", SortOrder: 1},
		{Label: "Samsung", Value: "samsung", Color: "#818cf8", SortOrder: 2},
		{Label: "Hyundai", Value: "hyundai", Color: "#94a3b8", SortOrder: 3},
		{Label: "BC", Value: "bc", Color: "#f87171", SortOrder: 4},
	},
	KindProductCategories: {
		{Label: "Fresh flowers", Value: "fresh", Color: "#f472b6", SortOrder: 0},
		{Label: "Dried flowers", Value: "dried", Color: "#fbbf24", SortOrder: 1},
		{Label: "Plants", Value: "plants", Color: "#4ade80", SortOrder: 2},
		{Label: "Goods", Value: "goods", Color: "#94a3b8", SortOrder: 3},
	},
}

// Defaults returns the built-in options for a kind. Callers get copies so
// the shared table cannot be mutated.
func Defaults(kind Kind) []*Option {
	src := defaults[kind]

	out := make([]*Option, len(src))
	for i, o := range src {
		clone := *o
		out[i] = &clone
	}

	return out
}
