package category

type Kind string

const (
	KindIncome        Kind = "income"
	KindExpense       Kind = "expense"
	KindPaymentMethod Kind = "payment_method"
)

func (k Kind) IsValid() bool {
	return k == KindIncome || k == KindExpense || k == KindPaymentMethod
}

// Category is one entry in a user's vocabulary for a given kind. Names are
// unique per user and kind.
type Category struct {
	ID        int
	Kind      Kind
	Name      string
	IsDefault bool
}

// Default vocabularies seeded for a user the first time a kind is listed.
var defaults = map[Kind][]string{
	KindIncome:        {"Salary", "Business", "Investment", "Freelance", "Other"},
	KindExpense:       {"Food", "Rent", "Utilities", "Transportation", "Entertainment", "Health", "Groceries", "Other"},
	KindPaymentMethod: {"Cash", "Card", "Bank Transfer", "Mobile Wallet", "Other"},
}

func DefaultNames(kind Kind) []string {
	names := make([]string, len(defaults[kind]))
	copy(names, defaults[kind])
	return names
}
