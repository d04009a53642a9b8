package entry

// Kind tags a transaction as money going out or coming in.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Category is one selectable entry of a kind's category set.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

// KindConfig parameterizes the entry workflow for one transaction kind.
type KindConfig struct {
	Kind           Kind
	Title          string
	Accent         string
	Categories     []Category
	SuccessMessage string
	FailureMessage string
}

var ExpenseConfig = KindConfig{
	Kind:   KindExpense,
	Title:  "Add expense",
	Accent: "#F44336",
	Categories: []Category{
		{ID: "food", Name: "Food", Icon: "restaurant", Color: "#F44336"},
		{ID: "transport", Name: "Transport", Icon: "car", Color: "#2196F3"},
		{ID: "housing", Name: "Housing", Icon: "home", Color: "#FF9800"},
		{ID: "health", Name: "Health", Icon: "medical", Color: "#4CAF50"},
		{ID: "education", Name: "Education", Icon: "school", Color: "#9C27B0"},
		{ID: "entertainment", Name: "Entertainment", Icon: "game-controller", Color: "#E91E63"},
		{ID: "shopping", Name: "Shopping", Icon: "cart", Color: "#FF5722"},
		{ID: "bills", Name: "Bills", Icon: "receipt", Color: "#795548"},
		{ID: "other", Name: "Other", Icon: "ellipsis-horizontal", Color: "#607D8B"},
	},
	SuccessMessage: "Expense recorded successfully!",
	FailureMessage: "Could not record the expense",
}

var IncomeConfig = KindConfig{
	Kind:   KindIncome,
	Title:  "Add income",
	Accent: "#4CAF50",
	Categories: []Category{
		{ID: "salary", Name: "Salary", Icon: "briefcase", Color: "#4CAF50"},
		{ID: "freelance", Name: "Freelance", Icon: "laptop", Color: "#2196F3"},
		{ID: "investment", Name: "Investment", Icon: "trending-up", Color: "#FF9800"},
		{ID: "bonus", Name: "Bonus", Icon: "gift", Color: "#9C27B0"},
		{ID: "other", Name: "Other", Icon: "ellipsis-horizontal", Color: "#607D8B"},
	},
	SuccessMessage: "Income recorded successfully!",
	FailureMessage: "Could not record the income",
}

// ConfigFor returns the workflow configuration registered for kind.
func ConfigFor(kind Kind) (KindConfig, bool) {
	switch kind {
	case KindExpense:
		return ExpenseConfig, true
	case KindIncome:
		return IncomeConfig, true
	default:
		return KindConfig{}, false
	}
}

// HasCategory reports whether id belongs to the kind's category set.
func (c KindConfig) HasCategory(id string) bool {
	for _, category := range c.Categories {
		if category.ID == id {
			return true
		}
	}
	return false
}
