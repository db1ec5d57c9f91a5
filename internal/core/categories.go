package core

const (
	Housing        Category = "Housing"
	Transportation Category = "Transportation"
	Food           Category = "Food"
	Utilities      Category = "Utilities"
	Clothing       Category = "Clothing"
	Healthcare     Category = "Healthcare"
	Insurance      Category = "Insurance"
	Supplies       Category = "Supplies"
	Personal       Category = "Personal"
	Debt           Category = "Debt"
	Retirement     Category = "Retirement"
	Education      Category = "Education"
	Savings        Category = "Savings"
	Gifts          Category = "Gifts"
	Entertainment  Category = "Entertainment"
)

var categorySet = [...]Category{
	Housing, Transportation, Food, Utilities, Clothing,
	Healthcare, Insurance, Supplies, Personal, Debt,
	Retirement, Education, Savings, Gifts, Entertainment,
}

// Categories returns a fresh copy of the fixed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categorySet))
	copy(out, categorySet[:])
	return out
}

func IsKnownCategory(c Category) bool {
	for _, known := range categorySet {
		if known == c {
			return true
		}
	}
	return false
}
