package models

// EntryType says whether money flows in or out.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// IsValid reports whether t is a known entry type.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeIncome, EntryTypeExpense:
		return true
	}
	return false
}

// EntryTypeOrIncome unwraps a nullable type column. Rows written before the
// column existed have no type and are treated as income.
func EntryTypeOrIncome(t *EntryType) EntryType {
	if t == nil || *t == "" {
		return EntryTypeIncome
	}
	return *t
}
