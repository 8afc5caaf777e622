package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType tells expenses from income. Values are not validated on write.
type TransactionType string

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

// TagSeparator joins a transaction's tags into its single text column.
const TagSeparator = ","

// Budget is a named spending limit. Money columns are text so decimals round-trip exactly.
type Budget struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Category     string
	BudgetLimit  decimal.Decimal `gorm:"type:text"`
	Transactions []Transaction   `gorm:"constraint:OnDelete:CASCADE"`
}

// Transaction is a single expense or income entry booked against a budget.
type Transaction struct {
	ID       uint `gorm:"primaryKey"`
	BudgetID uint `gorm:"index"`
	Type     TransactionType
	Amount   decimal.Decimal `gorm:"type:text"`
	Category string
	Tags     string
	Date     Date `gorm:"type:date;index"`
}

// TagList splits the stored tag column back into trimmed, non-empty tags.
func (t Transaction) TagList() []string {
	if strings.TrimSpace(t.Tags) == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(t.Tags, TagSeparator) {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags is the inverse of TagList.
func JoinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return strings.Join(cleaned, TagSeparator)
}

// CategoryTotal is the summed expense amount of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}
