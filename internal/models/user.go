package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User represents a person tracking their finances.
//
// MonthlyIncome is a cached snapshot of the most recently set income and is
// refreshed whenever an income row is written. The authoritative per-month
// values live in MonthlyIncome rows.
type User struct {
	DefaultModel
	Email         string `gorm:"uniqueIndex"`
	Name          string
	MonthlyIncome decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave trims whitespace from all strings
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.TrimSpace(u.Email)
	u.Name = strings.TrimSpace(u.Name)

	return nil
}
