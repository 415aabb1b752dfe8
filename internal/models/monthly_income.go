package models

import (
	"errors"

	"github.com/finsync/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyIncome is the income of a user for one specific month.
//
// There is at most one row per (user, month); SetMonthlyIncome upserts.
type MonthlyIncome struct {
	DefaultModel
	User   User            `json:"-"`
	UserID uuid.UUID       `gorm:"uniqueIndex:income_user_month"`
	Month  types.Month     `gorm:"uniqueIndex:income_user_month"`
	Amount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (m *MonthlyIncome) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*MonthlyIncome)
	return m.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (m *MonthlyIncome) checkIntegrity(tx *gorm.DB, toSave MonthlyIncome) error {
	return tx.First(&User{}, toSave.UserID).Error
}

// BeforeSave validates the amount.
func (m *MonthlyIncome) BeforeSave(_ *gorm.DB) error {
	if m.Amount.IsNegative() {
		return ErrIncomeAmountNegative
	}

	return nil
}

// SetMonthlyIncome sets the income for a user and month, creating the row if
// none exists yet and updating it otherwise. The cached income snapshot on
// the user is refreshed in the same transaction.
func SetMonthlyIncome(db *gorm.DB, userID uuid.UUID, month types.Month, amount decimal.Decimal) (MonthlyIncome, error) {
	var income MonthlyIncome

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&MonthlyIncome{UserID: userID, Month: month}).First(&income).Error
		if err != nil && !errors.Is(err, ErrResourceNotFound) {
			return err
		}

		if errors.Is(err, ErrResourceNotFound) {
			income = MonthlyIncome{UserID: userID, Month: month, Amount: amount}
			err = tx.Create(&income).Error
		} else {
			err = tx.Model(&income).Select("Amount").Updates(MonthlyIncome{Amount: amount}).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&User{}).Where("id = ?", userID).Update("monthly_income", amount).Error
	})
	if err != nil {
		return MonthlyIncome{}, err
	}

	return income, nil
}

// GetMonthlyIncome returns the income row for a user and month.
// When no income is set for the month, ErrResourceNotFound is returned.
func GetMonthlyIncome(db *gorm.DB, userID uuid.UUID, month types.Month) (MonthlyIncome, error) {
	var income MonthlyIncome
	err := db.Where(&MonthlyIncome{UserID: userID, Month: month}).First(&income).Error
	if err != nil {
		return MonthlyIncome{}, err
	}

	return income, nil
}

// IncomeAmount returns the income amount for a user and month.
//
// An unset income is a valid state, not an error: it reports zero.
func IncomeAmount(db *gorm.DB, userID uuid.UUID, month types.Month) (decimal.Decimal, error) {
	income, err := GetMonthlyIncome(db, userID, month)
	if errors.Is(err, ErrResourceNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	return income.Amount, nil
}
