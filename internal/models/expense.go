package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseStatus marks an expense as money in or money out.
type ExpenseStatus string

const (
	StatusCredit ExpenseStatus = "CREDIT"
	StatusDebit  ExpenseStatus = "DEBIT"
)

func (s ExpenseStatus) Valid() bool {
	return s == StatusCredit || s == StatusDebit
}

type Expense struct {
	ID       string        `gorm:"primaryKey" json:"id"`
	Title    string        `json:"title"`
	Category string        `gorm:"default:other" json:"category"`
	Amount   float64       `json:"amount"`
	Status   ExpenseStatus `json:"status"`

	UserID string `gorm:"index" json:"user_id"`
	User   User   `json:"-" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
