package repository

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"expense-tracker-api/internal/expense"
	"expense-tracker-api/internal/models"
)

// ExpenseRepo is the GORM-backed expense ledger.
type ExpenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) *ExpenseRepo {
	return &ExpenseRepo{db: db}
}

// scoped applies the filter to a query. LOWER(title) LIKE keeps the search
// case-insensitive on both Postgres and SQLite.
func (r *ExpenseRepo) scoped(filter expense.ListFilter) *gorm.DB {
	query := r.db.Model(&models.Expense{}).Where("user_id = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	return query
}

func (r *ExpenseRepo) Create(exp *models.Expense) error {
	return r.db.Create(exp).Error
}

// FindMany returns one page ordered by creation time descending. A negative
// limit disables pagination.
func (r *ExpenseRepo) FindMany(filter expense.ListFilter, offset, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.scoped(filter).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *ExpenseRepo) Count(filter expense.ListFilter) (int64, error) {
	var total int64
	if err := r.scoped(filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ExpenseRepo) FindOne(id, userID string) (*models.Expense, error) {
	var exp models.Expense
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&exp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exp, nil
}

func (r *ExpenseRepo) Save(exp *models.Expense) error {
	return r.db.Save(exp).Error
}

func (r *ExpenseRepo) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Expense{}).Error
}
