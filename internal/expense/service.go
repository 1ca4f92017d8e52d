package expense

import (
	"math"

	"github.com/pkg/errors"

	"expense-tracker-api/internal/models"
)

// ErrNotFound is returned when an expense id does not exist or is owned by
// another user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("expense not found")

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListFilter narrows a user's expense listing. UserID is always set by the
// service; Status and Search are optional.
type ListFilter struct {
	UserID string
	Status models.ExpenseStatus
	Search string
}

// ExpenseStore is the persistence collaborator for the expense ledger.
// FindOne returns (nil, nil) when no row matches both id and userID.
type ExpenseStore interface {
	Create(expense *models.Expense) error
	FindMany(filter ListFilter, offset, limit int) ([]models.Expense, error)
	Count(filter ListFilter) (int64, error)
	FindOne(id, userID string) (*models.Expense, error)
	Save(expense *models.Expense) error
	Delete(id string) error
}

// AddInput holds the fields for a new expense. Category and Status fall back
// to "other" and DEBIT when left empty.
type AddInput struct {
	Title    string
	Category string
	Amount   float64
	Status   models.ExpenseStatus
}

// UpdateInput models a partial update: only non-nil fields are applied.
type UpdateInput struct {
	Title    *string
	Category *string
	Amount   *float64
	Status   *models.ExpenseStatus
}

// ListQuery is the pagination and filter request for List. Page and Limit
// below 1 fall back to defaults.
type ListQuery struct {
	Page   int
	Limit  int
	Status models.ExpenseStatus
	Search string
}

// ListResult is one page of expenses plus the pre-pagination total.
type ListResult struct {
	Expenses   []models.Expense `json:"expense"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

// Service builds per-user views over the expense ledger and enforces
// ownership on every id-addressed operation.
type Service struct {
	store ExpenseStore
}

func NewService(store ExpenseStore) *Service {
	return &Service{store: store}
}

// Add persists a new expense owned by userID and returns its id.
func (s *Service) Add(userID string, input AddInput) (string, error) {
	category := input.Category
	if category == "" {
		category = "other"
	}
	status := input.Status
	if status == "" {
		status = models.StatusDebit
	}

	exp := &models.Expense{
		Title:    input.Title,
		Category: category,
		Amount:   input.Amount,
		Status:   status,
		UserID:   userID,
	}
	if err := s.store.Create(exp); err != nil {
		return "", errors.Wrap(err, "create expense failed")
	}
	return exp.ID, nil
}

// List returns one page of the user's expenses, most recent first, plus the
// total count of rows matching the filter before pagination.
func (s *Service) List(userID string, query ListQuery) (*ListResult, error) {
	page := query.Page
	if page < 1 {
		page = defaultPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit

	filter := ListFilter{
		UserID: userID,
		Status: query.Status,
		Search: query.Search,
	}

	expenses, err := s.store.FindMany(filter, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list expenses failed")
	}
	total, err := s.store.Count(filter)
	if err != nil {
		return nil, errors.Wrap(err, "count expenses failed")
	}

	return &ListResult{
		Expenses:   expenses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// GetByID returns the expense only when it is owned by userID.
func (s *Service) GetByID(id, userID string) (*models.Expense, error) {
	exp, err := s.store.FindOne(id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find expense failed")
	}
	if exp == nil {
		return nil, ErrNotFound
	}
	return exp, nil
}

// Update applies only the fields present in input and returns the updated
// record. The ownership check runs before any mutation.
func (s *Service) Update(id, userID string, input UpdateInput) (*models.Expense, error) {
	exp, err := s.store.FindOne(id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find expense failed")
	}
	if exp == nil {
		return nil, ErrNotFound
	}

	if input.Title != nil {
		exp.Title = *input.Title
	}
	if input.Category != nil {
		exp.Category = *input.Category
	}
	if input.Amount != nil {
		exp.Amount = *input.Amount
	}
	if input.Status != nil {
		exp.Status = *input.Status
	}

	if err := s.store.Save(exp); err != nil {
		return nil, errors.Wrap(err, "update expense failed")
	}
	return exp, nil
}

// Delete permanently removes the expense after the ownership check.
func (s *Service) Delete(id, userID string) error {
	exp, err := s.store.FindOne(id, userID)
	if err != nil {
		return errors.Wrap(err, "find expense failed")
	}
	if exp == nil {
		return ErrNotFound
	}
	if err := s.store.Delete(exp.ID); err != nil {
		return errors.Wrap(err, "delete expense failed")
	}
	return nil
}
