package expense

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"expense-tracker-api/internal/models"
)

// CategoryBreakdown is one slice of the spending chart: total debit amount
// for a category and its share of all debits.
type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SummaryResult feeds the front end's charts: overall credit/debit totals
// and a per-category breakdown of debits, largest first.
type SummaryResult struct {
	TotalCredit float64             `json:"total_credit"`
	TotalDebit  float64             `json:"total_debit"`
	Balance     float64             `json:"balance"`
	Categories  []CategoryBreakdown `json:"categories"`
}

// Summary aggregates all of the user's expenses into chart-ready totals.
func (s *Service) Summary(userID string) (*SummaryResult, error) {
	expenses, err := s.store.FindMany(ListFilter{UserID: userID}, 0, -1)
	if err != nil {
		return nil, errors.Wrap(err, "load expenses failed")
	}

	res := &SummaryResult{Categories: []CategoryBreakdown{}}
	byCategory := make(map[string]*CategoryBreakdown)

	for i := range expenses {
		exp := &expenses[i]
		if exp.Status == models.StatusCredit {
			res.TotalCredit += exp.Amount
			continue
		}
		res.TotalDebit += exp.Amount

		cb, ok := byCategory[exp.Category]
		if !ok {
			cb = &CategoryBreakdown{Category: exp.Category}
			byCategory[exp.Category] = cb
		}
		cb.Amount += exp.Amount
		cb.Count++
	}

	res.Balance = res.TotalCredit - res.TotalDebit

	for _, cb := range byCategory {
		if res.TotalDebit > 0 {
			cb.Percentage = math.Round(cb.Amount/res.TotalDebit*1000) / 10
		}
		res.Categories = append(res.Categories, *cb)
	}
	sort.Slice(res.Categories, func(i, j int) bool {
		return res.Categories[i].Amount > res.Categories[j].Amount
	})

	return res, nil
}
