package http

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"

	"expense-tracker-api/internal/expense"
	"expense-tracker-api/internal/models"
)

type createExpenseRequest struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}

type updateExpenseRequest struct {
	Title    *string  `json:"title"`
	Category *string  `json:"category"`
	Amount   *float64 `json:"amount"`
	Status   *string  `json:"status"`
}

// POST /expense
func (s *Server) createExpense(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "failed to read request body"})
		return
	}

	res, err := s.validator.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Validation error"})
		return
	}
	if !res.Valid() {
		details := []string{}
		for _, e := range res.Errors() {
			details = append(details, e.String())
		}
		c.JSON(400, gin.H{"success": false, "message": "Validation error", "errors": details})
		return
	}

	var input createExpenseRequest
	if err := json.Unmarshal(body, &input); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Validation error"})
		return
	}

	status := models.ExpenseStatus(strings.ToUpper(input.Status))
	if input.Status != "" && !status.Valid() {
		c.JSON(400, gin.H{"success": false, "message": "status must be CREDIT or DEBIT"})
		return
	}

	id, err := s.expenseSvc.Add(userID, expense.AddInput{
		Title:    input.Title,
		Category: input.Category,
		Amount:   input.Amount,
		Status:   status,
	})
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Expense added successfully",
		"data":    gin.H{"expenseId": id},
	})
}

// GET /expense
func (s *Server) listExpenses(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	page, ok := positiveQueryInt(c, "page")
	if !ok {
		c.JSON(400, gin.H{"success": false, "message": "page must be a positive number"})
		return
	}
	limit, ok := positiveQueryInt(c, "limit")
	if !ok {
		c.JSON(400, gin.H{"success": false, "message": "limit must be a positive number"})
		return
	}

	status := models.ExpenseStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	if status != "" && !status.Valid() {
		c.JSON(400, gin.H{"success": false, "message": "status must be CREDIT or DEBIT"})
		return
	}

	result, err := s.expenseSvc.List(userID, expense.ListQuery{
		Page:   page,
		Limit:  limit,
		Status: status,
		Search: strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "data": result})
}

// GET /expense/summary
func (s *Server) expenseSummary(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	summary, err := s.expenseSvc.Summary(userID)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "data": summary})
}

// GET /expense/:id
func (s *Server) getExpense(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	exp, err := s.expenseSvc.GetByID(c.Param("id"), userID)
	if errors.Is(err, expense.ErrNotFound) {
		c.JSON(404, gin.H{"success": false, "message": "Expense not found"})
		return
	} else if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "data": exp})
}

// PATCH /expense/:id
func (s *Server) updateExpense(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var input updateExpenseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Validation error"})
		return
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		c.JSON(400, gin.H{"success": false, "message": "title must not be empty"})
		return
	}
	if input.Amount != nil && *input.Amount < 0 {
		c.JSON(400, gin.H{"success": false, "message": "amount must not be negative"})
		return
	}

	var status *models.ExpenseStatus
	if input.Status != nil {
		normalized := models.ExpenseStatus(strings.ToUpper(*input.Status))
		if !normalized.Valid() {
			c.JSON(400, gin.H{"success": false, "message": "status must be CREDIT or DEBIT"})
			return
		}
		status = &normalized
	}

	exp, err := s.expenseSvc.Update(c.Param("id"), userID, expense.UpdateInput{
		Title:    input.Title,
		Category: input.Category,
		Amount:   input.Amount,
		Status:   status,
	})
	if errors.Is(err, expense.ErrNotFound) {
		c.JSON(404, gin.H{"success": false, "message": "Expense not found"})
		return
	} else if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Expense updated successfully",
		"data":    exp,
	})
}

// DELETE /expense/:id
func (s *Server) deleteExpense(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	err := s.expenseSvc.Delete(c.Param("id"), userID)
	if errors.Is(err, expense.ErrNotFound) {
		c.JSON(404, gin.H{"success": false, "message": "Expense not found"})
		return
	} else if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Expense deleted successfully"})
}

// positiveQueryInt parses an optional positive integer query parameter.
// Absent means "use the service default"; present but not a positive number
// is a validation failure.
func positiveQueryInt(c *gin.Context, key string) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
