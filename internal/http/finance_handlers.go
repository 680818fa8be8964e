package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DavidRprt/deskflow/internal/domain"
	"github.com/DavidRprt/deskflow/internal/service"
)

type expenseRequest struct {
	Amount      float64   `json:"amount" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description"`
	Deductible  bool      `json:"deductible"`
	ProjectID   *int64    `json:"project_id"`
	CurrencyID  int64     `json:"currency_id" binding:"required"`
}

type incomeRequest struct {
	Amount      float64   `json:"amount" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description"`
	ProjectID   *int64    `json:"project_id"`
	CurrencyID  int64     `json:"currency_id" binding:"required"`
}

type currencyResponse struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type expenseResponse struct {
	ID          int64            `json:"id"`
	Amount      float64          `json:"amount"`
	Date        string           `json:"date"`
	Description string           `json:"description,omitempty"`
	Deductible  bool             `json:"deductible"`
	ProjectID   *int64           `json:"project_id,omitempty"`
	ProjectName string           `json:"project_name,omitempty"`
	Currency    currencyResponse `json:"currency"`
}

type incomeResponse struct {
	ID          int64            `json:"id"`
	Amount      float64          `json:"amount"`
	Date        string           `json:"date"`
	Description string           `json:"description,omitempty"`
	ProjectID   *int64           `json:"project_id,omitempty"`
	ProjectName string           `json:"project_name,omitempty"`
	Currency    currencyResponse `json:"currency"`
}

func currencyToResponse(currency domain.Currency) currencyResponse {
	return currencyResponse{
		ID:     currency.ID,
		Code:   currency.Code,
		Name:   currency.Name,
		Symbol: currency.Symbol,
	}
}

func expenseToResponse(expense domain.Expense) expenseResponse {
	return expenseResponse{
		ID:          expense.ID,
		Amount:      expense.Amount,
		Date:        expense.Date.Format(time.RFC3339),
		Description: expense.Description,
		Deductible:  expense.Deductible,
		ProjectID:   expense.ProjectID,
		ProjectName: expense.ProjectName,
		Currency:    currencyToResponse(expense.Currency),
	}
}

func incomeToResponse(income domain.Income) incomeResponse {
	return incomeResponse{
		ID:          income.ID,
		Amount:      income.Amount,
		Date:        income.Date.Format(time.RFC3339),
		Description: income.Description,
		ProjectID:   income.ProjectID,
		ProjectName: income.ProjectName,
		Currency:    currencyToResponse(income.Currency),
	}
}

func financeFilterFromQuery(c *gin.Context) domain.FinanceFilter {
	var filter domain.FinanceFilter
	if projectID, err := strconv.ParseInt(c.Query("project_id"), 10, 64); err == nil && projectID > 0 {
		filter.ProjectID = projectID
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = &to
	}
	if raw := c.Query("deductible"); raw != "" {
		if deductible, err := strconv.ParseBool(raw); err == nil {
			filter.Deductible = &deductible
		}
	}
	return filter
}

func (h *Handler) listExpenses(c *gin.Context) {
	session := currentSession(c)

	expenses, err := h.finance.ListExpenses(c.Request.Context(), session.Account.ID, financeFilterFromQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i := range expenses {
		resp[i] = expenseToResponse(expenses[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listIncomes(c *gin.Context) {
	session := currentSession(c)

	incomes, err := h.finance.ListIncomes(c.Request.Context(), session.Account.ID, financeFilterFromQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]incomeResponse, len(incomes))
	for i := range incomes {
		resp[i] = incomeToResponse(incomes[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := currentSession(c)

	expense, err := h.finance.AddExpense(c.Request.Context(), session.Account.ID, service.ExpenseInput{
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
		Deductible:  req.Deductible,
		ProjectID:   req.ProjectID,
		CurrencyID:  req.CurrencyID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expenseToResponse(*expense))
}

func (h *Handler) createIncome(c *gin.Context) {
	var req incomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := currentSession(c)

	income, err := h.finance.AddIncome(c.Request.Context(), session.Account.ID, service.IncomeInput{
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		CurrencyID:  req.CurrencyID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, incomeToResponse(*income))
}

func (h *Handler) deleteExpense(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	if err := h.finance.DeleteExpense(c.Request.Context(), id, session.Account.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) deleteIncome(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session := currentSession(c)

	if err := h.finance.DeleteIncome(c.Request.Context(), id, session.Account.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) financeSummary(c *gin.Context) {
	session := currentSession(c)

	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	summary, err := h.finance.Summary(c.Request.Context(), session.Account.ID, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_income":        summary.TotalIncome,
		"total_expense":       summary.TotalExpense,
		"balance":             summary.Balance,
		"deductible_expenses": summary.DeductibleExpenses,
	})
}

func (h *Handler) listCurrencies(c *gin.Context) {
	currencies, err := h.catalogs.Currencies(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]currencyResponse, len(currencies))
	for i := range currencies {
		resp[i] = currencyToResponse(currencies[i])
	}
	c.JSON(http.StatusOK, resp)
}
