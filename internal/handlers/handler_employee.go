package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/dto"
	"github.com/fledgehq/fledge-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// employeeHandler handles HTTP requests related to employees.
type employeeHandler struct {
	employeeService  portssvc.EmployeeSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

// newEmployeeHandler creates a new employeeHandler.
func newEmployeeHandler(es portssvc.EmployeeSvcFacade, rs portssvc.ReportingSvcFacade) *employeeHandler {
	return &employeeHandler{
		employeeService:  es,
		reportingService: rs,
	}
}

// registerEmployeeRoutes registers routes related to employees.
func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newEmployeeHandler(employeeService, reportingService)

	employees := rg.Group("/employees")
	{
		employees.GET("", h.listEmployees)
		// Static segments before the :id wildcard.
		employees.GET("/aggregate/usage", h.aggregateUsage)
		employees.GET("/by-number/:employeeNumber", h.getEmployeeByNumber)
		employees.GET("/:id", h.getEmployee)
		employees.GET("/:id/account", h.getEmployeeAccount)
	}
}

// listEmployees godoc
// @Summary List employees
// @Description Retrieves every employee, ordered by last name
// @Tags employees
// @Produce  json
// @Success 200 {array} dto.EmployeeResponse
// @Failure 500 {object} map[string]string "Failed to list employees"
// @Security BearerAuth
// @Router /employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employees, err := h.employeeService.ListEmployees(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list employees", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list employees"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponses(employees))
}

// getEmployee godoc
// @Summary Get an employee by ID
// @Description Retrieves the employee with all their FSA accounts
// @Tags employees
// @Produce  json
// @Param   id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to retrieve employee"
// @Security BearerAuth
// @Router /employees/{id} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("id")

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			logger.Error("Failed to get employee", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve employee"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// getEmployeeAccount godoc
// @Summary Get an employee with their active FSA account
// @Description Retrieves the employee together with their single active account
// @Tags employees
// @Produce  json
// @Param   id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee or account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve employee"
// @Security BearerAuth
// @Router /employees/{id}/account [get]
func (h *employeeHandler) getEmployeeAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("id")

	employee, err := h.employeeService.GetEmployeeWithAccount(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get employee with account", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve employee"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// getEmployeeByNumber godoc
// @Summary Get an employee by employee number
// @Description Retrieves an employee by their external HR identifier
// @Tags employees
// @Produce  json
// @Param   employeeNumber path string true "Employee number"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to retrieve employee"
// @Security BearerAuth
// @Router /employees/by-number/{employeeNumber} [get]
func (h *employeeHandler) getEmployeeByNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeNumber := c.Param("employeeNumber")

	employee, err := h.employeeService.GetEmployeeByNumber(c.Request.Context(), employeeNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			logger.Error("Failed to get employee by number", slog.String("employee_number", employeeNumber), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve employee"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// aggregateUsage godoc
// @Summary Get fleet-wide FSA usage figures
// @Description Computes totals and the average usage percentage across all accounts
// @Tags employees
// @Produce  json
// @Success 200 {object} dto.AggregateUsageResponse
// @Failure 500 {object} map[string]string "Failed to compute usage"
// @Security BearerAuth
// @Router /employees/aggregate/usage [get]
func (h *employeeHandler) aggregateUsage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	usage, err := h.reportingService.ComputeAggregateUsage(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute aggregate usage", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute usage"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAggregateUsageResponse(usage))
}
