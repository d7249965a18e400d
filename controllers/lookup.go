package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"employee-records-api/services"
	"employee-records-api/utils"
)

type createUserRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	Role       string `json:"role" binding:"required,oneof=admin employee normalemployee"`
	EmployeeID string `json:"employee_id"`
}

type createWorkRequest struct {
	Designation string `json:"designation" binding:"required"`
	Department  string `json:"department"`
}

type createBankRequest struct {
	BankName string `json:"bank_name" binding:"required"`
}

// LookupController serves users and the work and bank master lists.
type LookupController struct {
	users   *services.UserService
	lookups *services.LookupService
	audit   *services.AuditService
}

func NewLookupController(users *services.UserService, lookups *services.LookupService, audit *services.AuditService) *LookupController {
	return &LookupController{users: users, lookups: lookups, audit: audit}
}

// CreateUser handles POST /createuser (admin only)
func (l *LookupController) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user data", "error": err.Error()})
		return
	}

	user, err := l.users.Create(c.Request.Context(), services.NewUser{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		respondError(c, "Failed to create user", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

// ListUsers handles GET /fetchallusers (admin only)
func (l *LookupController) ListUsers(c *gin.Context) {
	users, err := l.users.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		respondError(c, "Failed to fetch users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Users fetched", "users": users})
}

func (l *LookupController) CreateWork(c *gin.Context) {
	var req createWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid work data", "error": err.Error()})
		return
	}
	work, err := l.lookups.CreateWork(c.Request.Context(), req.Designation, req.Department)
	if err != nil {
		respondError(c, "Failed to create work", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Work created successfully", "work": work})
}

func (l *LookupController) ListWorks(c *gin.Context) {
	works, err := l.lookups.ListWorks(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to fetch works", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Works fetched", "works": works})
}

func (l *LookupController) CreateBank(c *gin.Context) {
	var req createBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bank data", "error": err.Error()})
		return
	}
	bank, err := l.lookups.CreateBank(c.Request.Context(), req.BankName)
	if err != nil {
		respondError(c, "Failed to create bank", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bank created successfully", "bank": bank})
}

func (l *LookupController) ListBanks(c *gin.Context) {
	banks, err := l.lookups.ListBanks(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to fetch banks", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banks fetched", "banks": banks})
}

// History handles GET /audit/:domain/:employee_id (admin only)
func (l *LookupController) History(c *gin.Context) {
	events, err := l.audit.History(c.Request.Context(), c.Param("domain"), utils.NormalizeEmployeeCode(c.Param("employee_id")))
	if err != nil {
		respondError(c, "Failed to fetch history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "History fetched", "events": events})
}
