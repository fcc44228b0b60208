package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /users
func CreateUser(c *gin.Context) {
	var req userRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "name and email are required")
		return
	}

	repo := repositories.UserRepository{DB: intconfig.DB}
	exists, err := repo.ExistsByEmail(req.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_error", "failed to check email")
		return
	}
	if exists {
		respondError(c, http.StatusConflict, "conflict", "email already registered")
		return
	}

	hash := ""
	if req.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "internal_error", "failed to hash password")
			return
		}
		hash = string(h)
	}

	u, err := repo.Create(models.User{Name: req.Name, Email: req.Email, PasswordHash: hash})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_error", "failed to create user")
		return
	}
	c.JSON(http.StatusCreated, u)
}

// GET /users/:id
func GetUserByID(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	repo := repositories.UserRepository{DB: intconfig.DB}
	u, err := repo.GetByID(id)
	if err == sql.ErrNoRows {
		respondError(c, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_error", "failed to read user")
		return
	}
	c.JSON(http.StatusOK, u)
}

// GET /users
func GetUsers(c *gin.Context) {
	repo := repositories.UserRepository{DB: intconfig.DB}
	users, err := repo.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_error", "failed to list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
