package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"

	"github.com/gin-gonic/gin"
)

type busRequest struct {
	Code         string `json:"code"`
	OperatorName string `json:"operatorName"`
	SeatCapacity int    `json:"seatCapacity"`
}

// POST /buses
func CreateBus(c *gin.Context) {
	var req busRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "bus code is required")
		return
	}
	if req.SeatCapacity <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "seat capacity must be positive")
		return
	}

	repo := repositories.BusRepository{DB: intconfig.DB}
	exists, err := repo.ExistsByCode(req.Code)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_error", "failed to check bus code")
		return
	}
	if exists {
		respondError(c, http.StatusConflict, "conflict", "bus code already exists")
		return
	}

	b, err := repo.Create(models.Bus{Code: req.Code, OperatorName: req.OperatorName, SeatCapacity: req.SeatCapacity})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_error", "failed to create bus")
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /buses/:id
func GetBusByID(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	repo := repositories.BusRepository{DB: intconfig.DB}
	b, err := repo.GetByID(id)
	if err == sql.ErrNoRows {
		respondError(c, http.StatusNotFound, "not_found", "bus not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_error", "failed to read bus")
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /buses
func GetBuses(c *gin.Context) {
	repo := repositories.BusRepository{DB: intconfig.DB}
	buses, err := repo.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_error", "failed to list buses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"buses": buses})
}
