package handlers

import (
	"net/http"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"

	"github.com/gin-gonic/gin"
)

type stationRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// POST /stations
func CreateStation(c *gin.Context) {
	var req stationRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Name) == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "station code and name are required")
		return
	}

	repo := repositories.StationRepository{DB: intconfig.DB}
	exists, err := repo.ExistsByCode(req.Code)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_error", "failed to check station code")
		return
	}
	if exists {
		respondError(c, http.StatusConflict, "conflict", "station code already exists")
		return
	}

	st, err := repo.Create(models.Station{Code: req.Code, Name: req.Name})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_error", "failed to create station")
		return
	}
	c.JSON(http.StatusCreated, st)
}

// GET /stations
func GetStations(c *gin.Context) {
	repo := repositories.StationRepository{DB: intconfig.DB}
	stations, err := repo.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_error", "failed to list stations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": stations})
}
