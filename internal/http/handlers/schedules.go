package handlers

import (
	"fmt"
	"net/http"

	"busbooking/internal/http/middleware"
	"busbooking/internal/services"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

type scheduleRequest struct {
	SourceCode             string  `json:"sourceCode"`
	DestinationCode        string  `json:"destinationCode"`
	BusID                  int64   `json:"busId"`
	EstimatedDepartureTime string  `json:"estimatedDepartureTime"`
	EstimatedArrivalTime   string  `json:"estimatedArrivalTime"`
	TotalSeat              int     `json:"totalSeat"`
	SeatBooked             int     `json:"seatBooked"`
	SeatCost               float64 `json:"seatCost"`
}

func scheduleService(c *gin.Context) services.ScheduleService {
	return services.ScheduleService{RequestID: middleware.GetRequestID(c)}
}

func (r scheduleRequest) toInput(c *gin.Context) (services.ScheduleInput, bool) {
	departure, err := utils.ParseDateTime(r.EstimatedDepartureTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid estimatedDepartureTime: "+err.Error())
		return services.ScheduleInput{}, false
	}
	arrival, err := utils.ParseDateTime(r.EstimatedArrivalTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid estimatedArrivalTime: "+err.Error())
		return services.ScheduleInput{}, false
	}
	return services.ScheduleInput{
		SourceCode:      r.SourceCode,
		DestinationCode: r.DestinationCode,
		BusID:           r.BusID,
		Departure:       departure,
		Arrival:         arrival,
		TotalSeat:       r.TotalSeat,
		SeatBooked:      r.SeatBooked,
		SeatCost:        r.SeatCost,
	}, true
}

// GET /schedules/availability?sourceCode&destinationCode&date
func GetScheduleAvailability(c *gin.Context) {
	svc := scheduleService(c)
	result, err := svc.SearchAvailable(
		c.Query("sourceCode"),
		c.Query("destinationCode"),
		c.Query("date"),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if len(result.Schedules) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"message":   "no schedule is available for the date you searched for",
			"schedules": result.Schedules,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("available schedules between %s and %s on %s",
			result.Source.Name, result.Destination.Name, c.Query("date")),
		"schedules": result.Schedules,
	})
}

// POST /schedules
func CreateSchedule(c *gin.Context) {
	var req scheduleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	sched, err := scheduleService(c).Create(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sched)
}

// PUT /schedules/:id
func UpdateSchedule(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	var req scheduleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	sched, err := scheduleService(c).Update(id, input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// GET /schedules/:id
func GetSchedule(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	sched, err := scheduleService(c).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// DELETE /schedules/:id
func DeleteSchedule(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	if err := scheduleService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
