package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

type addonRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type bookingRequest struct {
	UserID        int64          `json:"userId"`
	ScheduleID    int64          `json:"scheduleId"`
	NumberOfSeats int            `json:"numberOfSeats"`
	ExtraAddons   []addonRequest `json:"extraAddons"`
}

type bookingResponse struct {
	Booking        models.Booking `json:"booking"`
	UnpricedAddons []string       `json:"unpriced_addons,omitempty"`
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

// POST /bookings
func CreateBooking(c *gin.Context) {
	var req bookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	addons := make([]models.ExtraAddon, 0, len(req.ExtraAddons))
	for _, a := range req.ExtraAddons {
		addons = append(addons, models.ExtraAddon{Name: a.Name, Quantity: a.Quantity})
	}

	result, err := bookingService(c).Book(models.BookingInput{
		UserID:        req.UserID,
		ScheduleID:    req.ScheduleID,
		NumberOfSeats: req.NumberOfSeats,
		Addons:        addons,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookingResponse{
		Booking:        result.Booking,
		UnpricedAddons: result.UnpricedAddons,
	})
}

// GET /bookings/:id
func GetBooking(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	booking, err := bookingService(c).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GET /users/:id/bookings
func GetUserBookings(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	bookings, err := bookingService(c).ListByUser(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /bookings/:id/e-ticket
func GetBookingETicket(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	svc := services.TicketService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /bookings/:id/invoice
func GetBookingInvoice(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	svc := services.TicketService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
