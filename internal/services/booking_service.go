package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/google/uuid"
)

const taxRate = 0.12

// Fixed unit prices for known add-ons. Unknown names are kept on the booking
// at zero price and reported back to the caller instead of being rejected.
var addonPrices = map[string]float64{
	"ColdDrink": 20,
	"New Paper": 10,
	"Chips":     30,
}

// BookingService prices and persists bookings. The seat claim itself happens
// in BookingRepository.Create so check and mutation cannot race.
type BookingService struct {
	BookingRepo  repositories.BookingRepository
	ScheduleRepo repositories.ScheduleRepository
	UserRepo     repositories.UserRepository
	DB           *sql.DB
	RequestID    string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) schedules() repositories.ScheduleRepository {
	if s.ScheduleRepo.DB != nil {
		return s.ScheduleRepo
	}
	return repositories.ScheduleRepository{DB: s.db()}
}

func (s BookingService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

// BookingResult is the booking projection plus the add-on names that carried
// no known price.
type BookingResult struct {
	Booking        models.Booking
	UnpricedAddons []string
}

// Book resolves the user and schedule, prices the request and claims the
// seats. The availability re-check inside the claim transaction is
// authoritative; the early check here only short-circuits obvious losers.
func (s BookingService) Book(in models.BookingInput) (BookingResult, error) {
	var result BookingResult

	if in.UserID <= 0 {
		return result, domain.ValidationError{Field: "userId", Msg: "user id is required"}
	}
	if in.ScheduleID <= 0 {
		return result, domain.ValidationError{Field: "scheduleId", Msg: "schedule id is required"}
	}
	if in.NumberOfSeats <= 0 {
		return result, domain.ValidationError{Field: "numberOfSeats", Msg: "number of seats must be positive"}
	}

	user, err := s.users().GetByID(in.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return result, domain.NotFoundError{Resource: fmt.Sprintf("user %d", in.UserID)}
	}
	if err != nil {
		return result, domain.InternalError{Err: err}
	}

	sched, err := s.schedules().GetByID(in.ScheduleID)
	if errors.Is(err, sql.ErrNoRows) {
		return result, domain.NotFoundError{Resource: fmt.Sprintf("travel schedule %d", in.ScheduleID)}
	}
	if err != nil {
		return result, domain.InternalError{Err: err}
	}

	if in.NumberOfSeats > sched.AvailableSeat {
		return result, domain.InsufficientSeatsError{
			ScheduleID: sched.ID,
			Requested:  in.NumberOfSeats,
			Available:  sched.AvailableSeat,
		}
	}

	subtotal := float64(in.NumberOfSeats) * sched.SeatCost
	total := subtotal + subtotal*taxRate

	addons, addonCost, unpriced := priceAddons(in.Addons)
	total += addonCost
	for _, name := range unpriced {
		utils.LogWarn(s.RequestID, "booking", "price_addons", fmt.Sprintf("unknown extra addon %q priced at zero", name))
	}

	booking := models.Booking{
		Ref:           uuid.NewString(),
		UserID:        user.ID,
		ScheduleID:    sched.ID,
		NumberOfSeats: in.NumberOfSeats,
		SeatCost:      sched.SeatCost,
		TotalAmount:   total,
		RouteFrom:     sched.SourceName,
		RouteTo:       sched.DestinationName,
		DepartureTime: sched.EstimatedDeparture,
		Addons:        addons,
	}

	saved, err := s.bookings().Create(booking)
	if err != nil {
		if domain.IsNotFound(err) || domain.IsInsufficientSeats(err) {
			return result, err
		}
		return result, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d ref=%s schedule_id=%d seats=%d total=%s",
			saved.ID, saved.Ref, saved.ScheduleID, saved.NumberOfSeats, utils.FormatMoney(saved.TotalAmount)))

	result.Booking = saved
	result.UnpricedAddons = unpriced
	return result, nil
}

func (s BookingService) GetByID(id int64) (models.Booking, error) {
	b, err := s.bookings().GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return b, domain.NotFoundError{Resource: fmt.Sprintf("booking %d", id)}
	}
	if err != nil {
		return b, domain.InternalError{Err: err}
	}
	return b, nil
}

func (s BookingService) ListByUser(userID int64) ([]models.Booking, error) {
	out, err := s.bookings().ListByUser(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// priceAddons normalizes the add-on list, attaches unit prices and sums the
// extra cost. Names without a price are returned separately.
func priceAddons(in []models.ExtraAddon) ([]models.ExtraAddon, float64, []string) {
	out := make([]models.ExtraAddon, 0, len(in))
	unpriced := []string{}
	var cost float64

	for _, a := range in {
		name := strings.TrimSpace(a.Name)
		if name == "" || a.Quantity <= 0 {
			continue
		}
		price, known := addonPrices[name]
		if !known {
			unpriced = append(unpriced, name)
		}
		cost += price * float64(a.Quantity)
		out = append(out, models.ExtraAddon{Name: name, Quantity: a.Quantity, UnitPrice: price})
	}
	return out, cost, unpriced
}
