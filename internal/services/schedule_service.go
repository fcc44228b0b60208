package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

const maxSearchDays = 30

// ScheduleService implements availability search and the schedule lifecycle.
type ScheduleService struct {
	ScheduleRepo repositories.ScheduleRepository
	StationRepo  repositories.StationRepository
	BusRepo      repositories.BusRepository
	DB           *sql.DB
	RequestID    string
	Now          func() time.Time
}

func (s ScheduleService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ScheduleService) schedules() repositories.ScheduleRepository {
	if s.ScheduleRepo.DB != nil {
		return s.ScheduleRepo
	}
	return repositories.ScheduleRepository{DB: s.db()}
}

func (s ScheduleService) stations() repositories.StationRepository {
	if s.StationRepo.DB != nil {
		return s.StationRepo
	}
	return repositories.StationRepository{DB: s.db()}
}

func (s ScheduleService) buses() repositories.BusRepository {
	if s.BusRepo.DB != nil {
		return s.BusRepo
	}
	return repositories.BusRepository{DB: s.db()}
}

func (s ScheduleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SearchResult carries the resolved pair alongside the matches so callers can
// build a human-readable summary without another lookup.
type SearchResult struct {
	Source      models.Station
	Destination models.Station
	Schedules   []models.TravelSchedule
}

// SearchAvailable validates the query, computes the effective search window
// and returns schedules for the pair on the requested day. An empty result is
// not an error.
func (s ScheduleService) SearchAvailable(sourceCode, destinationCode, date string) (SearchResult, error) {
	var result SearchResult

	if strings.TrimSpace(date) == "" {
		return result, domain.ValidationError{Field: "date", Msg: "date is required"}
	}
	if strings.TrimSpace(destinationCode) == "" {
		return result, domain.ValidationError{Field: "destinationCode", Msg: "destination station code is required"}
	}
	if strings.TrimSpace(sourceCode) == "" {
		return result, domain.ValidationError{Field: "sourceCode", Msg: "source station code is required"}
	}

	source, err := s.stations().GetByCode(sourceCode)
	if errors.Is(err, sql.ErrNoRows) {
		return result, domain.NotFoundError{Resource: fmt.Sprintf("source station %q", sourceCode)}
	}
	if err != nil {
		return result, domain.InternalError{Err: err}
	}
	destination, err := s.stations().GetByCode(destinationCode)
	if errors.Is(err, sql.ErrNoRows) {
		return result, domain.NotFoundError{Resource: fmt.Sprintf("destination station %q", destinationCode)}
	}
	if err != nil {
		return result, domain.InternalError{Err: err}
	}

	if strings.TrimSpace(sourceCode) == strings.TrimSpace(destinationCode) {
		return result, domain.ValidationError{Msg: "source and destination station codes cannot be the same"}
	}

	searchDate, err := utils.ParseDate(date)
	if err != nil {
		return result, domain.ValidationError{Field: "date", Msg: "invalid date format, expected YYYY-MM-DD", Err: err}
	}

	now := s.now()
	windowStart, windowEnd, err := searchWindow(searchDate, now)
	if err != nil {
		return result, err
	}

	schedules, err := s.schedules().Search(source.ID, destination.ID, windowStart, windowEnd, now)
	if err != nil {
		return result, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "schedule", "search",
		fmt.Sprintf("source=%s destination=%s date=%s matches=%d", source.Code, destination.Code, date, len(schedules)))

	result.Source = source
	result.Destination = destination
	result.Schedules = schedules
	return result, nil
}

// searchWindow computes the effective departure window for a search date.
// Same-day searches start one hour from now; future days start at midnight.
// The window always ends at the next midnight so only the requested day is
// queried.
func searchWindow(searchDate, now time.Time) (time.Time, time.Time, error) {
	today := utils.Midnight(now)
	day := utils.Midnight(searchDate)

	if day.Before(today) {
		return time.Time{}, time.Time{}, domain.UnprocessableError{Msg: "cannot search for schedules in the past"}
	}

	windowStart := day
	if day.Equal(today) {
		windowStart = now.Add(time.Hour)
	}

	if windowStart.After(now.AddDate(0, 0, maxSearchDays)) {
		return time.Time{}, time.Time{}, domain.UnprocessableError{Msg: "cannot search for schedules more than one month in the future"}
	}

	return windowStart, day.AddDate(0, 0, 1), nil
}

// ScheduleInput carries create/update fields into the service layer.
type ScheduleInput struct {
	SourceCode      string
	DestinationCode string
	BusID           int64
	Departure       time.Time
	Arrival         time.Time
	TotalSeat       int
	SeatBooked      int
	SeatCost        float64
}

// Create stores a new schedule unless an identical one exists. The requested
// initial seat count must claim at least one and at most all seats.
func (s ScheduleService) Create(in ScheduleInput) (models.TravelSchedule, error) {
	var sched models.TravelSchedule

	source, err := s.stations().GetByCode(in.SourceCode)
	if errors.Is(err, sql.ErrNoRows) {
		return sched, domain.NotFoundError{Resource: fmt.Sprintf("source station %q", in.SourceCode)}
	}
	if err != nil {
		return sched, domain.InternalError{Err: err}
	}
	destination, err := s.stations().GetByCode(in.DestinationCode)
	if errors.Is(err, sql.ErrNoRows) {
		return sched, domain.NotFoundError{Resource: fmt.Sprintf("destination station %q", in.DestinationCode)}
	}
	if err != nil {
		return sched, domain.InternalError{Err: err}
	}

	busExists, err := s.buses().Exists(in.BusID)
	if err != nil {
		return sched, domain.InternalError{Err: err}
	}
	if !busExists {
		return sched, domain.NotFoundError{Resource: fmt.Sprintf("bus %d", in.BusID)}
	}

	duplicate, err := s.schedules().Exists(source.ID, destination.ID, in.BusID, in.Departure, in.Arrival)
	if err != nil {
		return sched, domain.InternalError{Err: err}
	}
	if duplicate {
		return sched, domain.ConflictError{Resource: "travel schedule", Msg: "travel schedule already exists"}
	}

	if in.SeatBooked <= 0 || in.SeatBooked > in.TotalSeat {
		available := in.TotalSeat
		if available < 0 {
			available = 0
		}
		return sched, domain.ValidationError{
			Field: "seatBooked",
			Msg:   fmt.Sprintf("cannot book %d seats, only %d seats are available", in.SeatBooked, available),
		}
	}

	sched = models.TravelSchedule{
		SourceID:           source.ID,
		DestinationID:      destination.ID,
		BusID:              in.BusID,
		SourceCode:         source.Code,
		SourceName:         source.Name,
		DestinationCode:    destination.Code,
		DestinationName:    destination.Name,
		EstimatedDeparture: in.Departure,
		EstimatedArrival:   in.Arrival,
		TotalSeat:          in.TotalSeat,
		SeatBooked:         in.SeatBooked,
		AvailableSeat:      in.TotalSeat - in.SeatBooked,
		SeatCost:           in.SeatCost,
	}

	sched, err = s.schedules().Insert(sched)
	if err != nil {
		return sched, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "schedule", "create",
		fmt.Sprintf("schedule_id=%d route=%s-%s bus_id=%d", sched.ID, sched.SourceCode, sched.DestinationCode, sched.BusID))
	return sched, nil
}

// Update replaces schedule fields. A bus change is validated against the bus
// registry, and the 24-hour bus-reuse rule is enforced on the new window.
func (s ScheduleService) Update(id int64, in ScheduleInput) (models.TravelSchedule, error) {
	existing, err := s.schedules().GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return existing, domain.NotFoundError{Resource: fmt.Sprintf("travel schedule %d", id)}
	}
	if err != nil {
		return existing, domain.InternalError{Err: err}
	}

	if in.BusID != existing.BusID {
		busExists, err := s.buses().Exists(in.BusID)
		if err != nil {
			return existing, domain.InternalError{Err: err}
		}
		if !busExists {
			return existing, domain.NotFoundError{Resource: fmt.Sprintf("bus %d", in.BusID)}
		}
	}

	reused, err := s.schedules().BusReuseExists(in.BusID, id, in.Arrival)
	if err != nil {
		return existing, domain.InternalError{Err: err}
	}
	if reused {
		return existing, domain.ConflictError{
			Resource: "bus",
			Msg:      fmt.Sprintf("bus %d cannot be reused within 24 hours", in.BusID),
		}
	}

	if in.SeatBooked < 0 || in.SeatBooked > in.TotalSeat {
		return existing, domain.ValidationError{
			Field: "seatBooked",
			Msg:   fmt.Sprintf("cannot book %d seats, only %d seats are available", in.SeatBooked, in.TotalSeat),
		}
	}

	existing.BusID = in.BusID
	existing.EstimatedDeparture = in.Departure
	existing.EstimatedArrival = in.Arrival
	existing.TotalSeat = in.TotalSeat
	existing.SeatBooked = in.SeatBooked
	existing.AvailableSeat = in.TotalSeat - in.SeatBooked
	existing.SeatCost = in.SeatCost

	if err := s.schedules().Update(existing); err != nil {
		return existing, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "schedule", "update", fmt.Sprintf("schedule_id=%d bus_id=%d", id, in.BusID))
	return existing, nil
}

func (s ScheduleService) GetByID(id int64) (models.TravelSchedule, error) {
	sched, err := s.schedules().GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return sched, domain.NotFoundError{Resource: fmt.Sprintf("travel schedule %d", id)}
	}
	if err != nil {
		return sched, domain.InternalError{Err: err}
	}
	return sched, nil
}

// Delete removes a schedule. Bookings referencing it keep their snapshot.
func (s ScheduleService) Delete(id int64) error {
	err := s.schedules().Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: fmt.Sprintf("travel schedule %d", id)}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "schedule", "delete", fmt.Sprintf("schedule_id=%d", id))
	return nil
}
