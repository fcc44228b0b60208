package services

import (
	"testing"
	"time"

	"busbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
}

func TestSearchWindowPastDate(t *testing.T) {
	now := fixedNow()
	_, _, err := searchWindow(now.AddDate(0, 0, -1), now)
	if !domain.IsUnprocessable(err) {
		t.Fatalf("expected unprocessable error, got %v", err)
	}
}

func TestSearchWindowSameDayStartsOneHourFromNow(t *testing.T) {
	now := fixedNow()
	start, end, err := searchWindow(now, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.Equal(now.Add(time.Hour)) {
		t.Fatalf("window start = %v, want %v", start, now.Add(time.Hour))
	}
	wantEnd := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	if !end.Equal(wantEnd) {
		t.Fatalf("window end = %v, want %v", end, wantEnd)
	}
}

func TestSearchWindowFutureDayStartsAtMidnight(t *testing.T) {
	now := fixedNow()
	day := now.AddDate(0, 0, 3)
	start, end, err := searchWindow(day, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	if !start.Equal(wantStart) {
		t.Fatalf("window start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantStart.AddDate(0, 0, 1)) {
		t.Fatalf("window end = %v, want %v", end, wantStart.AddDate(0, 0, 1))
	}
}

func TestSearchWindowTooFarInFuture(t *testing.T) {
	now := fixedNow()
	_, _, err := searchWindow(now.AddDate(0, 0, 31), now)
	if !domain.IsUnprocessable(err) {
		t.Fatalf("expected unprocessable error, got %v", err)
	}
}

func TestSearchValidationShortCircuits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := ScheduleService{DB: db, Now: fixedNow}

	// Missing fields fail before any station lookup.
	if _, err := svc.SearchAvailable("NYC", "BOS", ""); !domain.IsValidation(err) {
		t.Fatalf("missing date: expected validation error, got %v", err)
	}
	if _, err := svc.SearchAvailable("NYC", "", "2026-09-01"); !domain.IsValidation(err) {
		t.Fatalf("missing destination: expected validation error, got %v", err)
	}
	if _, err := svc.SearchAvailable("", "BOS", "2026-09-01"); !domain.IsValidation(err) {
		t.Fatalf("missing source: expected validation error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected DB access: %v", err)
	}
}

func TestSearchUnknownSourceStation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, station_code, name FROM stations").WithArgs("ZZZ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "station_code", "name"}))

	svc := ScheduleService{DB: db, Now: fixedNow}
	_, err = svc.SearchAvailable("ZZZ", "BOS", "2026-09-01")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestSearchSameSourceAndDestination(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	stationRows := func(id int64, code, name string) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "station_code", "name"}).AddRow(id, code, name)
	}
	mock.ExpectQuery("SELECT id, station_code, name FROM stations").WithArgs("NYC").
		WillReturnRows(stationRows(1, "NYC", "New York"))
	mock.ExpectQuery("SELECT id, station_code, name FROM stations").WithArgs("NYC").
		WillReturnRows(stationRows(1, "NYC", "New York"))

	svc := ScheduleService{DB: db, Now: fixedNow}
	// Invalid date as well: the identical-pair check must win regardless.
	_, err = svc.SearchAvailable("NYC", "NYC", "not-a-date")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSearchReturnsMatchingSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := fixedNow()
	tomorrow := now.AddDate(0, 0, 1)

	mock.ExpectQuery("SELECT id, station_code, name FROM stations").WithArgs("NYC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "station_code", "name"}).AddRow(1, "NYC", "New York"))
	mock.ExpectQuery("SELECT id, station_code, name FROM stations").WithArgs("BOS").
		WillReturnRows(sqlmock.NewRows([]string{"id", "station_code", "name"}).AddRow(2, "BOS", "Boston"))

	dep := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 0, 0, 0, time.Local)
	arr := dep.Add(4 * time.Hour)
	mock.ExpectQuery("FROM travel_schedules s").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "source_id", "destination_id", "bus_id",
			"src_code", "src_name", "dst_code", "dst_name",
			"departure", "arrival", "total_seat", "seat_booked", "available_seat", "seat_cost",
		}).AddRow(11, 1, 2, 7, "NYC", "New York", "BOS", "Boston", dep, arr, 40, 5, 35, 100.0))

	svc := ScheduleService{DB: db, Now: fixedNow}
	result, err := svc.SearchAvailable("NYC", "BOS", tomorrow.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Schedules) != 1 {
		t.Fatalf("expected 1 schedule, got %d", len(result.Schedules))
	}
	got := result.Schedules[0]
	if got.ID != 11 || got.SourceCode != "NYC" || got.DestinationCode != "BOS" {
		t.Fatalf("unexpected schedule: %+v", got)
	}
	if got.SeatBooked+got.AvailableSeat != got.TotalSeat {
		t.Fatalf("seat invariant broken: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func expectStationPair(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT id, station_code, name FROM stations").WithArgs("NYC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "station_code", "name"}).AddRow(1, "NYC", "New York"))
	mock.ExpectQuery("SELECT id, station_code, name FROM stations").WithArgs("BOS").
		WillReturnRows(sqlmock.NewRows([]string{"id", "station_code", "name"}).AddRow(2, "BOS", "Boston"))
}

func TestCreateSchedulePersistsCounters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	dep := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	arr := dep.Add(4 * time.Hour)

	expectStationPair(mock)
	mock.ExpectQuery("SELECT id FROM buses").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT id FROM travel_schedules").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO travel_schedules").
		WithArgs(int64(1), int64(2), int64(7), dep, arr, 40, 5, 35, 100.0).
		WillReturnResult(sqlmock.NewResult(11, 1))

	svc := ScheduleService{DB: db, Now: fixedNow}
	sched, err := svc.Create(ScheduleInput{
		SourceCode:      "NYC",
		DestinationCode: "BOS",
		BusID:           7,
		Departure:       dep,
		Arrival:         arr,
		TotalSeat:       40,
		SeatBooked:      5,
		SeatCost:        100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sched.ID != 11 {
		t.Fatalf("expected inserted id 11, got %d", sched.ID)
	}
	if sched.AvailableSeat != 35 || sched.SeatBooked != 5 {
		t.Fatalf("unexpected counters: %+v", sched)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateScheduleRejectsOverbookedRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	dep := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	arr := dep.Add(4 * time.Hour)

	expectStationPair(mock)
	mock.ExpectQuery("SELECT id FROM buses").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT id FROM travel_schedules").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := ScheduleService{DB: db, Now: fixedNow}
	_, err = svc.Create(ScheduleInput{
		SourceCode:      "NYC",
		DestinationCode: "BOS",
		BusID:           7,
		Departure:       dep,
		Arrival:         arr,
		TotalSeat:       40,
		SeatBooked:      50,
		SeatCost:        100,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// No INSERT expectation set: counters at source stay untouched.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateScheduleDuplicateConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	dep := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	arr := dep.Add(4 * time.Hour)

	expectStationPair(mock)
	mock.ExpectQuery("SELECT id FROM buses").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT id FROM travel_schedules").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	svc := ScheduleService{DB: db, Now: fixedNow}
	_, err = svc.Create(ScheduleInput{
		SourceCode:      "NYC",
		DestinationCode: "BOS",
		BusID:           7,
		Departure:       dep,
		Arrival:         arr,
		TotalSeat:       40,
		SeatBooked:      5,
		SeatCost:        100,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func scheduleRow(id int64, dep, arr time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "source_id", "destination_id", "bus_id",
		"src_code", "src_name", "dst_code", "dst_name",
		"departure", "arrival", "total_seat", "seat_booked", "available_seat", "seat_cost",
	}).AddRow(id, 1, 2, 7, "NYC", "New York", "BOS", "Boston", dep, arr, 40, 5, 35, 100.0)
}

func TestUpdateScheduleBusReuseConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	dep := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	arr := dep.Add(4 * time.Hour)

	mock.ExpectQuery("FROM travel_schedules s").WithArgs(int64(11)).
		WillReturnRows(scheduleRow(11, dep, arr))
	// Another schedule departs within 24h after the new arrival.
	mock.ExpectQuery("SELECT id FROM travel_schedules").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	svc := ScheduleService{DB: db, Now: fixedNow}
	_, err = svc.Update(11, ScheduleInput{
		SourceCode:      "NYC",
		DestinationCode: "BOS",
		BusID:           7,
		Departure:       dep,
		Arrival:         arr,
		TotalSeat:       40,
		SeatBooked:      5,
		SeatCost:        100,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUpdateScheduleMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM travel_schedules s").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := ScheduleService{DB: db, Now: fixedNow}
	_, err = svc.Update(99, ScheduleInput{BusID: 7})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteScheduleMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM travel_schedules").WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	svc := ScheduleService{DB: db, Now: fixedNow}
	if err := svc.Delete(99); !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
