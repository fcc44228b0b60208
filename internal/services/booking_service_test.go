package services

import (
	"testing"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPriceAddons(t *testing.T) {
	addons, cost, unpriced := priceAddons([]models.ExtraAddon{
		{Name: "ColdDrink", Quantity: 2},
		{Name: "Chips", Quantity: 1},
		{Name: "Pillow", Quantity: 3},
		{Name: "", Quantity: 5},
		{Name: "New Paper", Quantity: 0},
	})

	if cost != 70 {
		t.Fatalf("addon cost = %v, want 70", cost)
	}
	if len(addons) != 3 {
		t.Fatalf("expected 3 kept addons, got %d", len(addons))
	}
	if len(unpriced) != 1 || unpriced[0] != "Pillow" {
		t.Fatalf("unpriced = %v, want [Pillow]", unpriced)
	}
	if addons[2].UnitPrice != 0 {
		t.Fatalf("unknown addon must be priced at zero, got %v", addons[2].UnitPrice)
	}
}

func expectUserAndSchedule(mock sqlmock.Sqlmock, available int, dep, arr time.Time) {
	mock.ExpectQuery("SELECT id, name, email, password_hash FROM users").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}).
			AddRow(5, "Alice", "alice@example.com", ""))
	mock.ExpectQuery("FROM travel_schedules s").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "source_id", "destination_id", "bus_id",
			"src_code", "src_name", "dst_code", "dst_name",
			"departure", "arrival", "total_seat", "seat_booked", "available_seat", "seat_cost",
		}).AddRow(9, 1, 2, 7, "NYC", "New York", "BOS", "Boston", dep, arr, 40, 40-available, available, 100.0))
}

func TestBookComputesTotalWithTaxAndAddons(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	dep := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	arr := dep.Add(4 * time.Hour)
	expectUserAndSchedule(mock, 35, dep, arr)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE travel_schedules").
		WithArgs(3, 3, int64(9), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), int64(5), int64(9), 3, 100.0, 406.0, "New York", "Boston", dep).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("INSERT INTO booking_addons").
		WithArgs(int64(21), "ColdDrink", 2, 20.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_addons").
		WithArgs(int64(21), "Chips", 1, 30.0).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	svc := BookingService{DB: db}
	result, err := svc.Book(models.BookingInput{
		UserID:        5,
		ScheduleID:    9,
		NumberOfSeats: 3,
		Addons: []models.ExtraAddon{
			{Name: "ColdDrink", Quantity: 2},
			{Name: "Chips", Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3 seats x 100 = 300, +12% tax = 336, +40 ColdDrink +30 Chips = 406.
	if result.Booking.TotalAmount != 406 {
		t.Fatalf("total = %v, want 406", result.Booking.TotalAmount)
	}
	if result.Booking.ID != 21 || result.Booking.Ref == "" {
		t.Fatalf("unexpected booking identity: %+v", result.Booking)
	}
	if len(result.UnpricedAddons) != 0 {
		t.Fatalf("unexpected unpriced addons: %v", result.UnpricedAddons)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookInsufficientSeatsFailsEarly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	dep := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	expectUserAndSchedule(mock, 2, dep, dep.Add(4*time.Hour))

	svc := BookingService{DB: db}
	_, err = svc.Book(models.BookingInput{UserID: 5, ScheduleID: 9, NumberOfSeats: 3})
	if !domain.IsInsufficientSeats(err) {
		t.Fatalf("expected insufficient seats error, got %v", err)
	}
	// No transaction expectations: counters were never touched.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookClaimLostToConcurrentBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	dep := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	// The early read still sees 3 seats, but the claim loses the race.
	expectUserAndSchedule(mock, 3, dep, dep.Add(4*time.Hour))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE travel_schedules").
		WithArgs(3, 3, int64(9), 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT available_seat FROM travel_schedules").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seat"}).AddRow(1))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	_, err = svc.Book(models.BookingInput{UserID: 5, ScheduleID: 9, NumberOfSeats: 3})
	if !domain.IsInsufficientSeats(err) {
		t.Fatalf("expected insufficient seats error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, email, password_hash FROM users").WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}))

	svc := BookingService{DB: db}
	_, err = svc.Book(models.BookingInput{UserID: 404, ScheduleID: 9, NumberOfSeats: 1})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestBookRejectsNonPositiveSeatCount(t *testing.T) {
	svc := BookingService{}
	if _, err := svc.Book(models.BookingInput{UserID: 5, ScheduleID: 9, NumberOfSeats: 0}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookSurfacesUnpricedAddons(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	dep := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	expectUserAndSchedule(mock, 35, dep, dep.Add(4*time.Hour))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE travel_schedules").
		WithArgs(1, 1, int64(9), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), int64(5), int64(9), 1, 100.0, 112.0, "New York", "Boston", dep).
		WillReturnResult(sqlmock.NewResult(22, 1))
	mock.ExpectExec("INSERT INTO booking_addons").
		WithArgs(int64(22), "Pillow", 2, 0.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	svc := BookingService{DB: db}
	result, err := svc.Book(models.BookingInput{
		UserID:        5,
		ScheduleID:    9,
		NumberOfSeats: 1,
		Addons:        []models.ExtraAddon{{Name: "Pillow", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.UnpricedAddons) != 1 || result.UnpricedAddons[0] != "Pillow" {
		t.Fatalf("unpriced = %v, want [Pillow]", result.UnpricedAddons)
	}
	if result.Booking.TotalAmount != 112 {
		t.Fatalf("total = %v, want 112 (no charge for unknown addon)", result.Booking.TotalAmount)
	}
}
