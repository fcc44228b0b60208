package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TicketService renders booking e-tickets and invoices as PDF.
type TicketService struct {
	BookingRepo repositories.BookingRepository
	UserRepo    repositories.UserRepository
	DB          *sql.DB
	RequestID   string
	Loader      func(int64) (ticketData, error)
}

type ticketData struct {
	BookingID     int64
	Ref           string
	UserName      string
	RouteFrom     string
	RouteTo       string
	DepartureTime time.Time
	NumberOfSeats int
	SeatCost      float64
	TotalAmount   float64
	Addons        []addonLine
}

type addonLine struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

func (s TicketService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TicketService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s TicketService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

func (s TicketService) GenerateETicket(bookingID int64) ([]byte, string, error) {
	data, err := s.loadTicketData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(data)
}

func (s TicketService) GenerateInvoice(bookingID int64) ([]byte, string, error) {
	data, err := s.loadTicketData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(data)
}

func (s TicketService) loadTicketData(bookingID int64) (ticketData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	var out ticketData
	b, err := s.bookings().GetByID(bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return out, domain.NotFoundError{Resource: fmt.Sprintf("booking %d", bookingID)}
	}
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	out.BookingID = b.ID
	out.Ref = b.Ref
	out.RouteFrom = b.RouteFrom
	out.RouteTo = b.RouteTo
	out.DepartureTime = b.DepartureTime
	out.NumberOfSeats = b.NumberOfSeats
	out.SeatCost = b.SeatCost
	out.TotalAmount = b.TotalAmount
	for _, a := range b.Addons {
		out.Addons = append(out.Addons, addonLine{Name: a.Name, Quantity: a.Quantity, UnitPrice: a.UnitPrice})
	}

	if u, err := s.users().GetByID(b.UserID); err == nil {
		out.UserName = u.Name
	}
	return out, nil
}

func buildETicketPDF(d ticketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Ref : %s", safe(d.Ref, "-")),
		fmt.Sprintf("Passenger   : %s", safe(d.UserName, "-")),
		fmt.Sprintf("Route       : %s -> %s", safe(d.RouteFrom, "-"), safe(d.RouteTo, "-")),
		fmt.Sprintf("Departure   : %s", utils.FormatDateTime(d.DepartureTime)),
		fmt.Sprintf("Seats       : %d", d.NumberOfSeats),
		fmt.Sprintf("Booking No  : #%d", d.BookingID),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this e-ticket at boarding. Valid for the listed seats only.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.BookingID, safe(d.Ref, "booking"))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(d ticketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d", d.BookingID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Billed to  : "+safe(d.UserName, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Items:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	desc := fmt.Sprintf("Bus ticket %s -> %s (%s), %d seat(s) x %s",
		safe(d.RouteFrom, "-"), safe(d.RouteTo, "-"),
		utils.FormatDateTime(d.DepartureTime),
		d.NumberOfSeats, utils.FormatMoney(d.SeatCost),
	)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	for i, a := range d.Addons {
		line := fmt.Sprintf("%d) %s x%d @ %s", i+2, a.Name, a.Quantity, utils.FormatMoney(a.UnitPrice))
		pdf.MultiCell(0, 6, line, "", "", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total (incl. 12% tax): "+utils.FormatMoney(d.TotalAmount))
	pdf.Ln(12)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%d.pdf", d.BookingID)
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
