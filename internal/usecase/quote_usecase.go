package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"taller_manager/internal/domain/entities"
	"taller_manager/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrInvalidQuoteID       = errors.New("invalid quote id")
	ErrQuoteAlreadyResolved = errors.New("quote already accepted or rejected")
)

// NoPlate is recorded when the free-text vehicle field carries no
// recognizable license plate. Accepted business behavior, not an error.
const NoPlate = "S/P"

// IQuoteUseCase exposes quote operations, acceptance included.
//
// Status transitions: pending -> accepted and pending -> rejected, both
// terminal. Acceptance materializes a new Service from the quote; the quote
// itself is retained with its status flipped.

type IQuoteUseCase interface {
	List(ctx context.Context) ([]entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Save(ctx context.Context, q entities.Quote) (entities.Quote, error)
	Accept(ctx context.Context, id string) (entities.Service, entities.Quote, error)
	Reject(ctx context.Context, id string) (entities.Quote, error)
	Delete(ctx context.Context, id string) error
}

type QuoteUseCase struct {
	repo        interfaces.IQuoteRepository
	serviceRepo interfaces.IServiceRepository
	mu          sync.Mutex
	now         func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, serviceRepo interfaces.IServiceRepository) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, serviceRepo: serviceRepo, now: time.Now}
}

func (u *QuoteUseCase) List(ctx context.Context) ([]entities.Quote, error) {
	quotes, err := u.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(quotes, func(i, j int) bool {
		ti, _ := entities.ParseRecordDate(quotes[i].Date)
		tj, _ := entities.ParseRecordDate(quotes[j].Date)
		return ti.After(tj)
	})
	return quotes, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	quotes, err := u.repo.Load(ctx)
	if err != nil {
		return entities.Quote{}, err
	}
	for _, q := range quotes {
		if q.ID == id {
			return q, nil
		}
	}
	return entities.Quote{}, ErrQuoteNotFound
}

// Save upserts a quote. Total is snapshotted from the current line items at
// save time; new quotes get the next sequential zero-padded id because the
// id is client-facing (printed on documents and messages).
func (u *QuoteUseCase) Save(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	quotes, err := u.repo.Load(ctx)
	if err != nil {
		return entities.Quote{}, err
	}

	if q.ID == "" {
		q.ID = nextQuoteID(quotes)
	}
	if q.Date == "" {
		q.Date = u.now().UTC().Format(time.RFC3339)
	}
	if q.ValidityDays <= 0 {
		q.ValidityDays = 15
	}
	if q.Status == "" {
		q.Status = entities.QuoteStatusPending
	}
	q.Total = q.ComputeTotal()

	replaced := false
	for i := range quotes {
		if quotes[i].ID == q.ID {
			quotes[i] = q
			replaced = true
			break
		}
	}
	if !replaced {
		quotes = append([]entities.Quote{q}, quotes...)
	}
	if err := u.repo.Save(ctx, quotes); err != nil {
		log.Printf("[quote][usecase] save failed id=%s err=%v", q.ID, err)
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] saved id=%s total=%d status=%s", q.ID, q.Total, q.Status)
	return q, nil
}

// Accept flips a pending quote to accepted and creates the corresponding
// Service in the same operation. The new service starts pending with no
// legacy price, no advance and an empty payment list; quote line items are
// mapped to flat-amount service items (quantity folded into the amount and
// surfaced as a "(n) " description prefix).
func (u *QuoteUseCase) Accept(ctx context.Context, id string) (entities.Service, entities.Quote, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, entities.Quote{}, ErrInvalidQuoteID
	}
	quotes, err := u.repo.Load(ctx)
	if err != nil {
		return entities.Service{}, entities.Quote{}, err
	}
	idx := -1
	for i := range quotes {
		if quotes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entities.Service{}, entities.Quote{}, ErrQuoteNotFound
	}
	q := quotes[idx]
	if q.Status != entities.QuoteStatusPending {
		return entities.Service{}, entities.Quote{}, ErrQuoteAlreadyResolved
	}

	plate, brand, model := ParseVehicle(q.Vehicle)

	reason := fmt.Sprintf("Cotización #%s Aprobada", q.ID)
	if strings.TrimSpace(q.Notes) != "" {
		reason = fmt.Sprintf("Cotización #%s: %s", q.ID, q.Notes)
	}

	svc := entities.Service{
		ID:         uuid.NewString(),
		ClientName: q.ClientName,
		Phone:      q.Phone,
		Plate:      plate,
		Brand:      brand,
		Model:      model,
		Reason:     reason,
		Price:      0,
		LaborItems: mapQuoteItems(q.LaborItems),
		Expenses:   mapQuoteItems(append(append([]entities.QuoteLineItem{}, q.ExpenseItems...), q.Items...)),
		Advance:    0,
		Payments:   []entities.PaymentEvent{},
		EntryDate:  u.now().UTC().Format(time.RFC3339),
		Status:     entities.ServiceStatusPending,
	}

	services, err := u.serviceRepo.Load(ctx)
	if err != nil {
		return entities.Service{}, entities.Quote{}, err
	}
	if err := u.serviceRepo.Save(ctx, append([]entities.Service{svc}, services...)); err != nil {
		log.Printf("[quote][usecase] accept: service save failed quote_id=%s err=%v", q.ID, err)
		return entities.Service{}, entities.Quote{}, err
	}

	quotes[idx].Status = entities.QuoteStatusAccepted
	if err := u.repo.Save(ctx, quotes); err != nil {
		// Roll the materialized service back so the pair stays consistent.
		log.Printf("[quote][usecase] accept: quote save failed quote_id=%s err=%v", q.ID, err)
		_ = u.serviceRepo.Save(ctx, services)
		return entities.Service{}, entities.Quote{}, err
	}
	log.Printf("[quote][usecase] accepted id=%s service_id=%s plate=%s", q.ID, svc.ID, svc.Plate)
	return svc, quotes[idx], nil
}

func (u *QuoteUseCase) Reject(ctx context.Context, id string) (entities.Quote, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	quotes, err := u.repo.Load(ctx)
	if err != nil {
		return entities.Quote{}, err
	}
	for i := range quotes {
		if quotes[i].ID != id {
			continue
		}
		if quotes[i].Status != entities.QuoteStatusPending {
			return entities.Quote{}, ErrQuoteAlreadyResolved
		}
		quotes[i].Status = entities.QuoteStatusRejected
		if err := u.repo.Save(ctx, quotes); err != nil {
			return entities.Quote{}, err
		}
		log.Printf("[quote][usecase] rejected id=%s", id)
		return quotes[i], nil
	}
	return entities.Quote{}, ErrQuoteNotFound
}

func (u *QuoteUseCase) Delete(ctx context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidQuoteID
	}
	quotes, err := u.repo.Load(ctx)
	if err != nil {
		return err
	}
	kept := quotes[:0]
	for _, q := range quotes {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	if len(kept) == len(quotes) {
		return ErrQuoteNotFound
	}
	if err := u.repo.Save(ctx, kept); err != nil {
		return err
	}
	log.Printf("[quote][usecase] deleted id=%s", id)
	return nil
}

// ParseVehicle splits the free-text "brand model plate" field. The last
// token is taken as the plate when it looks like one (carries a digit, is
// exactly six characters, or contains a hyphen); otherwise everything is
// brand + model and the plate is NoPlate.
func ParseVehicle(vehicle string) (plate, brand, model string) {
	plate = NoPlate
	brand = "Vehículo"

	parts := strings.Fields(strings.TrimSpace(vehicle))
	switch {
	case len(parts) >= 2:
		last := parts[len(parts)-1]
		if strings.ContainsAny(last, "0123456789") || utf8.RuneCountInString(last) == 6 || strings.Contains(last, "-") {
			plate = strings.ToUpper(last)
			brand = parts[0]
			model = strings.Join(parts[1:len(parts)-1], " ")
		} else {
			brand = parts[0]
			model = strings.Join(parts[1:], " ")
		}
	case len(parts) == 1:
		brand = parts[0]
	}
	return plate, brand, model
}

func mapQuoteItems(items []entities.QuoteLineItem) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(items))
	for _, it := range items {
		desc := it.Description
		if it.Quantity > 1 {
			desc = fmt.Sprintf("(%d) %s", it.Quantity, it.Description)
		}
		out = append(out, entities.LineItem{
			ID:          uuid.NewString(),
			Description: desc,
			Amount:      it.LineTotal(),
		})
	}
	return out
}

// nextQuoteID returns the next sequential zero-padded id, suffixing on the
// rare collision with a non-numeric id that already holds the slot.
func nextQuoteID(quotes []entities.Quote) string {
	max := 0
	for _, q := range quotes {
		if n, err := strconv.Atoi(q.ID); err == nil && n > max {
			max = n
		}
	}
	next := fmt.Sprintf("%03d", max+1)
	for _, q := range quotes {
		if q.ID == next {
			return next + "_1"
		}
	}
	return next
}
