package usecase

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taller_manager/internal/domain/entities"
	"taller_manager/internal/usecase/interfaces"
)

var ErrNoPhone = errors.New("no phone registered")

// WhatsAppMessage is a rendered message plus the digits-only destination.
type WhatsAppMessage struct {
	Text  string `json:"text"`
	Phone string `json:"phone"`
	URL   string `json:"url"`
}

// IWhatsAppUseCase renders the configurable client-facing messages from the
// stored templates. Templates use {token} placeholders; the service template
// understands {taller} {cliente} {marca_modelo} {patente} {fecha} {vehiculo}
// {estado} {total} {abono} {saldo} {detalle}, the quote template {id}
// {taller} {cliente} {vehiculo} {detalle} {total} {dias}.

type IWhatsAppUseCase interface {
	ServiceMessage(ctx context.Context, serviceID string) (WhatsAppMessage, error)
	QuoteMessage(ctx context.Context, quoteID string) (WhatsAppMessage, error)
}

type WhatsAppUseCase struct {
	settingsRepo interfaces.ISettingsRepository
	serviceRepo  interfaces.IServiceRepository
	quoteRepo    interfaces.IQuoteRepository
	now          func() time.Time
}

var _ IWhatsAppUseCase = (*WhatsAppUseCase)(nil)

func NewWhatsAppUseCase(settingsRepo interfaces.ISettingsRepository, serviceRepo interfaces.IServiceRepository, quoteRepo interfaces.IQuoteRepository) *WhatsAppUseCase {
	return &WhatsAppUseCase{settingsRepo: settingsRepo, serviceRepo: serviceRepo, quoteRepo: quoteRepo, now: time.Now}
}

func (u *WhatsAppUseCase) ServiceMessage(ctx context.Context, serviceID string) (WhatsAppMessage, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return WhatsAppMessage{}, ErrInvalidServiceID
	}
	services, err := u.serviceRepo.Load(ctx)
	if err != nil {
		return WhatsAppMessage{}, err
	}
	var svc *entities.Service
	for i := range services {
		if services[i].ID == serviceID {
			svc = &services[i]
			break
		}
	}
	if svc == nil {
		return WhatsAppMessage{}, ErrServiceNotFound
	}
	settings, err := u.settingsRepo.Load(ctx)
	if err != nil {
		return WhatsAppMessage{}, err
	}
	return RenderServiceMessage(*svc, settings, u.now())
}

// RenderServiceMessage substitutes the service template. The detail block
// lists labor line by line ("description: $amount"), with the legacy base
// labor line when the service was never itemized, then parts/supplies.
func RenderServiceMessage(s entities.Service, settings entities.AppSettings, now time.Time) (WhatsAppMessage, error) {
	phone := digitsOnly(s.Phone)
	if phone == "" {
		return WhatsAppMessage{}, ErrNoPhone
	}

	var detail strings.Builder
	detail.WriteString("👷 *Mano de Obra:*\n")
	if len(s.LaborItems) > 0 {
		for _, it := range s.LaborItems {
			detail.WriteString(it.Description + ": $" + entities.FormatCLP(it.Amount) + "\n")
		}
	} else {
		detail.WriteString("Mano de Obra Base: $" + entities.FormatCLP(s.Price) + "\n")
	}
	if len(s.Expenses) > 0 {
		detail.WriteString("\n🔩 *Repuestos / Insumos:*\n")
		for _, it := range s.Expenses {
			detail.WriteString(it.Description + ": $" + entities.FormatCLP(it.Amount) + "\n")
		}
	}

	total := s.Total()
	vehicleInfo := "🚗 " + s.Brand + " " + s.Model +
		"\n🔢 Patente: " + s.Plate +
		"\n📅 Fecha: " + entities.FormatDisplayDate(s.EntryDate)

	msg := settings.WhatsappServiceTemplate
	repl := strings.NewReplacer(
		"{taller}", settings.CompanyName,
		"{cliente}", s.ClientName,
		"{marca_modelo}", s.Brand+" "+s.Model,
		"{patente}", s.Plate,
		"{fecha}", now.Local().Format("02/01/2006"),
		"{vehiculo}", vehicleInfo,
		"{estado}", strings.ToUpper(s.Status.Label()),
		"{total}", entities.FormatCLP(total),
		"{abono}", entities.FormatCLP(s.Advance),
		"{saldo}", entities.FormatCLP(total-s.Advance),
		"{detalle}", detail.String(),
	)
	text := repl.Replace(msg)
	return WhatsAppMessage{Text: text, Phone: phone, URL: waLink(phone, text)}, nil
}

func (u *WhatsAppUseCase) QuoteMessage(ctx context.Context, quoteID string) (WhatsAppMessage, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return WhatsAppMessage{}, ErrInvalidQuoteID
	}
	quotes, err := u.quoteRepo.Load(ctx)
	if err != nil {
		return WhatsAppMessage{}, err
	}
	var q *entities.Quote
	for i := range quotes {
		if quotes[i].ID == quoteID {
			q = &quotes[i]
			break
		}
	}
	if q == nil {
		return WhatsAppMessage{}, ErrQuoteNotFound
	}
	settings, err := u.settingsRepo.Load(ctx)
	if err != nil {
		return WhatsAppMessage{}, err
	}
	return RenderQuoteMessage(*q, settings)
}

// RenderQuoteMessage substitutes the quote template. Labor lines carry the
// quantity prefix; the parts section prefers the split expense list and
// falls back to the legacy item list.
func RenderQuoteMessage(q entities.Quote, settings entities.AppSettings) (WhatsAppMessage, error) {
	phone := digitsOnly(q.Phone)
	if phone == "" {
		return WhatsAppMessage{}, ErrNoPhone
	}

	var detail strings.Builder
	if len(q.LaborItems) > 0 {
		detail.WriteString("🔧 *Mano de Obra:*\n")
		for _, it := range q.LaborItems {
			detail.WriteString("- " + strconv.FormatInt(it.Quantity, 10) + "x " + it.Description + ": $" + entities.FormatCLP(it.LineTotal()) + "\n")
		}
	}
	items := q.ExpenseItems
	if items == nil {
		items = q.Items
	}
	if len(items) > 0 {
		detail.WriteString("\n⚙️ *Repuestos/Insumos:*\n")
		for _, it := range items {
			detail.WriteString("- " + strconv.FormatInt(it.Quantity, 10) + "x " + it.Description + ": $" + entities.FormatCLP(it.LineTotal()) + "\n")
		}
	}

	parts := strings.Fields(q.Vehicle)
	plate := NoPlate
	brandModel := ""
	if len(parts) > 0 {
		plate = parts[len(parts)-1]
		brandModel = strings.Join(parts[:len(parts)-1], " ")
	}
	if brandModel == "" {
		brandModel = q.Vehicle
	}
	vehicleInfo := "🚗 " + brandModel +
		"\n🔢 Patente: " + plate +
		"\n📅 Fecha: " + entities.FormatDisplayDate(q.Date)

	repl := strings.NewReplacer(
		"{id}", strings.ToUpper(q.ID),
		"{taller}", settings.CompanyName,
		"{cliente}", q.ClientName,
		"{vehiculo}", vehicleInfo,
		"{detalle}", detail.String(),
		"{total}", entities.FormatCLP(q.Total),
		"{dias}", strconv.Itoa(q.ValidityDays),
	)
	text := repl.Replace(settings.WhatsappQuoteTemplate)
	return WhatsAppMessage{Text: text, Phone: phone, URL: waLink(phone, text)}, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func waLink(phone, text string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(text)
}
