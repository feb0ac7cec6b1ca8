package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"taller_manager/internal/domain/entities"
	"taller_manager/internal/usecase/interfaces"
)

var (
	ErrInvalidTrendMode     = errors.New("invalid trend mode")
	ErrInvalidMovementKind  = errors.New("invalid movement kind")
	ErrInvalidTrendSelector = errors.New("invalid trend year/month selector")
)

// IncomeSource tags how an income event came to exist: recorded events are
// copied verbatim from a service's payment list, derived events are
// synthesized from the legacy advance/price fields of services that predate
// payment tracking. The distinction is internal; both shapes report the same.

type IncomeSource string

const (
	IncomeSourceRecorded IncomeSource = "recorded"
	IncomeSourceDerived  IncomeSource = "derived"
)

// IncomeEvent is the reporting projection of a cash inflow.
type IncomeEvent struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Amount      int64        `json:"amount"`
	Description string       `json:"description"`
	ClientName  string       `json:"clientName,omitempty"`
	Brand       string       `json:"brand,omitempty"`
	Model       string       `json:"model,omitempty"`
	Source      IncomeSource `json:"-"`
}

// TrendMode selects the chart window.

type TrendMode string

const (
	TrendLast6Months TrendMode = "last_6_months"
	TrendYear        TrendMode = "year"
	TrendMonth       TrendMode = "month"
)

// TrendPoint is one chart bucket: a calendar day or a month, depending on
// the mode. Points are returned sorted by their chronological key.
type TrendPoint struct {
	Label   string `json:"date"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`

	sortKey int64
}

// MovementFilter selects the drill-down window, independent of the chart.

type MovementFilter string

const (
	MovementWeek          MovementFilter = "week"
	MovementMonth         MovementFilter = "month"
	MovementAll           MovementFilter = "all"
	MovementSpecificMonth MovementFilter = "specific-month"
)

// MovementKind selects which record stream the drill-down reads.

type MovementKind string

const (
	MovementIncome MovementKind = "income"
	MovementCosts  MovementKind = "costs"
)

// Movement is one drill-down row; income rows carry the vehicle fields.
type Movement struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	DisplayDate string `json:"displayDate"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ClientName  string `json:"clientName,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
}

// MovementsResult is the filtered drill-down list plus its sum.
type MovementsResult struct {
	Items []Movement `json:"items"`
	Total int64      `json:"total"`
}

// Summary is the dashboard header block.
type Summary struct {
	TotalIncome       int64        `json:"totalIncome"`
	TotalCosts        int64        `json:"totalCosts"`
	ActiveClients     int          `json:"activeClients"`
	CompletedServices int          `json:"completedServices"`
	TopBrands         []BrandCount `json:"topBrands"`
}

// BrandCount ranks a vehicle brand by how many services it appears on.
type BrandCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Rank  int    `json:"rank"`
}

var shortMonthNames = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// IReportUseCase turns the service and cost collections into chart series
// and drill-down lists.

type IReportUseCase interface {
	IncomeEvents(ctx context.Context) ([]IncomeEvent, error)
	Trend(ctx context.Context, mode TrendMode, year int, month time.Month) ([]TrendPoint, error)
	Movements(ctx context.Context, kind MovementKind, filter MovementFilter, year int, month time.Month) (MovementsResult, error)
	Summary(ctx context.Context) (Summary, error)
}

type ReportUseCase struct {
	serviceRepo interfaces.IServiceRepository
	costRepo    interfaces.ICostRepository
	now         func() time.Time
}

var _ IReportUseCase = (*ReportUseCase)(nil)

func NewReportUseCase(serviceRepo interfaces.IServiceRepository, costRepo interfaces.ICostRepository) *ReportUseCase {
	return &ReportUseCase{serviceRepo: serviceRepo, costRepo: costRepo, now: time.Now}
}

func (u *ReportUseCase) IncomeEvents(ctx context.Context) ([]IncomeEvent, error) {
	services, err := u.serviceRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return DeriveIncomeEvents(services), nil
}

// DeriveIncomeEvents flattens services into individual income events.
//
// A non-empty payment list is authoritative: one recorded event per entry,
// each on its own date, regardless of service status. Legacy services fall
// back to synthesis: the advance (if any) dated at the entry date, and, only
// once completed, the outstanding balance. Legacy final events reuse the
// entry date because completion was never tracked for those records; keep it
// that way, re-dating them would rewrite historical report totals.
func DeriveIncomeEvents(services []entities.Service) []IncomeEvent {
	events := make([]IncomeEvent, 0, len(services))
	for _, s := range services {
		if len(s.Payments) > 0 {
			for _, p := range s.Payments {
				events = append(events, IncomeEvent{
					ID:          p.ID,
					Date:        p.Date,
					Amount:      p.Amount,
					Description: p.Description,
					ClientName:  s.ClientName,
					Brand:       s.Brand,
					Model:       s.Model,
					Source:      IncomeSourceRecorded,
				})
			}
			continue
		}

		if s.Advance > 0 {
			events = append(events, IncomeEvent{
				ID:          s.ID + "-advance",
				Date:        s.EntryDate,
				Amount:      s.Advance,
				Description: "Adelanto " + s.Plate,
				ClientName:  s.ClientName,
				Brand:       s.Brand,
				Model:       s.Model,
				Source:      IncomeSourceDerived,
			})
		}
		if s.Status == entities.ServiceStatusCompleted {
			if balance := s.Total() - s.Advance; balance > 0 {
				events = append(events, IncomeEvent{
					ID:          s.ID + "-final",
					Date:        s.EntryDate,
					Amount:      balance,
					Description: "Saldo Final " + s.Plate,
					ClientName:  s.ClientName,
					Brand:       s.Brand,
					Model:       s.Model,
					Source:      IncomeSourceDerived,
				})
			}
		}
	}
	return events
}

func (u *ReportUseCase) Trend(ctx context.Context, mode TrendMode, year int, month time.Month) ([]TrendPoint, error) {
	services, err := u.serviceRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	costs, err := u.costRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTrend(DeriveIncomeEvents(services), costs, mode, year, month, u.now())
}

// BuildTrend buckets income events and costs into the chart series for the
// selected window. Day granularity for last_6_months and month modes, month
// granularity for year mode; year mode pre-creates all 12 buckets so the
// series is always contiguous.
func BuildTrend(events []IncomeEvent, costs []entities.Cost, mode TrendMode, year int, month time.Month, now time.Time) ([]TrendPoint, error) {
	var start, end time.Time
	byMonth := false

	switch mode {
	case TrendLast6Months:
		start = time.Date(now.Year(), now.Month()-5, 1, 0, 0, 0, 0, time.Local)
		end = time.Date(now.Year(), now.Month()+1, 0, 23, 59, 59, 999_000_000, time.Local)
	case TrendYear:
		if year <= 0 {
			return nil, ErrInvalidTrendSelector
		}
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		end = time.Date(year, time.December, 31, 23, 59, 59, 0, time.Local)
		byMonth = true
	case TrendMonth:
		if year <= 0 || month < time.January || month > time.December {
			return nil, ErrInvalidTrendSelector
		}
		start = time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		end = time.Date(year, month+1, 0, 23, 59, 59, 999_000_000, time.Local)
	default:
		return nil, ErrInvalidTrendMode
	}

	buckets := map[int64]*TrendPoint{}
	if byMonth {
		for i := 0; i < 12; i++ {
			buckets[int64(i)] = &TrendPoint{Label: shortMonthNames[i], sortKey: int64(i)}
		}
	}

	add := func(dateStr string, amount int64, income bool) {
		t, ok := entities.ParseRecordDate(dateStr)
		if !ok {
			return
		}
		if t.Before(start) || t.After(end) {
			return
		}
		lt := t.Local()
		var key int64
		var label string
		if byMonth {
			key = int64(lt.Month() - 1)
			label = shortMonthNames[key]
		} else {
			day := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.Local)
			key = day.Unix()
			label = day.Format("02/01")
		}
		b, ok := buckets[key]
		if !ok {
			b = &TrendPoint{Label: label, sortKey: key}
			buckets[key] = b
		}
		if income {
			b.Income += amount
		} else {
			b.Expense += amount
		}
	}

	for _, e := range events {
		add(e.Date, e.Amount, true)
	}
	for _, c := range costs {
		add(c.Date, c.Amount, false)
	}

	points := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, *b)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].sortKey < points[j].sortKey })
	return points, nil
}

func (u *ReportUseCase) Movements(ctx context.Context, kind MovementKind, filter MovementFilter, year int, month time.Month) (MovementsResult, error) {
	switch kind {
	case MovementIncome:
		services, err := u.serviceRepo.Load(ctx)
		if err != nil {
			return MovementsResult{}, err
		}
		events := DeriveIncomeEvents(services)
		rows := make([]Movement, 0, len(events))
		for _, e := range events {
			rows = append(rows, Movement{
				ID: e.ID, Date: e.Date, Amount: e.Amount, Description: e.Description,
				ClientName: e.ClientName, Brand: e.Brand, Model: e.Model,
			})
		}
		return filterMovements(rows, filter, year, month, u.now())
	case MovementCosts:
		costs, err := u.costRepo.Load(ctx)
		if err != nil {
			return MovementsResult{}, err
		}
		rows := make([]Movement, 0, len(costs))
		for _, c := range costs {
			rows = append(rows, Movement{ID: c.ID, Date: c.Date, Amount: c.Amount, Description: c.Description})
		}
		return filterMovements(rows, filter, year, month, u.now())
	default:
		return MovementsResult{}, ErrInvalidMovementKind
	}
}

// filterMovements applies the drill-down window. Every record date is
// normalized to local noon of its own day before comparison, so bare
// calendar dates and instants land on the same side of the boundary.
func filterMovements(rows []Movement, filter MovementFilter, year int, month time.Month, now time.Time) (MovementsResult, error) {
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999_000_000, time.Local)
	weekAgo := endOfToday.AddDate(0, 0, -7)

	keep := func(t time.Time) bool {
		d := entities.NormalizeToNoon(t)
		switch filter {
		case MovementAll:
			return true
		case MovementWeek:
			return !d.Before(weekAgo) && !d.After(endOfToday)
		case MovementMonth:
			return d.Month() == now.Month() && d.Year() == now.Year()
		case MovementSpecificMonth:
			return d.Month() == month && d.Year() == year
		}
		return false
	}
	if filter != MovementAll && filter != MovementWeek && filter != MovementMonth && filter != MovementSpecificMonth {
		return MovementsResult{}, ErrInvalidMovementKind
	}
	if filter == MovementSpecificMonth && (year <= 0 || month < time.January || month > time.December) {
		return MovementsResult{}, ErrInvalidTrendSelector
	}

	type dated struct {
		row Movement
		t   time.Time
	}
	matched := make([]dated, 0, len(rows))
	var total int64
	for _, r := range rows {
		t, ok := entities.ParseRecordDate(r.Date)
		if !ok || !keep(t) {
			continue
		}
		r.DisplayDate = entities.FormatDisplayDate(r.Date)
		matched = append(matched, dated{row: r, t: t})
		total += r.Amount
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].t.After(matched[j].t) })

	items := make([]Movement, 0, len(matched))
	for _, m := range matched {
		items = append(items, m.row)
	}
	return MovementsResult{Items: items, Total: total}, nil
}

func (u *ReportUseCase) Summary(ctx context.Context) (Summary, error) {
	services, err := u.serviceRepo.Load(ctx)
	if err != nil {
		return Summary{}, err
	}
	costs, err := u.costRepo.Load(ctx)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, e := range DeriveIncomeEvents(services) {
		sum.TotalIncome += e.Amount
	}
	for _, c := range costs {
		sum.TotalCosts += c.Amount
	}
	sum.ActiveClients = len(services)
	for _, s := range services {
		if s.Status == entities.ServiceStatusCompleted {
			sum.CompletedServices++
		}
	}
	sum.TopBrands = topBrands(services)
	return sum, nil
}

func topBrands(services []entities.Service) []BrandCount {
	counts := map[string]int{}
	for _, s := range services {
		if s.Brand != "" {
			counts[s.Brand]++
		}
	}
	ranked := make([]BrandCount, 0, len(counts))
	for name, n := range counts {
		ranked = append(ranked, BrandCount{Name: name, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
