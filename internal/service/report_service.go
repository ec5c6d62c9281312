package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/d60-Lab/bakery-api/internal/calendar"
	"github.com/d60-Lab/bakery-api/internal/model"
	"github.com/d60-Lab/bakery-api/internal/repository"
)

// Period 销售额统计区间
type Period string

const (
	PeriodAll   Period = ""
	PeriodMonth Period = "month"
)

func (p Period) Valid() bool { return p == PeriodAll || p == PeriodMonth }

// SalesQuery Status 为 nil 表示全部状态
type SalesQuery struct {
	Status *model.Status
	Period Period
}

// DayCount 某业务日的订单数
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// ReportService 聚合统计
type ReportService interface {
	Sales(ctx context.Context, q SalesQuery) (decimal.Decimal, error)
	// LastWeek 上一个自然周（周日至周六）每日订单数，仅列出有订单的日期
	LastWeek(ctx context.Context) ([]DayCount, error)
}

type reportService struct {
	orders repository.OrderRepository
	cal    *calendar.Calendar
	now    func() time.Time
}

// NewReportService now 为 nil 时使用 time.Now
func NewReportService(orders repository.OrderRepository, cal *calendar.Calendar, now func() time.Time) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{orders: orders, cal: cal, now: now}
}

func (s *reportService) Sales(ctx context.Context, q SalesQuery) (decimal.Decimal, error) {
	if !q.Period.Valid() {
		return decimal.Zero, invalidInput("unknown period %q", q.Period)
	}

	filter := repository.SalesFilter{Status: q.Status}
	if q.Period == PeriodMonth {
		w := s.cal.Month(s.now()).UTC()
		filter.From, filter.To = &w.Start, &w.End
	}
	return s.orders.SumTotalAmount(ctx, filter)
}

func (s *reportService) LastWeek(ctx context.Context) ([]DayCount, error) {
	w := s.cal.PreviousWeek(s.now()).UTC()
	times, err := s.orders.CreatedTimesBetween(ctx, w.Start, w.End)
	if err != nil {
		return nil, err
	}

	// times 已按 created_at 升序
	out := []DayCount{}
	for _, t := range times {
		key := s.cal.DateKey(t)
		if n := len(out); n > 0 && out[n-1].Day == key {
			out[n-1].Count++
			continue
		}
		out = append(out, DayCount{Day: key, Count: 1})
	}
	return out, nil
}
