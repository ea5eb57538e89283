// Package report turns a date-bounded slice of transactions into
// grouped sums and chart-ready series. All three grouping modes are
// stateless transformations; nothing here touches the ledger.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/filter"
)

// Mode selects how transactions are bucketed.
type Mode int

const (
	Weekly Mode = iota
	Monthly
	Category
)

func (m Mode) String() string {
	switch m {
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Category:
		return "category"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a grouping mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "category":
		return Category, nil
	default:
		return Weekly, fmt.Errorf("unknown report mode %q", s)
	}
}

var (
	// ErrInvalidRange means from is after to. No aggregation work is
	// attempted.
	ErrInvalidRange = errors.New("report range start is after end")
	// ErrNoData means no transaction falls inside [from, to]. Callers
	// surface this to the user and skip rendering.
	ErrNoData = errors.New("no transactions in report range")
)

// Summary holds the totals over the full date-bounded set, computed
// before any grouping and identical across modes.
type Summary struct {
	TotalIncome      core.Money `json:"total_income"`
	TotalExpenses    core.Money `json:"total_expenses"`
	NetChange        core.Money `json:"net_change"`
	TransactionCount int        `json:"transaction_count"`
}

// Group is one weekly or monthly bucket.
type Group struct {
	// Key sorts and identifies the bucket: the week-start date for
	// weekly groups, "YYYY-MM" for monthly groups.
	Key          string             `json:"key"`
	Label        string             `json:"label"`
	Start        core.Date          `json:"start"`
	Income       core.Money         `json:"income"`
	Expenses     core.Money         `json:"expenses"`
	Transactions []core.Transaction `json:"transactions"`
}

// CategoryGroup is one expense-category bucket. Income transactions are
// excluded from category grouping by design.
type CategoryGroup struct {
	Name         string             `json:"name"`
	Total        core.Money         `json:"total"`
	Count        int                `json:"count"`
	Percentage   float64            `json:"percentage"` // of total expenses, one decimal
	Transactions []core.Transaction `json:"transactions"`
}

// ChartData is the series shape handed to the charting collaborator:
// ordered labels plus income/expense series for bar charts, or a single
// Values series for the category pie.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Income   []float64 `json:"income,omitempty"`
	Expenses []float64 `json:"expenses,omitempty"`
	Values   []float64 `json:"values,omitempty"`
}

// Report is the full aggregation result for one request.
type Report struct {
	Mode       Mode            `json:"-"`
	From       core.Date       `json:"from"`
	To         core.Date       `json:"to"`
	Summary    Summary         `json:"summary"`
	Groups     []Group         `json:"groups,omitempty"`
	Categories []CategoryGroup `json:"categories,omitempty"`
	Chart      ChartData       `json:"chart"`
}

// Generate bounds ts to [from, to] (both ends inclusive, calendar
// dates) and aggregates it under the given mode. It returns
// ErrInvalidRange before touching the list when from > to, and
// ErrNoData when the bounded set is empty.
func Generate(ts []core.Transaction, from, to core.Date, mode Mode) (*Report, error) {
	if from.After(to) {
		return nil, ErrInvalidRange
	}
	bounded := filter.Apply(ts, filter.Spec{From: from, To: to})
	if len(bounded) == 0 {
		return nil, ErrNoData
	}

	r := &Report{Mode: mode, From: from, To: to, Summary: summarize(bounded)}
	switch mode {
	case Weekly:
		r.Groups = groupByBucket(bounded, core.Date.StartOfWeek, core.Date.String, weekLabel)
		r.Chart = seriesChart(r.Groups)
	case Monthly:
		r.Groups = groupByBucket(bounded, core.Date.StartOfMonth, core.Date.MonthKey, monthLabel)
		r.Chart = seriesChart(r.Groups)
	case Category:
		r.Categories = groupByCategory(bounded)
		r.Chart = pieChart(r.Categories)
	default:
		return nil, fmt.Errorf("unknown report mode %d", int(mode))
	}
	return r, nil
}

func summarize(ts []core.Transaction) Summary {
	var s Summary
	for _, t := range ts {
		if t.Type == core.Income {
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		} else {
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
	}
	s.NetChange = s.TotalIncome.Sub(s.TotalExpenses)
	s.TransactionCount = len(ts)
	return s
}

func weekLabel(start core.Date) string {
	return fmt.Sprintf("%s - %s", start, start.Add(6))
}

func monthLabel(start core.Date) string {
	return fmt.Sprintf("%s %d", start.Month(), start.Year())
}

// groupByBucket buckets transactions by a calendar date (week start or
// month start) and returns the groups in ascending chronological order.
func groupByBucket(ts []core.Transaction, bucket func(core.Date) core.Date, key, label func(core.Date) string) []Group {
	byStart := make(map[core.Date]*Group)
	for _, t := range ts {
		start := bucket(t.Date)
		g, ok := byStart[start]
		if !ok {
			g = &Group{Key: key(start), Label: label(start), Start: start}
			byStart[start] = g
		}
		if t.Type == core.Income {
			g.Income = g.Income.Add(t.Amount)
		} else {
			g.Expenses = g.Expenses.Add(t.Amount)
		}
		g.Transactions = append(g.Transactions, t)
	}

	groups := make([]Group, 0, len(byStart))
	for _, g := range byStart {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Start.Before(groups[j].Start) })
	return groups
}

// groupByCategory buckets expense transactions by category, with each
// group's share of the total rounded to one decimal. Income is excluded
// from this mode. Groups come out largest-first for stable iteration.
func groupByCategory(ts []core.Transaction) []CategoryGroup {
	byName := make(map[string]*CategoryGroup)
	var totalCents int64
	for _, t := range ts {
		if t.Type != core.Expense {
			continue
		}
		g, ok := byName[t.Category]
		if !ok {
			g = &CategoryGroup{Name: t.Category}
			byName[t.Category] = g
		}
		g.Total = g.Total.Add(t.Amount)
		g.Count++
		g.Transactions = append(g.Transactions, t)
		totalCents += t.Amount.Cents
	}

	groups := make([]CategoryGroup, 0, len(byName))
	for _, g := range byName {
		g.Percentage = percentage(g.Total.Cents, totalCents)
		groups = append(groups, *g)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Total.Cents != groups[j].Total.Cents {
			return groups[i].Total.Cents > groups[j].Total.Cents
		}
		return groups[i].Name < groups[j].Name
	})
	return groups
}

// percentage returns part/total*100 rounded to one decimal, and 0 when
// total is zero rather than dividing by zero.
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		Round(1).
		InexactFloat64()
}

func seriesChart(groups []Group) ChartData {
	c := ChartData{
		Labels:   make([]string, 0, len(groups)),
		Income:   make([]float64, 0, len(groups)),
		Expenses: make([]float64, 0, len(groups)),
	}
	for _, g := range groups {
		c.Labels = append(c.Labels, g.Label)
		c.Income = append(c.Income, g.Income.Float())
		c.Expenses = append(c.Expenses, g.Expenses.Float())
	}
	return c
}

func pieChart(groups []CategoryGroup) ChartData {
	c := ChartData{
		Labels: make([]string, 0, len(groups)),
		Values: make([]float64, 0, len(groups)),
	}
	for _, g := range groups {
		c.Labels = append(c.Labels, g.Name)
		c.Values = append(c.Values, g.Total.Float())
	}
	return c
}
