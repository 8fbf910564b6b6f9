package workorder

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ===============================
// Recurrence
// ===============================

type RecurringType string

const (
	RecurringOnce      RecurringType = "once"
	RecurringMonthly   RecurringType = "monthly"
	RecurringQuarterly RecurringType = "quarterly"
)

// Template is the work-order shape captured at project creation, before
// expansion into dated occurrences.
type Template struct {
	Name          string
	Description   string
	Type          string
	Price         decimal.NullDecimal
	ScheduledDate *time.Time
	RecurringType RecurringType
}

// Occurrence is one concrete dated work order produced from a template.
// Occurrences are independent after creation; editing one never touches
// its siblings.
type Occurrence struct {
	Name          string
	Description   string
	Type          string
	Price         decimal.NullDecimal
	ScheduledDate *time.Time
}

// Expand turns a template into its dated occurrences over the project
// range. MONTHLY yields one per calendar month from projectStart through
// projectEnd inclusive, tagged (Month{N}); QUARTERLY every third month,
// tagged (Q{N}). A recurring template with no project end date collapses
// to a single occurrence rather than an unbounded series; the contractor
// extends the project to generate more.
func Expand(tpl Template, projectStart time.Time, projectEnd *time.Time) []Occurrence {
	switch tpl.RecurringType {
	case RecurringMonthly:
		if projectEnd == nil {
			return []Occurrence{tpl.occurrence("", tpl.ScheduledDate)}
		}
		return tpl.series(projectStart, *projectEnd, 1, "Month")
	case RecurringQuarterly:
		if projectEnd == nil {
			return []Occurrence{tpl.occurrence("", tpl.ScheduledDate)}
		}
		return tpl.series(projectStart, *projectEnd, 3, "Q")
	default:
		return []Occurrence{tpl.occurrence("", tpl.ScheduledDate)}
	}
}

func (tpl Template) series(start, end time.Time, stepMonths int, tag string) []Occurrence {
	var out []Occurrence

	for n, cur := 1, start; !cur.After(end); n, cur = n+1, start.AddDate(0, n*stepMonths, 0) {
		date := cur
		out = append(out, tpl.occurrence(fmt.Sprintf(" (%s%d)", tag, n), &date))
	}

	return out
}

func (tpl Template) occurrence(suffix string, date *time.Time) Occurrence {
	return Occurrence{
		Name:          tpl.Name + suffix,
		Description:   tpl.Description,
		Type:          tpl.Type,
		Price:         tpl.Price,
		ScheduledDate: date,
	}
}

// ===============================
// Grouping tags
// ===============================

var (
	tagSuffix = regexp.MustCompile(`\s*\((?:Q|Month)\d+\)$`)
	tagPrefix = regexp.MustCompile(`^(?:Q|Month)\d+:\s*`)
)

// BaseName strips the recurrence tag from an occurrence name, recovering
// the template name used as the grouping key in billing views. Exact
// inverse of the tags Expand generates; also tolerates the legacy
// "Q{N}: name" prefix form.
func BaseName(name string) string {
	name = strings.TrimSpace(name)
	if s := tagSuffix.ReplaceAllString(name, ""); s != name {
		return s
	}
	return tagPrefix.ReplaceAllString(name, "")
}
