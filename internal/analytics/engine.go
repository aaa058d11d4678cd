package analytics

// engine.go computes the four aggregation views. All of them are zero-safe:
// an empty or all-zero record set yields empty groupings and 0% shares, never
// a division by zero.

import (
	"math"
	"sort"

	"github.com/statops/permitdesk/internal/inventory"
)

// TypeCounts tallies license-type categories for one department.
type TypeCounts struct {
	Department  string                                `json:"department"`  // grouping key: full department name
	DisplayName string                                `json:"displayName"` // "Department of " prefix stripped
	Counts      map[inventory.LicenseTypeCategory]int `json:"counts"`
	Total       int                                   `json:"total"`
}

// ChannelShare is one access channel's share of total application volume for
// the selected fiscal year.
type ChannelShare struct {
	Channel inventory.AccessChannel `json:"channel"`
	Volume  int                     `json:"volume"`
	Percent float64                 `json:"percent"` // share of grand total, one decimal
}

// DepartmentShare is one department's summed volume or revenue for the
// selected fiscal year, with its share of the grand total.
type DepartmentShare struct {
	Department  string  `json:"department"`
	DisplayName string  `json:"displayName"`
	Value       float64 `json:"value"`
	Percent     float64 `json:"percent"`
}

// ProcessingTime is one department's volume-weighted average processing time
// for the selected fiscal year.
type ProcessingTime struct {
	Department   string  `json:"department"`
	DisplayName  string  `json:"displayName"`
	AverageDays  float64 `json:"averageDays"`
	Applications int     `json:"applications"` // total volume contributing to the weight
}

// ProcessingTimeSort selects the ordering of processing-time results.
type ProcessingTimeSort int

const (
	// SortByAverage orders by average days descending (time-analysis views).
	SortByAverage ProcessingTimeSort = iota
	// SortByVolume orders by contributing applications descending
	// (volume-analysis views).
	SortByVolume
)

// TypeCountsByDepartment groups filtered records by department and tallies
// category occurrences. Results are ordered by total count descending, then
// by department name for a stable output.
func TypeCountsByDepartment(records []*inventory.Record, f Filter) []TypeCounts {
	byDept := make(map[string]*TypeCounts)

	for _, rec := range Apply(records, f) {
		tc, ok := byDept[rec.DepartmentName]
		if !ok {
			tc = &TypeCounts{
				Department:  rec.DepartmentName,
				DisplayName: inventory.DisplayName(rec.DepartmentName),
				Counts:      make(map[inventory.LicenseTypeCategory]int),
			}
			byDept[rec.DepartmentName] = tc
		}
		tc.Counts[rec.Category]++
		tc.Total++
	}

	out := make([]TypeCounts, 0, len(byDept))
	for _, tc := range byDept {
		out = append(out, *tc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Department < out[j].Department
	})
	return out
}

// ChannelDistribution sums application volume per access channel for the
// selected fiscal year. Records with zero volume for that year contribute to
// no bucket; they are excluded rather than counted as zero-weight Unknown.
func ChannelDistribution(records []*inventory.Record, year int, f Filter) []ChannelShare {
	volumes := make(map[inventory.AccessChannel]int)
	grand := 0

	for _, rec := range Apply(records, f) {
		v := rec.Figures(year).Volume
		if v == 0 {
			continue
		}
		volumes[rec.Channel] += v
		grand += v
	}

	out := make([]ChannelShare, 0, len(volumes))
	for _, ch := range []inventory.AccessChannel{
		inventory.ChannelOnline, inventory.ChannelManual,
		inventory.ChannelBoth, inventory.ChannelUnknown,
	} {
		v, ok := volumes[ch]
		if !ok {
			continue
		}
		out = append(out, ChannelShare{
			Channel: ch,
			Volume:  v,
			Percent: percentOf(float64(v), float64(grand)),
		})
	}
	return out
}

// ProcessingTimeByDepartment computes each department's volume-weighted
// average processing days for the selected fiscal year:
//
//	sum(processing_time * volume) / sum(volume)
//
// over records with volume > 0 for that year. Departments with no qualifying
// volume are omitted rather than reported as a 0/0 average.
func ProcessingTimeByDepartment(records []*inventory.Record, year int, f Filter, order ProcessingTimeSort) []ProcessingTime {
	type acc struct {
		weighted float64
		volume   int
	}
	byDept := make(map[string]*acc)

	for _, rec := range Apply(records, f) {
		fig := rec.Figures(year)
		if fig.Volume <= 0 {
			continue
		}
		a, ok := byDept[rec.DepartmentName]
		if !ok {
			a = &acc{}
			byDept[rec.DepartmentName] = a
		}
		a.weighted += fig.ProcessingTime * float64(fig.Volume)
		a.volume += fig.Volume
	}

	out := make([]ProcessingTime, 0, len(byDept))
	for dept, a := range byDept {
		out = append(out, ProcessingTime{
			Department:   dept,
			DisplayName:  inventory.DisplayName(dept),
			AverageDays:  round1(a.weighted / float64(a.volume)),
			Applications: a.volume,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		switch order {
		case SortByVolume:
			if out[i].Applications != out[j].Applications {
				return out[i].Applications > out[j].Applications
			}
		default:
			if out[i].AverageDays != out[j].AverageDays {
				return out[i].AverageDays > out[j].AverageDays
			}
		}
		return out[i].Department < out[j].Department
	})
	return out
}

// ApplicationsByDepartment sums application volume per department for the
// selected fiscal year, paired with each department's share of the grand
// total. Departments summing to zero are omitted.
func ApplicationsByDepartment(records []*inventory.Record, year int, f Filter) []DepartmentShare {
	return sharesByDepartment(records, f, func(rec *inventory.Record) float64 {
		return float64(rec.Figures(year).Volume)
	})
}

// RevenueByDepartment sums revenue per department for the selected fiscal
// year, paired with each department's share of the grand total. Departments
// summing to zero are omitted.
func RevenueByDepartment(records []*inventory.Record, year int, f Filter) []DepartmentShare {
	return sharesByDepartment(records, f, func(rec *inventory.Record) float64 {
		return rec.Figures(year).Revenue
	})
}

func sharesByDepartment(records []*inventory.Record, f Filter, value func(*inventory.Record) float64) []DepartmentShare {
	sums := make(map[string]float64)
	grand := 0.0

	for _, rec := range Apply(records, f) {
		v := value(rec)
		if v == 0 {
			continue
		}
		sums[rec.DepartmentName] += v
		grand += v
	}

	out := make([]DepartmentShare, 0, len(sums))
	for dept, sum := range sums {
		if sum == 0 {
			continue
		}
		out = append(out, DepartmentShare{
			Department:  dept,
			DisplayName: inventory.DisplayName(dept),
			Value:       sum,
			Percent:     percentOf(sum, grand),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Department < out[j].Department
	})
	return out
}

// percentOf returns part/total as a percentage rounded to one decimal,
// or 0 when the total is zero.
func percentOf(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round1(part / total * 100)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
