// Package reconcile consolidates per-document records across a batch and
// cross-checks the arithmetic a well-formed bill must satisfy.
package reconcile

import (
	"sort"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// CombineKind deduplicates records of one document kind by employee
// identifier: the longest name and designation seen win, field maps are
// unioned. Continuation rows for the same employee across pages or files
// collapse into one record here.
func CombineKind(sets ...[]entity.NormalizedRecord) map[string]entity.NormalizedRecord {
	out := make(map[string]entity.NormalizedRecord)
	for _, set := range sets {
		for _, rec := range set {
			cur, ok := out[rec.ID]
			if !ok {
				clone := rec
				clone.Fields = make(map[string]float64, len(rec.Fields))
				for k, v := range rec.Fields {
					clone.Fields[k] = v
				}
				out[rec.ID] = clone
				continue
			}
			if len(rec.Name) > len(cur.Name) {
				cur.Name = rec.Name
			}
			if len(rec.Designation) > len(cur.Designation) {
				cur.Designation = rec.Designation
			}
			for k, v := range rec.Fields {
				cur.Fields[k] = v
			}
			out[rec.ID] = cur
		}
	}
	return out
}

// Merge builds one PayrollRecord per distinct identifier across the combined
// earning and deduction sides. The employee identifier is the only join key;
// every other field is best-effort. Output is sorted ascending by identifier
// for determinism.
func Merge(earnings, deductions map[string]entity.NormalizedRecord) []entity.PayrollRecord {
	byID := make(map[string]*entity.PayrollRecord)

	get := func(id string) *entity.PayrollRecord {
		rec, ok := byID[id]
		if !ok {
			rec = &entity.PayrollRecord{
				ID:         id,
				Earnings:   make(map[string]float64),
				Deductions: make(map[string]float64),
			}
			byID[id] = rec
		}
		return rec
	}

	adoptText := func(rec *entity.PayrollRecord, src entity.NormalizedRecord) {
		if len(src.Name) > len(rec.Name) {
			rec.Name = src.Name
		}
		if len(src.Designation) > len(rec.Designation) {
			rec.Designation = src.Designation
		}
	}

	for id, src := range earnings {
		rec := get(id)
		adoptText(rec, src)
		for k, v := range src.Fields {
			rec.Earnings[k] = v
		}
		if g, ok := src.Fields[constants.Gross]; ok {
			rec.Gross = g
		}
	}

	for id, src := range deductions {
		rec := get(id)
		adoptText(rec, src)
		for k, v := range src.Fields {
			if _, reserved := constants.ReservedDeductionKeys[k]; reserved {
				continue
			}
			rec.Deductions[k] = v
		}
		if td, ok := src.Fields[constants.TotalDeductions]; ok {
			rec.TotalDed = td
		}
		if np, ok := src.Fields[constants.NetPay]; ok {
			rec.NetPay = np
		}
	}

	out := make([]entity.PayrollRecord, 0, len(byID))
	for _, rec := range byID {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
