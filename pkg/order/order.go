// Package order proposes the sequence position of a new step within a scenario.
//
// The allocator always proposes max(existing)+1, so orders grow monotonically
// unless an author edits them by hand. It is only consulted when the target
// order field is empty; an explicit author value is never overwritten.
package order

import (
	"strings"

	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/ports"
)

// Next returns 1 for an empty sequence, max(orders)+1 otherwise.
// Negative values count as 0.
func Next(orders []int) int {
	highest := 0
	for _, o := range orders {
		if o > highest {
			highest = o
		}
	}
	return highest + 1
}

// Parse reads the leading integer of a field value ("12", " 7 ", "3rd").
// Missing or non-numeric values yield 0.
func Parse(raw string) int {
	s := strings.TrimSpace(raw)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		digits++
		if n > 1<<30 {
			break
		}
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

// NextFromRows computes the next order from the order fields of sibling rows.
// It is the row-level variant: rows not yet persisted are included, no I/O happens.
func NextFromRows(rows []ports.Fields) int {
	orders := make([]int, 0, len(rows))
	for _, r := range rows {
		v, ok := r.Value(domain.FieldOrder)
		if !ok {
			continue
		}
		orders = append(orders, Parse(v))
	}
	return Next(orders)
}
