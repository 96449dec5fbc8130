package query

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/user/ajar/internal/model"
)

// DefaultLocale is used for text collation when Spec.Locale is unset.
var DefaultLocale = language.Indonesian

// Run returns the records that satisfy spec, in spec order.
//
// The input slice is never modified. Without a sort directive the input
// order is kept; with one, the sort is stable so ties keep input order.
// Malformed parts of the spec degrade to "no constraint".
func Run[T model.Record](records []T, spec Spec) []T {
	search := strings.ToLower(spec.Search)

	result := make([]T, 0, len(records))
	for _, rec := range records {
		if !matchesSearch(rec, search, spec.SearchFields) {
			continue
		}
		if !matchesEquals(rec, spec.Equals) {
			continue
		}
		result = append(result, rec)
	}

	if spec.Sort == nil || spec.Sort.Field == "" {
		return result
	}

	cmp := comparator[T](spec.Sort, spec.Locale)
	slices.SortStableFunc(result, cmp)
	return result
}

// matchesSearch reports whether any search field contains the term.
func matchesSearch(rec model.Record, term string, fields []string) bool {
	if term == "" || len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		v, ok := rec.Field(f)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(model.Text(v)), term) {
			return true
		}
	}
	return false
}

func matchesEquals(rec model.Record, equals []Equal) bool {
	for _, eq := range equals {
		if eq.Field == "" || eq.Value == "" {
			continue
		}
		v, _ := rec.Field(eq.Field)
		if model.Text(v) != eq.Value {
			return false
		}
	}
	return true
}

// comparator builds the sort function for a directive. Pairs of numeric
// values compare numerically; anything else compares as lowercased text
// under the locale's collation.
func comparator[T model.Record](s *Sort, locale language.Tag) func(a, b T) int {
	if locale == language.Und {
		locale = DefaultLocale
	}
	col := collate.New(locale)

	sign := 1
	if s.Direction == Desc {
		sign = -1
	}

	return func(a, b T) int {
		va, _ := a.Field(s.Field)
		vb, _ := b.Field(s.Field)

		na, aNum := model.Number(va)
		nb, bNum := model.Number(vb)
		if aNum && bNum {
			switch {
			case na < nb:
				return -sign
			case na > nb:
				return sign
			}
			return 0
		}

		ta := strings.ToLower(model.Text(va))
		tb := strings.ToLower(model.Text(vb))
		return sign * col.CompareString(ta, tb)
	}
}
