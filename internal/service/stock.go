package service

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/user/ajar/internal/model"
	"github.com/user/ajar/internal/query"
	"github.com/user/ajar/internal/storage"
)

// StockFilter is the filter state of the stock screen.
// The zero value shows every entry in data source order.
type StockFilter struct {
	Search   string // matched against kode and judul
	Kategori string
	Upbjj    string
	Sort     string // "field-direction", e.g. "judul-asc"
}

// Spec converts the filter state into a query.
func (f StockFilter) Spec() query.Spec {
	return query.Spec{
		Search:       f.Search,
		SearchFields: []string{"kode", "judul"},
		Sort:         query.ParseSort(f.Sort),
	}.Where("kategori", f.Kategori).Where("upbjj", f.Upbjj)
}

// ListStock returns the stock entries matching spec.
func (s *Service) ListStock(spec query.Spec) []model.Stock {
	return query.Run(s.stocks.ListAll(), s.withLocale(spec))
}

// GetStock returns one stock entry by course code.
func (s *Service) GetStock(kode string) (model.Stock, error) {
	return s.stocks.Get(kode)
}

// AddStock validates and inserts a new stock entry.
func (s *Service) AddStock(rec model.Stock) error {
	return s.SaveStock(rec, false)
}

// EditStock applies textual field assignments to an existing entry and saves it.
// Assignments are applied in field name order.
func (s *Service) EditStock(kode string, set map[string]string) (model.Stock, error) {
	rec, err := s.stocks.Get(kode)
	if err != nil {
		return model.Stock{}, err
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := rec.SetField(name, set[name]); err != nil {
			return model.Stock{}, err
		}
	}

	if err := s.saveStock(kode, rec, true); err != nil {
		return model.Stock{}, err
	}
	return rec, nil
}

// SaveStock validates rec and inserts it, or replaces the entry with the
// same kode when edit is set.
func (s *Service) SaveStock(rec model.Stock, edit bool) error {
	return s.saveStock(rec.Kode, rec, edit)
}

func (s *Service) saveStock(kode string, rec model.Stock, edit bool) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := checkLookup("kategori", rec.Kategori, s.categories); err != nil {
		return err
	}
	if err := checkLookup("upbjj", rec.Upbjj, s.regions); err != nil {
		return err
	}

	op := storage.OpInsert
	check := func() error { return s.stocks.CheckInsert(rec) }
	apply := func() error { return s.stocks.Insert(rec) }
	if edit {
		op = storage.OpUpdate
		check = func() error { return s.stocks.CheckUpdate(kode, rec) }
		apply = func() error { return s.stocks.Update(kode, rec) }
	}
	if err := check(); err != nil {
		return err
	}
	if err := s.commit(op, storage.KindStock, rec, apply); err != nil {
		return err
	}

	fields := []zap.Field{
		zap.String("kode", rec.Kode),
		zap.String("op", op),
		zap.String("actor", s.actor),
	}
	if w := rec.Warning(); w != "" {
		fields = append(fields, zap.String("warning", w))
	}
	s.log.Info("Stock saved", fields...)
	return nil
}

// checkLookup rejects values missing from a non-empty lookup list.
func checkLookup(field, value string, allowed []string) error {
	if len(allowed) == 0 || slices.Contains(allowed, value) {
		return nil
	}
	return &model.ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}
