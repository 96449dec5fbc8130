// Package service wires the record stores to the data source, the journal
// and the SQL mirror. Every command gets its Service passed in explicitly.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/user/ajar/internal/model"
	"github.com/user/ajar/internal/query"
	"github.com/user/ajar/internal/storage"
	"github.com/user/ajar/internal/store"
)

// NotFoundTitle is returned by CourseTitle for unknown course codes.
const NotFoundTitle = "Tidak ditemukan"

// Options configures a Service.
type Options struct {
	// Storage receives journal entries and mirrors. Nil keeps everything in memory.
	Storage     *storage.Store
	OrderPrefix string
	Locale      language.Tag
	Actor       string
	Logger      *zap.Logger
}

// Service owns the stock and delivery order stores and the lookup lists.
type Service struct {
	stocks *store.Store[model.Stock]
	orders *store.Store[model.DeliveryOrder]

	packages   []model.Package
	regions    []string
	categories []string
	users      []model.User

	storage *storage.Store
	prefix  string
	locale  language.Tag
	actor   string
	log     *zap.Logger
}

// New seeds the stores from snap and replays the journal on top.
func New(snap *storage.Snapshot, opts Options) (*Service, error) {
	if snap == nil {
		snap = &storage.Snapshot{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.OrderPrefix == "" {
		opts.OrderPrefix = model.OrderPrefix
	}
	if opts.Locale == language.Und {
		opts.Locale = query.DefaultLocale
	}

	stocks, err := store.New(snap.Stok...)
	if err != nil {
		return nil, fmt.Errorf("failed to seed stock: %w", err)
	}
	orders, err := store.New(snap.Tracking...)
	if err != nil {
		return nil, fmt.Errorf("failed to seed tracking: %w", err)
	}

	s := &Service{
		stocks:     stocks,
		orders:     orders,
		packages:   append([]model.Package(nil), snap.Paket...),
		regions:    append([]string(nil), snap.UpbjjList...),
		categories: append([]string(nil), snap.KategoriList...),
		users:      append([]model.User(nil), snap.Pengguna...),
		storage:    opts.Storage,
		prefix:     opts.OrderPrefix,
		locale:     opts.Locale,
		actor:      opts.Actor,
		log:        opts.Logger,
	}

	if err := s.replay(); err != nil {
		return nil, err
	}

	s.log.Debug("Service ready",
		zap.Int("stock", stocks.Len()),
		zap.Int("orders", orders.Len()),
		zap.Int("packages", len(s.packages)))
	return s, nil
}

// replay applies journaled mutations in order.
func (s *Service) replay() error {
	if s.storage == nil {
		return nil
	}
	entries, err := s.storage.Entries()
	if err != nil {
		return fmt.Errorf("failed to replay journal: %w", err)
	}

	for _, e := range entries {
		switch e.Kind {
		case storage.KindStock:
			var rec model.Stock
			if err := json.Unmarshal(e.Payload, &rec); err != nil {
				return fmt.Errorf("failed to decode journaled stock %s: %w", e.Key, err)
			}
			if _, err := s.stocks.Upsert(rec); err != nil {
				return fmt.Errorf("failed to replay stock %s: %w", e.Key, err)
			}
		case storage.KindOrder:
			var rec model.DeliveryOrder
			if err := json.Unmarshal(e.Payload, &rec); err != nil {
				return fmt.Errorf("failed to decode journaled order %s: %w", e.Key, err)
			}
			if _, err := s.orders.Upsert(rec); err != nil {
				return fmt.Errorf("failed to replay order %s: %w", e.Key, err)
			}
		default:
			return fmt.Errorf("unknown journal entry kind %q for %s", e.Kind, e.Key)
		}
	}

	if len(entries) > 0 {
		s.log.Debug("Journal replayed", zap.Int("entries", len(entries)))
	}
	return nil
}

// commit journals a mutation of rec and then runs apply against the
// in-memory store. Callers check apply's preconditions first, so a
// journal failure leaves the store untouched.
func (s *Service) commit(op, kind string, rec model.Record, apply func() error) error {
	entry, err := storage.NewEntry(op, kind, rec, s.actor)
	if err != nil {
		return fmt.Errorf("failed to journal %s %s: %w", kind, rec.Key(), err)
	}
	if s.storage != nil {
		if err := s.storage.Append(entry); err != nil {
			return fmt.Errorf("failed to journal %s %s: %w", kind, rec.Key(), err)
		}
	}
	return apply()
}

// Actor returns the name recorded on journal entries.
func (s *Service) Actor() string {
	return s.actor
}

// Users returns the accounts allowed to log in.
func (s *Service) Users() []model.User {
	return append([]model.User(nil), s.users...)
}

// Regions returns the UPBJJ lookup list.
func (s *Service) Regions() []string {
	return append([]string(nil), s.regions...)
}

// Categories returns the kategori lookup list.
func (s *Service) Categories() []string {
	return append([]string(nil), s.categories...)
}

// Packages returns all delivery packages.
func (s *Service) Packages() []model.Package {
	out := make([]model.Package, len(s.packages))
	for i, p := range s.packages {
		p.Isi = append([]string(nil), p.Isi...)
		out[i] = p
	}
	return out
}

// PackageByCode looks up a package by its code.
func (s *Service) PackageByCode(kode string) (model.Package, error) {
	kode = strings.TrimSpace(kode)
	for _, p := range s.packages {
		if p.Kode == kode {
			p.Isi = append([]string(nil), p.Isi...)
			return p, nil
		}
	}
	return model.Package{}, fmt.Errorf("%w: %s", model.ErrUnknownPackage, kode)
}

// CourseTitle returns the judul of a course code, or NotFoundTitle.
func (s *Service) CourseTitle(kode string) string {
	rec, err := s.stocks.Get(kode)
	if err != nil {
		return NotFoundTitle
	}
	return rec.Judul
}

// Snapshot returns the current state as a data source document.
func (s *Service) Snapshot() *storage.Snapshot {
	return &storage.Snapshot{
		Stok:         s.stocks.ListAll(),
		Paket:        s.Packages(),
		Tracking:     storage.TrackingList(s.orders.ListAll()),
		UpbjjList:    s.Regions(),
		KategoriList: s.Categories(),
		Pengguna:     s.Users(),
	}
}

// SyncMirror rebuilds the SQL mirror from the current state.
func (s *Service) SyncMirror() error {
	if s.storage == nil {
		return errors.New("no state directory configured")
	}
	if err := s.storage.SyncMirror(s.stocks.ListAll(), s.orders.ListAll()); err != nil {
		return err
	}
	s.log.Debug("SQL mirror rebuilt")
	return nil
}

// withLocale fills in the service locale when spec has none.
func (s *Service) withLocale(spec query.Spec) query.Spec {
	if spec.Locale == language.Und {
		spec.Locale = s.locale
	}
	return spec
}
