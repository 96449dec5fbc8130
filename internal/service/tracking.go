package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/ajar/internal/model"
	"github.com/user/ajar/internal/query"
	"github.com/user/ajar/internal/storage"
)

// OrderInput is the delivery order form.
type OrderInput struct {
	NIM          string
	Nama         string
	Ekspedisi    string
	PaketKode    string
	TanggalKirim string
	Status       string // defaults to Diproses
}

// ListOrders returns the delivery orders matching spec. Without a sort
// directive the newest DO number comes first.
func (s *Service) ListOrders(spec query.Spec) []model.DeliveryOrder {
	if spec.Sort == nil {
		spec.Sort = &query.Sort{Field: "nomorDO", Direction: query.Desc}
	}
	return query.Run(s.orders.ListAll(), s.withLocale(spec))
}

// FindOrder looks up a delivery order by its exact DO number.
func (s *Service) FindOrder(nomorDO string) (model.DeliveryOrder, error) {
	nomorDO = strings.TrimSpace(nomorDO)
	if nomorDO == "" {
		return model.DeliveryOrder{}, &model.ValidationError{Field: "nomorDO", Reason: "is required"}
	}
	return s.orders.Get(nomorDO)
}

// NextOrderNumber returns the DO number a new order created at now would get.
func (s *Service) NextOrderNumber(now time.Time) string {
	return s.orders.NextSequenceID(s.prefix, model.YearPartition(now))
}

// CreateOrder validates the form, numbers the order and stores it with an
// initial journey entry. The package fixes the order's label and total.
func (s *Service) CreateOrder(in OrderInput, now time.Time) (model.DeliveryOrder, error) {
	status := model.OrderProcessing
	if strings.TrimSpace(in.Status) != "" {
		status = in.Status
		if canonical, ok := model.NormalizeStatus(in.Status); ok {
			status = canonical
		}
	}

	d := model.DeliveryOrder{
		NIM:          strings.TrimSpace(in.NIM),
		Nama:         strings.TrimSpace(in.Nama),
		Status:       status,
		Ekspedisi:    strings.TrimSpace(in.Ekspedisi),
		TanggalKirim: strings.TrimSpace(in.TanggalKirim),
		PaketKode:    strings.TrimSpace(in.PaketKode),
	}
	if err := d.Validate(); err != nil {
		return model.DeliveryOrder{}, err
	}

	pkg, err := s.PackageByCode(d.PaketKode)
	if err != nil {
		return model.DeliveryOrder{}, err
	}
	d.Paket = pkg.Label()
	d.Total = pkg.Harga
	d.Perjalanan = []model.JourneyEntry{{
		Waktu:      now.UTC(),
		Keterangan: "DO dibuat dengan status: " + status,
	}}

	// The number is not reserved; retry once if it was taken meanwhile.
	var dup *model.DuplicateKeyError
	for attempt := 0; ; attempt++ {
		d.NomorDO = s.NextOrderNumber(now)
		err = s.orders.CheckInsert(d)
		if err == nil {
			break
		}
		if !errors.As(err, &dup) || attempt > 0 {
			return model.DeliveryOrder{}, err
		}
		s.log.Warn("DO number taken, retrying", zap.String("nomorDO", d.NomorDO))
	}

	if err := s.commit(storage.OpInsert, storage.KindOrder, d, func() error {
		return s.orders.Insert(d)
	}); err != nil {
		return model.DeliveryOrder{}, err
	}

	s.log.Info("Delivery order created",
		zap.String("nomorDO", d.NomorDO),
		zap.String("paket", pkg.Kode),
		zap.String("actor", s.actor))
	return d, nil
}

// UpdateOrderStatus sets a new status and appends a journey entry.
// An empty note records the status change itself.
func (s *Service) UpdateOrderStatus(nomorDO, status, note string, now time.Time) (model.DeliveryOrder, error) {
	d, err := s.FindOrder(nomorDO)
	if err != nil {
		return model.DeliveryOrder{}, err
	}

	canonical, ok := model.NormalizeStatus(status)
	if !ok {
		return model.DeliveryOrder{}, &model.ValidationError{
			Field:  "status",
			Reason: fmt.Sprintf("must be one of: %s", strings.Join(model.OrderStatuses(), ", ")),
		}
	}

	note = strings.TrimSpace(note)
	if note == "" {
		note = "Status diperbarui menjadi: " + canonical
	}
	d.Status = canonical
	d.Perjalanan = append(d.Perjalanan, model.JourneyEntry{Waktu: now.UTC(), Keterangan: note})

	if err := s.orders.CheckUpdate(d.NomorDO, d); err != nil {
		return model.DeliveryOrder{}, err
	}
	if err := s.commit(storage.OpUpdate, storage.KindOrder, d, func() error {
		return s.orders.Update(d.NomorDO, d)
	}); err != nil {
		return model.DeliveryOrder{}, err
	}

	s.log.Info("Delivery order status updated",
		zap.String("nomorDO", d.NomorDO),
		zap.String("status", canonical),
		zap.String("actor", s.actor))
	return d, nil
}
