package payroll_test

import (
	"context"
	"errors"
	"sync"

	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/payroll"
)

// fakeStore - хранилище в памяти с уникальностью (contract_id, start_date)
type fakeStore struct {
	mu        sync.Mutex
	nextID    uint
	periods   map[uint]models.PayPeriod
	creates   int
	updates   int
	createErr error
	updateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, periods: make(map[uint]models.PayPeriod)}
}

func (s *fakeStore) CreatePayPeriod(_ context.Context, period *models.PayPeriod) (*models.PayPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creates++
	if s.createErr != nil {
		return nil, s.createErr
	}
	for _, p := range s.periods {
		if p.ContractID == period.ContractID && p.StartDate == period.StartDate {
			return nil, payroll.ErrDuplicatePeriod
		}
	}
	created := *period
	created.ID = s.nextID
	s.nextID++
	s.periods[created.ID] = created
	return &created, nil
}

func (s *fakeStore) UpdatePayPeriod(_ context.Context, id uint, update models.PayPeriodUpdate) (*models.PayPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updates++
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	p, ok := s.periods[id]
	if !ok {
		return nil, payroll.ErrPeriodNotFound
	}
	if update.Totals != nil {
		p.ApplyTotals(*update.Totals)
	}
	if update.IsPaid != nil {
		p.IsPaid = *update.IsPaid
	}
	if update.PaidDate != nil {
		p.PaidDate = *update.PaidDate
	}
	s.periods[id] = p
	return &p, nil
}

// seed сохраняет запись как есть, в обход проверки уникальности
func (s *fakeStore) seed(p models.PayPeriod) models.PayPeriod {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	s.periods[p.ID] = p
	return p
}

func (s *fakeStore) list(contractID uint) []models.PayPeriod {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.PayPeriod
	for id := uint(1); id < s.nextID; id++ {
		if p, ok := s.periods[id]; ok && p.ContractID == contractID {
			out = append(out, p)
		}
	}
	return out
}

var errStoreDown = errors.New("store unavailable")
