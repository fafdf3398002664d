package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"adra/internal/utils"
	"adra/pkg/types"
)

// In-memory stores back tests and the --in-memory dev server. They hold
// records in insertion order so listing matches the Postgres created_at
// ordering, and guard every operation with a mutex so the uniqueness and
// transition guarantees hold under concurrency.

type MemoryBeneficiaryStore struct {
	mu      sync.RWMutex
	order   []string
	records map[string]types.Beneficiary
	emails  map[string]string
	phones  map[string]string
}

func NewMemoryBeneficiaryStore() *MemoryBeneficiaryStore {
	return &MemoryBeneficiaryStore{
		records: make(map[string]types.Beneficiary),
		emails:  make(map[string]string),
		phones:  make(map[string]string),
	}
}

func (s *MemoryBeneficiaryStore) Create(_ context.Context, b *types.Beneficiary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emailKey := strings.ToLower(b.Email)
	if _, taken := s.emails[emailKey]; taken {
		return types.ErrDuplicateContact
	}
	if _, taken := s.phones[b.Phone]; taken {
		return types.ErrDuplicateContact
	}

	now := time.Now()
	b.ID = utils.NanoID()
	b.Status = types.BeneficiaryStatusPending
	b.CreatedAt = now
	b.UpdatedAt = now

	s.records[b.ID] = *b
	s.order = append(s.order, b.ID)
	s.emails[emailKey] = b.ID
	s.phones[b.Phone] = b.ID
	return nil
}

func (s *MemoryBeneficiaryStore) GetByID(_ context.Context, id string) (*types.Beneficiary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.records[id]; ok {
		return &b, nil
	}
	return nil, types.ErrBeneficiaryNotFound
}

func (s *MemoryBeneficiaryStore) List(_ context.Context, filter types.ListFilter) ([]*types.Beneficiary, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*types.Beneficiary
	for _, id := range s.order {
		b := s.records[id]
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		if !searchMatch(filter.Search, b.Name, b.Email, b.Phone) {
			continue
		}
		matched = append(matched, &b)
	}

	return paginate(matched, filter), len(matched), nil
}

func (s *MemoryBeneficiaryStore) UpdateStatus(_ context.Context, id string, from []types.BeneficiaryStatus, to types.BeneficiaryStatus, reason *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.records[id]
	if !ok {
		return types.ErrBeneficiaryNotFound
	}

	allowed := false
	for _, f := range from {
		if b.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return types.ErrInvalidState
	}

	b.Status = to
	b.RejectionReason = reason
	b.UpdatedAt = time.Now()
	s.records[id] = b
	return nil
}

type MemoryDonationStore struct {
	mu      sync.RWMutex
	order   []string
	records map[string]types.Donation
}

func NewMemoryDonationStore() *MemoryDonationStore {
	return &MemoryDonationStore{records: make(map[string]types.Donation)}
}

func (s *MemoryDonationStore) Create(_ context.Context, d *types.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	d.ID = utils.NanoID()
	d.Status = types.DonationStatusPending
	d.CreatedAt = now
	d.UpdatedAt = now

	s.records[d.ID] = *d
	s.order = append(s.order, d.ID)
	return nil
}

func (s *MemoryDonationStore) GetByID(_ context.Context, id string) (*types.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.records[id]; ok {
		return &d, nil
	}
	return nil, types.ErrDonationNotFound
}

func (s *MemoryDonationStore) List(_ context.Context, filter types.ListFilter) ([]*types.Donation, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*types.Donation
	for _, id := range s.order {
		d := s.records[id]
		if filter.Status != "" && string(d.Status) != filter.Status {
			continue
		}
		if !searchMatch(filter.Search, d.DonorName) {
			continue
		}
		matched = append(matched, &d)
	}

	return paginate(matched, filter), len(matched), nil
}

func (s *MemoryDonationStore) UpdateStatus(_ context.Context, id string, status types.DonationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.records[id]
	if !ok {
		return types.ErrDonationNotFound
	}

	d.Status = status
	d.UpdatedAt = time.Now()
	s.records[id] = d
	return nil
}

type MemoryRequestStore struct {
	mu      sync.RWMutex
	order   []string
	records map[string]types.Request
}

func NewMemoryRequestStore() *MemoryRequestStore {
	return &MemoryRequestStore{records: make(map[string]types.Request)}
}

func (s *MemoryRequestStore) Create(_ context.Context, r *types.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	r.ID = utils.NanoID()
	r.Status = types.RequestStatusPending
	r.CreatedAt = now
	r.UpdatedAt = now

	s.records[r.ID] = *r
	s.order = append(s.order, r.ID)
	return nil
}

func (s *MemoryRequestStore) GetByID(_ context.Context, id string) (*types.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[id]; ok {
		return &r, nil
	}
	return nil, types.ErrRequestNotFound
}

func (s *MemoryRequestStore) List(_ context.Context, filter types.ListFilter) ([]*types.Request, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*types.Request
	for _, id := range s.order {
		r := s.records[id]
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		if !searchMatch(filter.Search, r.ContactName) {
			continue
		}
		matched = append(matched, &r)
	}

	return paginate(matched, filter), len(matched), nil
}

type MemoryCodeStore struct {
	mu     sync.Mutex
	latest map[string]*types.VerificationCode
	byID   map[string]*types.VerificationCode
}

func NewMemoryCodeStore() *MemoryCodeStore {
	return &MemoryCodeStore{
		latest: make(map[string]*types.VerificationCode),
		byID:   make(map[string]*types.VerificationCode),
	}
}

func (s *MemoryCodeStore) Issue(_ context.Context, code *types.VerificationCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	code.ID = utils.NanoID()
	code.IssuedAt = now

	if prior, ok := s.latest[code.BeneficiaryID]; ok && prior.ConsumedAt == nil && prior.SupersededAt == nil {
		supersededAt := now
		prior.SupersededAt = &supersededAt
	}

	stored := *code
	s.latest[code.BeneficiaryID] = &stored
	s.byID[code.ID] = &stored
	return nil
}

func (s *MemoryCodeStore) Latest(_ context.Context, beneficiaryID string) (*types.VerificationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.latest[beneficiaryID]
	if !ok {
		return nil, types.ErrCodeNotFound
	}

	copied := *code
	return &copied, nil
}

func (s *MemoryCodeStore) Consume(_ context.Context, codeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.byID[codeID]
	if !ok || code.ConsumedAt != nil {
		return types.ErrInvalidCode
	}

	consumedAt := time.Now()
	code.ConsumedAt = &consumedAt
	return nil
}

func searchMatch(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func paginate[T any](items []*T, filter types.ListFilter) []*T {
	if filter.PageSize <= 0 {
		return items
	}

	start := filter.Offset()
	if start >= len(items) {
		return []*T{}
	}

	end := start + filter.PageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}
