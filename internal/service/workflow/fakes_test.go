package workflow

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

// memInstances is an in-memory instanceRepo with the same revision contract
// as the postgres repository.
type memInstances struct {
	mu    sync.Mutex
	items map[uuid.UUID]domain.WorkflowInstance

	// transitionErr, when set, is returned before the revision check.
	transitionErr func(inst *domain.WorkflowInstance) error
}

func newMemInstances() *memInstances {
	return &memInstances{items: make(map[uuid.UUID]domain.WorkflowInstance)}
}

func (m *memInstances) Create(ctx context.Context, inst *domain.WorkflowInstance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[inst.ID]; ok {
		return domain.ErrAlreadyExists
	}
	inst.Revision = 0
	m.items[inst.ID] = *inst
	return nil
}

func (m *memInstances) Get(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &inst, nil
}

func (m *memInstances) Transition(ctx context.Context, inst *domain.WorkflowInstance) error {
	if m.transitionErr != nil {
		if err := m.transitionErr(inst); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[inst.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Revision != inst.Revision {
		return domain.ErrConflict
	}
	inst.Revision++
	inst.UpdatedAt = time.Now()
	m.items[inst.ID] = *inst
	return nil
}

func (m *memInstances) ListRunnable(ctx context.Context, staleBefore time.Time, limit int) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uuid.UUID
	for id, inst := range m.items {
		if slices.Contains(domain.RunnableStates, inst.State) && !inst.UpdatedAt.After(staleBefore) {
			ids = append(ids, id)
		}
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (m *memInstances) CountByState(ctx context.Context) (map[domain.InstanceState]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[domain.InstanceState]int)
	for _, inst := range m.items {
		out[inst.State]++
	}
	return out, nil
}

// force overwrites an instance, bypassing the revision check.
func (m *memInstances) force(inst domain.WorkflowInstance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[inst.ID] = inst
}

func (m *memInstances) state(id uuid.UUID) domain.InstanceState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id].State
}

// memLedger is an in-memory ledgerRepo.
type memLedger struct {
	mu       sync.Mutex
	requests map[string]domain.ApprovalRequest
	counters map[string]int

	createErr func(req domain.ApprovalRequest) error
}

func newMemLedger() *memLedger {
	return &memLedger{
		requests: make(map[string]domain.ApprovalRequest),
		counters: make(map[string]int),
	}
}

func (l *memLedger) CreateRequest(ctx context.Context, req domain.ApprovalRequest) error {
	if l.createErr != nil {
		if err := l.createErr(req); err != nil {
			return err
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	key := req.OwnerDomainID + "/" + req.RequestID
	if _, ok := l.requests[key]; ok {
		return domain.ErrTransactionConflict
	}
	l.requests[key] = req
	return nil
}

func (l *memLedger) AddPending(ctx context.Context, owner string, delta int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := l.counters[owner] + delta
	if n < 0 {
		return 0, domain.NewValidationError("pendingCount", "must not be negative")
	}
	l.counters[owner] = n
	return n, nil
}

func (l *memLedger) all() []domain.ApprovalRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.ApprovalRequest, 0, len(l.requests))
	for _, r := range l.requests {
		out = append(out, r)
	}
	return out
}

func (l *memLedger) counter(owner string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counters[owner]
}

// memMappings is an in-memory mappingRepo.
type memMappings struct {
	mu    sync.Mutex
	items map[string]domain.ShareMapping
}

func newMemMappings() *memMappings {
	return &memMappings{items: make(map[string]domain.ShareMapping)}
}

func (m *memMappings) Upsert(ctx context.Context, sm domain.ShareMapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[sm.OwnerDomainID+"/"+sm.ResourceMappingKey] = sm
	return nil
}

func (m *memMappings) status(owner, key string) (domain.ShareStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sm, ok := m.items[owner+"/"+key]
	return sm.Status, ok
}
