// Package testutils provides test doubles shared across the test suites,
// most importantly an in-memory UnitOfWork whose Do boundary is serialized
// and rolled back on error, mirroring the durable store's contract.
package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MaeliPalharini/bankledger/pkg/domain"
	"github.com/MaeliPalharini/bankledger/pkg/dto"
	"github.com/MaeliPalharini/bankledger/pkg/money"
	"github.com/MaeliPalharini/bankledger/pkg/repository"
)

// MemoryStore is an in-memory stand-in for the durable store. All reads and
// writes go through MemoryUoW.Do, which holds the store lock for the whole
// unit of work and restores a snapshot if the unit fails, so committed state
// is always consistent.
type MemoryStore struct {
	mu           sync.Mutex
	clients      map[string]dto.ClientRead // keyed by CPF
	accounts     map[uuid.UUID]dto.AccountRead
	numbers      map[int64]uuid.UUID
	transactions map[uuid.UUID][]dto.TransactionRead // keyed by account ID
	users        map[uuid.UUID]dto.UserRead
	seq          int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clients:      make(map[string]dto.ClientRead),
		accounts:     make(map[uuid.UUID]dto.AccountRead),
		numbers:      make(map[int64]uuid.UUID),
		transactions: make(map[uuid.UUID][]dto.TransactionRead),
		users:        make(map[uuid.UUID]dto.UserRead),
	}
}

// UoW returns a UnitOfWork backed by the store.
func (s *MemoryStore) UoW() repository.UnitOfWork {
	return &MemoryUoW{store: s}
}

type snapshot struct {
	clients      map[string]dto.ClientRead
	accounts     map[uuid.UUID]dto.AccountRead
	numbers      map[int64]uuid.UUID
	transactions map[uuid.UUID][]dto.TransactionRead
	users        map[uuid.UUID]dto.UserRead
	seq          int64
}

func (s *MemoryStore) snapshot() snapshot {
	snap := snapshot{
		clients:      make(map[string]dto.ClientRead, len(s.clients)),
		accounts:     make(map[uuid.UUID]dto.AccountRead, len(s.accounts)),
		numbers:      make(map[int64]uuid.UUID, len(s.numbers)),
		transactions: make(map[uuid.UUID][]dto.TransactionRead, len(s.transactions)),
		users:        make(map[uuid.UUID]dto.UserRead, len(s.users)),
		seq:          s.seq,
	}
	for k, v := range s.clients {
		snap.clients[k] = v
	}
	for k, v := range s.accounts {
		snap.accounts[k] = v
	}
	for k, v := range s.numbers {
		snap.numbers[k] = v
	}
	for k, v := range s.transactions {
		snap.transactions[k] = append([]dto.TransactionRead(nil), v...)
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	return snap
}

func (s *MemoryStore) restore(snap snapshot) {
	s.clients = snap.clients
	s.accounts = snap.accounts
	s.numbers = snap.numbers
	s.transactions = snap.transactions
	s.users = snap.users
	s.seq = snap.seq
}

// MemoryUoW implements repository.UnitOfWork over a MemoryStore.
type MemoryUoW struct {
	store *MemoryStore
}

// Do executes fn with the store lock held, emulating a serializable store
// transaction. On error every change made inside fn is rolled back.
func (u *MemoryUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	snap := u.store.snapshot()
	if err := fn(u); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

// ClientRepository implements repository.UnitOfWork.
func (u *MemoryUoW) ClientRepository() (repository.ClientRepository, error) {
	return &memClientRepo{store: u.store}, nil
}

// AccountRepository implements repository.UnitOfWork.
func (u *MemoryUoW) AccountRepository() (repository.AccountRepository, error) {
	return &memAccountRepo{store: u.store}, nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *MemoryUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &memTransactionRepo{store: u.store}, nil
}

// UserRepository implements repository.UnitOfWork.
func (u *MemoryUoW) UserRepository() (repository.UserRepository, error) {
	return &memUserRepo{store: u.store}, nil
}

type memClientRepo struct{ store *MemoryStore }

func (r *memClientRepo) Create(_ context.Context, create dto.ClientCreate) error {
	if _, ok := r.store.clients[create.CPF]; ok {
		return domain.ErrAlreadyExists
	}
	r.store.clients[create.CPF] = dto.ClientRead{
		ID:        create.ID,
		CPF:       create.CPF,
		Name:      create.Name,
		BirthDate: create.BirthDate,
		Address:   create.Address,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (r *memClientRepo) GetByCPF(_ context.Context, cpf string) (*dto.ClientRead, error) {
	c, ok := r.store.clients[cpf]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

type memAccountRepo struct{ store *MemoryStore }

func (r *memAccountRepo) Create(_ context.Context, create dto.AccountCreate) error {
	if _, ok := r.store.numbers[create.Number]; ok {
		return domain.ErrAlreadyExists
	}
	found := false
	for _, c := range r.store.clients {
		if c.ID == create.ClientID {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrNotFound
	}
	now := time.Now().UTC()
	r.store.accounts[create.ID] = dto.AccountRead{
		ID:        create.ID,
		Number:    create.Number,
		ClientID:  create.ClientID,
		Balance:   create.Balance,
		Formatted: money.FromCentavos(create.Balance).String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.store.numbers[create.Number] = create.ID
	return nil
}

func (r *memAccountRepo) GetByNumber(_ context.Context, number int64) (*dto.AccountRead, error) {
	id, ok := r.store.numbers[number]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a := r.store.accounts[id]
	return &a, nil
}

func (r *memAccountRepo) GetForClient(ctx context.Context, clientID uuid.UUID) (*dto.AccountRead, error) {
	accts, err := r.ListForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(accts) == 0 {
		return nil, domain.ErrNotFound
	}
	return accts[0], nil
}

func (r *memAccountRepo) GetForClientForUpdate(ctx context.Context, clientID uuid.UUID) (*dto.AccountRead, error) {
	// Do already holds the store lock for the whole unit of work.
	return r.GetForClient(ctx, clientID)
}

func (r *memAccountRepo) ListForClient(_ context.Context, clientID uuid.UUID) ([]*dto.AccountRead, error) {
	var accts []*dto.AccountRead
	for id := range r.store.accounts {
		a := r.store.accounts[id]
		if a.ClientID == clientID {
			accts = append(accts, &a)
		}
	}
	sort.Slice(accts, func(i, j int) bool {
		if accts[i].CreatedAt.Equal(accts[j].CreatedAt) {
			return accts[i].Number < accts[j].Number
		}
		return accts[i].CreatedAt.Before(accts[j].CreatedAt)
	})
	return accts, nil
}

func (r *memAccountRepo) UpdateBalance(_ context.Context, id uuid.UUID, balance int64) error {
	a, ok := r.store.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Balance = balance
	a.Formatted = money.FromCentavos(balance).String()
	a.UpdatedAt = time.Now().UTC()
	r.store.accounts[id] = a
	return nil
}

type memTransactionRepo struct{ store *MemoryStore }

func (r *memTransactionRepo) Create(_ context.Context, create dto.TransactionCreate) (*dto.TransactionRead, error) {
	if _, ok := r.store.accounts[create.AccountID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.store.seq++
	read := dto.TransactionRead{
		ID:        create.ID,
		AccountID: create.AccountID,
		Kind:      create.Kind,
		Amount:    create.Amount,
		Balance:   create.Balance,
		Formatted: money.FromCentavos(create.Amount).String(),
		Seq:       r.store.seq,
		CreatedAt: create.CreatedAt,
	}
	r.store.transactions[create.AccountID] = append(r.store.transactions[create.AccountID], read)
	return &read, nil
}

func (r *memTransactionRepo) ListForAccount(_ context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	stored := r.store.transactions[accountID]
	txs := make([]*dto.TransactionRead, 0, len(stored))
	for i := range stored {
		tx := stored[i]
		txs = append(txs, &tx)
	}
	sort.Slice(txs, func(i, j int) bool {
		if txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].Seq < txs[j].Seq
		}
		return txs[i].CreatedAt.Before(txs[j].CreatedAt)
	})
	return txs, nil
}

type memUserRepo struct{ store *MemoryStore }

func (r *memUserRepo) Create(_ context.Context, create dto.UserCreate) error {
	for _, u := range r.store.users {
		if u.Username == create.Username || u.Email == create.Email {
			return domain.ErrAlreadyExists
		}
	}
	r.store.users[create.ID] = dto.UserRead{
		ID:             create.ID,
		Username:       create.Username,
		Email:          create.Email,
		Active:         true,
		HashedPassword: create.Password,
		CreatedAt:      time.Now().UTC(),
	}
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*dto.UserRead, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) GetByIdentity(_ context.Context, identity string) (*dto.UserRead, error) {
	identity = strings.ToLower(identity)
	for _, u := range r.store.users {
		if strings.ToLower(u.Username) == identity || strings.ToLower(u.Email) == identity {
			user := u
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Deactivate flips a stored user to inactive. Test-only hook for exercising
// the inactive-principal path.
func (s *MemoryStore) Deactivate(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.Active = false
		s.users[id] = u
	}
}
