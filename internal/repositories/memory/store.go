// Package memory is an in-process implementation of the ledger repositories,
// used for development and tests. State is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"btcwallet/internal/models"
	"btcwallet/internal/repositories"
)

// Store keeps users, wallets and the transaction log in memory.
//
// Units of work, and every write made outside one, are serialized by txMu.
// Readers only take mu, so they never wait for a unit of work to finish but
// may observe its intermediate state.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	users   map[string]*models.User
	wallets map[string]*models.Wallet
	order   []string // wallet addresses in creation order
	txs     []*models.Transaction
	lastID  uint64

	now func() time.Time
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		users:   make(map[string]*models.User),
		wallets: make(map[string]*models.Wallet),
		now:     time.Now,
	}
}

func (s *Store) Users() repositories.UserRepository {
	return &userRepository{view{s: s}}
}

func (s *Store) Wallets() repositories.WalletRepository {
	return &walletRepository{view{s: s}}
}

func (s *Store) Transactions() repositories.TransactionRepository {
	return &transactionRepository{view{s: s}}
}

// ExecuteInTransaction runs fn with exclusive write access. If fn returns an
// error or panics, the state is restored to what it was before fn started.
func (s *Store) ExecuteInTransaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.restore(snap)
		}
	}()

	if err := fn(&unitOfWork{s: s}); err != nil {
		return err
	}
	committed = true
	return nil
}

type snapshot struct {
	users   map[string]*models.User
	wallets map[string]*models.Wallet
	order   []string
	txs     []*models.Transaction
	lastID  uint64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		users:   make(map[string]*models.User, len(s.users)),
		wallets: make(map[string]*models.Wallet, len(s.wallets)),
		order:   append([]string(nil), s.order...),
		txs:     append([]*models.Transaction(nil), s.txs...),
		lastID:  s.lastID,
	}
	for k, u := range s.users {
		snap.users[k] = u
	}
	// wallets are mutated in place, so they are the only values copied
	for k, w := range s.wallets {
		c := *w
		snap.wallets[k] = &c
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = snap.users
	s.wallets = snap.wallets
	s.order = snap.order
	s.txs = snap.txs
	s.lastID = snap.lastID
}

// unitOfWork is the Store seen from inside ExecuteInTransaction.
type unitOfWork struct {
	s *Store
}

func (u *unitOfWork) Users() repositories.UserRepository {
	return &userRepository{view{s: u.s, inUnit: true}}
}

func (u *unitOfWork) Wallets() repositories.WalletRepository {
	return &walletRepository{view{s: u.s, inUnit: true}}
}

func (u *unitOfWork) Transactions() repositories.TransactionRepository {
	return &transactionRepository{view{s: u.s, inUnit: true}}
}

// ExecuteInTransaction joins the enclosing unit of work.
func (u *unitOfWork) ExecuteInTransaction(_ context.Context, fn func(tx repositories.Store) error) error {
	return fn(u)
}

// view is shared by the repositories; inUnit means txMu is already held.
type view struct {
	s      *Store
	inUnit bool
}

// write runs fn holding the locks a mutation needs.
func (v view) write(fn func()) {
	if !v.inUnit {
		v.s.txMu.Lock()
		defer v.s.txMu.Unlock()
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	fn()
}

var _ repositories.Store = (*Store)(nil)
