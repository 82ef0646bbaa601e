package repositories

import (
	"context"
	"log"
	"time"

	"tribute/internal/models"
	"tribute/internal/repositories/cache"
)

const (
	balanceCachePrefix = "ledger"
	balanceCacheTTL    = 5 * time.Minute
)

// cachedLedgerRepository decorates a LedgerRepository with a redis read cache
// for balances. Writes invalidate the touched accounts; inside a transaction
// invalidation is deferred until after commit so rolled-back legs never
// poison the cache.
type cachedLedgerRepository struct {
	inner LedgerRepository
	cache *cache.CacheService
}

func NewCachedLedgerRepository(inner LedgerRepository, cacheSvc *cache.CacheService) LedgerRepository {
	if inner == nil {
		panic("ledger repository is required")
	}
	if cacheSvc == nil {
		return inner
	}
	return &cachedLedgerRepository{inner: inner, cache: cacheSvc}
}

func (r *cachedLedgerRepository) balanceKey(addr models.Address) string {
	return r.cache.GenerateKey(balanceCachePrefix, "balance", addr.String())
}

func (r *cachedLedgerRepository) BalanceOf(addr models.Address) (uint64, error) {
	ctx := context.Background()
	var cached uint64
	if hit, err := r.cache.Get(ctx, r.balanceKey(addr), &cached); err == nil && hit {
		return cached, nil
	}

	amount, err := r.inner.BalanceOf(addr)
	if err != nil {
		return 0, err
	}
	if err := r.cache.SetWithTTL(ctx, r.balanceKey(addr), amount, balanceCacheTTL); err != nil {
		log.Printf("failed to cache balance for %s: %v", addr, err)
	}
	return amount, nil
}

func (r *cachedLedgerRepository) Credit(addr models.Address, amount uint64) error {
	if err := r.inner.Credit(addr, amount); err != nil {
		return err
	}
	r.invalidate(addr)
	return nil
}

func (r *cachedLedgerRepository) Debit(addr models.Address, amount uint64) error {
	if err := r.inner.Debit(addr, amount); err != nil {
		return err
	}
	r.invalidate(addr)
	return nil
}

func (r *cachedLedgerRepository) AllowanceOf(owner, spender models.Address) (uint64, error) {
	return r.inner.AllowanceOf(owner, spender)
}

func (r *cachedLedgerRepository) SetAllowance(owner, spender models.Address, amount uint64) error {
	return r.inner.SetAllowance(owner, spender, amount)
}

func (r *cachedLedgerRepository) RecordMovement(m *models.Movement) error {
	return r.inner.RecordMovement(m)
}

func (r *cachedLedgerRepository) TotalSupply() (uint64, error) {
	return r.inner.TotalSupply()
}

func (r *cachedLedgerRepository) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	collector := &touchCollector{touched: make(map[models.Address]struct{})}
	err := r.inner.ExecuteInTransaction(func(tx LedgerRepository) error {
		collector.inner = tx
		return fn(collector)
	})
	if err != nil {
		return err
	}
	for addr := range collector.touched {
		r.invalidate(addr)
	}
	return nil
}

func (r *cachedLedgerRepository) invalidate(addr models.Address) {
	if err := r.cache.Delete(context.Background(), r.balanceKey(addr)); err != nil {
		log.Printf("failed to invalidate balance cache for %s: %v", addr, err)
	}
}

// touchCollector records which accounts a transaction wrote so the decorator
// can invalidate them after commit.
type touchCollector struct {
	inner   LedgerRepository
	touched map[models.Address]struct{}
}

func (c *touchCollector) BalanceOf(addr models.Address) (uint64, error) {
	return c.inner.BalanceOf(addr)
}

func (c *touchCollector) Credit(addr models.Address, amount uint64) error {
	if err := c.inner.Credit(addr, amount); err != nil {
		return err
	}
	c.touched[addr] = struct{}{}
	return nil
}

func (c *touchCollector) Debit(addr models.Address, amount uint64) error {
	if err := c.inner.Debit(addr, amount); err != nil {
		return err
	}
	c.touched[addr] = struct{}{}
	return nil
}

func (c *touchCollector) AllowanceOf(owner, spender models.Address) (uint64, error) {
	return c.inner.AllowanceOf(owner, spender)
}

func (c *touchCollector) SetAllowance(owner, spender models.Address, amount uint64) error {
	return c.inner.SetAllowance(owner, spender, amount)
}

func (c *touchCollector) RecordMovement(m *models.Movement) error {
	return c.inner.RecordMovement(m)
}

func (c *touchCollector) TotalSupply() (uint64, error) {
	return c.inner.TotalSupply()
}

func (c *touchCollector) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	return c.inner.ExecuteInTransaction(fn)
}
