package repositories

import (
	"context"
	"sync"
	"time"

	"tailor-shop/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartStore is the durable backing for the cart. The in-memory cart stays
// authoritative for the running session; the store is best-effort.
type CartStore interface {
	Load(ctx context.Context) (models.Cart, error)
	Save(ctx context.Context, cart models.Cart) error
	Close() error
}

const saveTimeout = 5 * time.Second

// CartRepository owns the local cart. All mutations are synchronous and
// immediately consistent in memory; every mutation schedules a write to the
// store that callers never wait on.
type CartRepository struct {
	mu   sync.Mutex
	cart models.Cart
	seq  uint64

	store  CartStore
	logger *zap.Logger

	saveMu   sync.Mutex
	savedSeq uint64
}

func NewCartRepository(store CartStore, logger *zap.Logger) *CartRepository {
	return &CartRepository{
		store:  store,
		logger: logger,
	}
}

// Load rehydrates the cart from the store at application start. A load
// failure starts the session with an empty cart rather than failing the
// process.
func (r *CartRepository) Load(ctx context.Context) {
	cart, err := r.store.Load(ctx)
	if err != nil {
		r.logger.Warn("cart load failed, starting empty", zap.Error(err))
		return
	}

	r.mu.Lock()
	r.cart = cart
	r.mu.Unlock()
}

// AddItem merges into an existing line with the same identity key or appends
// a new one. Quantities are always clamped to [1, maxQuantity]; when both
// the existing line and the addition carry a stock ceiling, the smaller one
// wins and sticks.
func (r *CartRepository) AddItem(item models.CartLineItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := item.Key()
	for i := range r.cart.Items {
		if r.cart.Items[i].Key() != key {
			continue
		}

		existing := &r.cart.Items[i]
		if item.MaxQuantity > 0 && item.MaxQuantity < existing.MaxQuantity {
			existing.MaxQuantity = item.MaxQuantity
		}
		existing.Quantity = models.ClampQuantity(existing.Quantity+item.Quantity, existing.MaxQuantity)
		r.persistLocked()
		return
	}

	if item.MaxQuantity <= 0 {
		item.MaxQuantity = models.DefaultMaxQuantity
	}
	item.Quantity = models.ClampQuantity(item.Quantity, item.MaxQuantity)
	r.cart.Items = append(r.cart.Items, item)
	r.persistLocked()
}

// RemoveItem deletes the matching line if present, no-op otherwise.
func (r *CartRepository) RemoveItem(productID string, variantID *string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := lineKey(productID, variantID)
	for i := range r.cart.Items {
		if r.cart.Items[i].Key() == key {
			r.cart.Items = append(r.cart.Items[:i], r.cart.Items[i+1:]...)
			r.persistLocked()
			return
		}
	}
}

// UpdateQuantity sets the line's quantity, clamped to [1, maxQuantity].
// A request below 1 stores 1; updating never removes a line.
func (r *CartRepository) UpdateQuantity(productID string, variantID *string, quantity int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := lineKey(productID, variantID)
	for i := range r.cart.Items {
		if r.cart.Items[i].Key() == key {
			r.cart.Items[i].Quantity = models.ClampQuantity(quantity, r.cart.Items[i].MaxQuantity)
			r.persistLocked()
			return
		}
	}
}

// Clear empties the cart.
func (r *CartRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cart.Items = nil
	r.persistLocked()
}

// Cart returns a snapshot copy of the current contents.
func (r *CartRepository) Cart() models.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cart.Clone()
}

func (r *CartRepository) TotalItems() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cart.TotalItems()
}

func (r *CartRepository) TotalPrice() decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cart.TotalPrice()
}

// persistLocked schedules a background write of the current state. Callers
// hold r.mu. Writes are sequence-numbered so a stale snapshot never
// overwrites a newer one, and failures are logged, never surfaced.
func (r *CartRepository) persistLocked() {
	r.seq++
	seq := r.seq
	snapshot := r.cart.Clone()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		r.save(ctx, seq, snapshot)
	}()
}

func (r *CartRepository) save(ctx context.Context, seq uint64, snapshot models.Cart) {
	r.saveMu.Lock()
	defer r.saveMu.Unlock()

	if seq <= r.savedSeq {
		return
	}
	if err := r.store.Save(ctx, snapshot); err != nil {
		r.logger.Warn("cart persist failed, in-memory state remains authoritative",
			zap.Uint64("seq", seq), zap.Error(err))
		return
	}
	r.savedSeq = seq
}

// Flush writes the current state synchronously. Used at shutdown to narrow
// the window where a recent mutation is only in memory.
func (r *CartRepository) Flush(ctx context.Context) error {
	r.mu.Lock()
	seq := r.seq
	snapshot := r.cart.Clone()
	r.mu.Unlock()

	r.saveMu.Lock()
	defer r.saveMu.Unlock()

	if seq <= r.savedSeq {
		return nil
	}
	if err := r.store.Save(ctx, snapshot); err != nil {
		return err
	}
	r.savedSeq = seq
	return nil
}

func lineKey(productID string, variantID *string) string {
	return models.CartLineItem{ProductID: productID, VariantID: variantID}.Key()
}
