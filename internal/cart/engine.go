package cart

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"

	appErrors "github.com/aaravmahajanofficial/safari-storefront/internal/errors"
	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// Origin is where an add was triggered on screen.
type Origin struct {
	X, Y  float64
	Image string
}

// AddEvent is emitted after a product is added, so a UI can animate the image
// from the trigger point towards the cart.
type AddEvent struct {
	ProductID string
	Image     string
	StartX    float64
	StartY    float64
}

// Engine owns the cart lines and keeps the durable snapshot in step with them.
// Every mutation is persisted before it returns.
type Engine struct {
	storage Storage
	key     string
	logger  *slog.Logger

	mu    sync.Mutex
	items []models.CartLine

	listenersMu sync.RWMutex
	onChange    []func([]models.CartLine)
	onAdd       []func(AddEvent)
}

type Option func(*Engine)

func WithKey(key string) Option {
	return func(e *Engine) {
		if key != "" {
			e.key = key
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Open restores the cart from storage. A missing snapshot gives an empty cart,
// and so does a corrupt one, after a warning. Only a storage read failure is
// returned as an error.
func Open(ctx context.Context, storage Storage, opts ...Option) (*Engine, error) {
	e := &Engine{
		storage: storage,
		key:     DefaultKey,
		logger:  slog.Default(),
		items:   []models.CartLine{},
	}

	for _, opt := range opts {
		opt(e)
	}

	data, err := storage.Load(ctx, e.key)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			return e, nil
		}
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	items, err := decodeSnapshot(data)
	if err != nil {
		e.logger.Warn("Discarding stored cart", slog.String("key", e.key), slog.String("error", err.Error()))
		return e, nil
	}

	e.items = items
	e.logger.Debug("Cart restored", slog.Int("lines", len(items)))

	return e, nil
}

// OnChange registers a listener called with a copy of the lines after every mutation.
func (e *Engine) OnChange(listener func([]models.CartLine)) {
	e.listenersMu.Lock()
	defer e.listenersMu.Unlock()
	e.onChange = append(e.onChange, listener)
}

// OnAdd registers a listener for add events.
func (e *Engine) OnAdd(listener func(AddEvent)) {
	e.listenersMu.Lock()
	defer e.listenersMu.Unlock()
	e.onAdd = append(e.onAdd, listener)
}

func (e *Engine) AddToCart(ctx context.Context, product models.Product) error {
	return e.AddToCartFrom(ctx, product, Origin{})
}

// AddToCartFrom adds one unit of product. An existing line keeps its original
// product snapshot and only its quantity changes. A product without an id is
// rejected; a non-finite or negative price is stored as 0 so the line always
// survives a reload.
func (e *Engine) AddToCartFrom(ctx context.Context, product models.Product, origin Origin) error {
	if strings.TrimSpace(product.ID) == "" {
		return appErrors.BadRequestError("Product id is required")
	}
	product.Price = priceOrZero(product.Price)

	err := e.mutate(ctx, func(items []models.CartLine) []models.CartLine {
		if i := indexOf(items, product.ID); i >= 0 {
			items[i].Quantity++
			return items
		}
		return append(items, models.CartLine{Product: product, Quantity: 1})
	})
	if err != nil {
		return err
	}

	image := origin.Image
	if image == "" {
		image = product.PrimaryImage()
	}

	e.emitAdd(AddEvent{ProductID: product.ID, Image: image, StartX: origin.X, StartY: origin.Y})

	return nil
}

func (e *Engine) RemoveFromCart(ctx context.Context, productID string) error {
	return e.mutate(ctx, func(items []models.CartLine) []models.CartLine {
		return slices.DeleteFunc(items, func(l models.CartLine) bool { return l.ID == productID })
	})
}

// UpdateQuantity sets the absolute quantity. Zero or less removes the line.
// Unknown ids are ignored.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return e.RemoveFromCart(ctx, productID)
	}

	return e.mutate(ctx, func(items []models.CartLine) []models.CartLine {
		if i := indexOf(items, productID); i >= 0 {
			items[i].Quantity = quantity
		}
		return items
	})
}

func (e *Engine) ClearCart(ctx context.Context) error {
	return e.mutate(ctx, func([]models.CartLine) []models.CartLine {
		return []models.CartLine{}
	})
}

// Lines returns a copy of the cart lines in insertion order.
func (e *Engine) Lines() []models.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.items)
}

func (e *Engine) Total() float64 {
	return TotalOf(e.Lines()).InexactFloat64()
}

func (e *Engine) Count() int {
	return CountOf(e.Lines())
}

func (e *Engine) View() models.CartView {
	lines := e.Lines()

	return models.CartView{
		Lines: lines,
		Total: TotalOf(lines).InexactFloat64(),
		Count: CountOf(lines),
	}
}

func priceOrZero(price float64) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}

// Subtotal is price times quantity. A non-finite or negative price counts as zero.
func Subtotal(line models.CartLine) decimal.Decimal {
	return decimal.NewFromFloat(priceOrZero(line.Price)).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

func TotalOf(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(Subtotal(line))
	}
	return total
}

func CountOf(lines []models.CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// mutate applies fn, persists the result and notifies listeners after unlocking.
// When saving fails the in-memory change is kept and the error is returned.
func (e *Engine) mutate(ctx context.Context, fn func([]models.CartLine) []models.CartLine) error {

	e.mu.Lock()
	e.items = fn(e.items)
	snapshot := slices.Clone(e.items)
	err := e.persist(ctx, snapshot)
	e.mu.Unlock()

	e.emitChange(snapshot)

	return err
}

func (e *Engine) persist(ctx context.Context, items []models.CartLine) error {
	data, err := encodeSnapshot(items)
	if err != nil {
		return appErrors.InternalError("Failed to encode cart").WithError(err)
	}

	if err := e.storage.Save(ctx, e.key, data); err != nil {
		e.logger.Error("Failed to persist cart", slog.String("key", e.key), slog.String("error", err.Error()))
		return appErrors.DatabaseError("Failed to save cart").WithError(err)
	}

	return nil
}

func (e *Engine) emitChange(lines []models.CartLine) {
	e.listenersMu.RLock()
	listeners := slices.Clone(e.onChange)
	e.listenersMu.RUnlock()

	for _, l := range listeners {
		l(slices.Clone(lines))
	}
}

func (e *Engine) emitAdd(event AddEvent) {
	e.listenersMu.RLock()
	listeners := slices.Clone(e.onAdd)
	e.listenersMu.RUnlock()

	for _, l := range listeners {
		l(event)
	}
}

func indexOf(items []models.CartLine, productID string) int {
	return slices.IndexFunc(items, func(l models.CartLine) bool { return l.ID == productID })
}
