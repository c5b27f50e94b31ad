package cart

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	"github.com/aaravmahajanofficial/safari-storefront/internal/utils"
)

const (
	maxSuggestions        = 2
	defaultSuggestTimeout = 8 * time.Second
)

// NeedsMemoryCard reports whether the cart holds a camera but nothing that
// already serves as its storage.
func NeedsMemoryCard(lines []models.CartLine) bool {
	hasCamera := false
	hasCard := false

	for _, l := range lines {
		if utils.ContainsFold(l.CategoryName, "camara") ||
			utils.ContainsFold(l.SubCategoryName, "camara") ||
			utils.ContainsFold(l.Name, "camara") {
			hasCamera = true
		}

		if utils.ContainsFold(l.SubCategoryName, "micro sd") ||
			utils.ContainsFold(l.Name, "micro sd") ||
			utils.ContainsFold(l.Name, "memoria sd") {
			hasCard = true
		}
	}

	return hasCamera && !hasCard
}

func isMemoryCard(p models.Product) bool {
	return utils.ContainsFold(p.CategoryName, "almacenamiento") ||
		utils.ContainsFold(p.SubCategoryName, "micro sd") ||
		utils.ContainsFold(p.Name, "micro sd")
}

// MemoryCardSuggestions picks up to two storage products from the catalog,
// in catalog order, when the cart needs one.
func MemoryCardSuggestions(lines []models.CartLine, catalog []models.Product) []models.Product {
	if len(lines) == 0 || !NeedsMemoryCard(lines) {
		return nil
	}

	var out []models.Product
	for _, p := range catalog {
		if isMemoryCard(p) {
			out = append(out, p)
			if len(out) == maxSuggestions {
				break
			}
		}
	}

	return out
}

// CatalogSource lists the storefront products.
type CatalogSource interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
}

// Recommender keeps the cross-sell suggestions for the current cart. Each cart
// change starts a recomputation; results of superseded ones are dropped.
type Recommender struct {
	source  CatalogSource
	timeout time.Duration
	logger  *slog.Logger

	mu          sync.RWMutex
	generation  uint64
	suggestions []models.Product

	wg sync.WaitGroup
}

type RecommenderOption func(*Recommender)

func WithSuggestTimeout(d time.Duration) RecommenderOption {
	return func(r *Recommender) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithRecommenderLogger(logger *slog.Logger) RecommenderOption {
	return func(r *Recommender) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRecommender(source CatalogSource, opts ...RecommenderOption) *Recommender {
	r := &Recommender{
		source:  source,
		timeout: defaultSuggestTimeout,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Attach subscribes to the engine and computes suggestions for its current lines.
func (r *Recommender) Attach(e *Engine) {
	e.OnChange(r.Refresh)
	r.Refresh(e.Lines())
}

// Refresh recomputes suggestions for lines. The catalog is only fetched when the
// cart needs a memory card.
func (r *Recommender) Refresh(lines []models.CartLine) {

	r.mu.Lock()
	r.generation++
	gen := r.generation

	if !NeedsMemoryCard(lines) {
		r.suggestions = nil
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		var result []models.Product

		products, err := r.source.GetProducts(ctx)
		if err != nil {
			r.logger.Warn("Suggestions unavailable", slog.String("error", err.Error()))
		} else {
			result = MemoryCardSuggestions(lines, products)
		}

		r.mu.Lock()
		defer r.mu.Unlock()

		if gen != r.generation {
			return
		}
		r.suggestions = result
	}()
}

// Suggestions returns the latest computed suggestions.
func (r *Recommender) Suggestions() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.suggestions)
}

// Wait blocks until in-flight recomputations finish.
func (r *Recommender) Wait() {
	r.wg.Wait()
}
