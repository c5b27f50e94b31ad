// Package cli implements the safari-cart commands on top of the cart engine
// and the catalog API client.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"github.com/aaravmahajanofficial/safari-storefront/internal/cart"
	"github.com/aaravmahajanofficial/safari-storefront/internal/checkout"
	"github.com/aaravmahajanofficial/safari-storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/safari-storefront/internal/errors"
	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	"github.com/aaravmahajanofficial/safari-storefront/pkg/storefront"
)

var ErrUsage = errors.New("usage error")

// Catalog is the part of the API client the commands need.
type Catalog interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetConfig(ctx context.Context) models.StoreConfig
}

type App struct {
	cfg         *config.ClientConfig
	catalog     Catalog
	engine      *cart.Engine
	recommender *cart.Recommender
	out         io.Writer
	logger      *slog.Logger
}

func NewApp(cfg *config.ClientConfig, catalog Catalog, engine *cart.Engine, out io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	rec := cart.NewRecommender(catalog,
		cart.WithSuggestTimeout(cfg.APITimeout),
		cart.WithRecommenderLogger(logger),
	)

	a := &App{
		cfg:         cfg,
		catalog:     catalog,
		engine:      engine,
		recommender: rec,
		out:         out,
		logger:      logger,
	}

	engine.OnAdd(func(e cart.AddEvent) {
		logger.Debug("Added to cart", slog.String("productId", e.ProductID), slog.String("image", e.Image))
	})

	rec.Attach(engine)

	return a
}

const usage = `usage: safari-cart <command> [arguments]

commands:
  products [-search text] [-category id] [-sort default|price-asc|price-desc]
  categories
  show
  add <product-id>
  remove <product-id>
  set <product-id> <quantity>
  clear
  checkout
`

func (a *App) Usage() {
	fmt.Fprint(a.out, usage)
}

// Run executes one command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.Usage()
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "products":
		return a.products(ctx, rest)
	case "categories":
		return a.categories(ctx)
	case "show":
		return a.show()
	case "add":
		if len(rest) != 1 {
			return a.usageError("add takes one product id")
		}
		return a.add(ctx, rest[0])
	case "remove":
		if len(rest) != 1 {
			return a.usageError("remove takes one product id")
		}
		if err := a.engine.RemoveFromCart(ctx, rest[0]); err != nil {
			return err
		}
		return a.show()
	case "set":
		if len(rest) != 2 {
			return a.usageError("set takes a product id and a quantity")
		}
		qty, err := strconv.Atoi(rest[1])
		if err != nil {
			return a.usageError("quantity must be a whole number")
		}
		if err := a.engine.UpdateQuantity(ctx, rest[0], qty); err != nil {
			return err
		}
		return a.show()
	case "clear":
		if err := a.engine.ClearCart(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Carrito vacío.")
		return nil
	case "checkout":
		return a.checkout(ctx)
	case "help", "-h", "--help":
		a.Usage()
		return nil
	default:
		return a.usageError(fmt.Sprintf("unknown command %q", cmd))
	}
}

func (a *App) usageError(msg string) error {
	fmt.Fprintln(a.out, msg)
	a.Usage()
	return fmt.Errorf("%w: %s", ErrUsage, msg)
}

func (a *App) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	fs.SetOutput(a.out)
	search := fs.String("search", "", "text to look for in name or description")
	category := fs.String("category", "", "category id")
	sortOrder := fs.String("sort", string(storefront.SortDefault), "default, price-asc or price-desc")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s", ErrUsage, err.Error())
	}

	q := storefront.Query{Search: *search, CategoryID: *category, Sort: storefront.SortOrder(*sortOrder)}

	products, err := a.catalog.GetProducts(ctx)
	if err != nil {
		return err
	}

	if !q.Grouped() {
		found := storefront.Filter(products, q)
		fmt.Fprintf(a.out, "%d Productos\n", len(found))
		a.printProducts(found)
		return nil
	}

	categories, err := a.catalog.GetCategories(ctx)
	if err != nil {
		return err
	}

	categories = storefront.CategoriesWithProducts(categories, products)
	for _, g := range storefront.GroupByCategory(categories, products, q.Sort) {
		fmt.Fprintf(a.out, "\n== %s ==\n", g.Category.Name)
		a.printProducts(g.Products)
	}

	return nil
}

func (a *App) printProducts(products []models.Product) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, p := range products {
		stock := "disponible"
		if p.Stock <= 0 {
			stock = "agotado"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, storefront.FormatPrice(p.Price), stock)
	}
	tw.Flush()
}

func (a *App) categories(ctx context.Context) error {
	products, err := a.catalog.GetProducts(ctx)
	if err != nil {
		return err
	}

	categories, err := a.catalog.GetCategories(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, c := range storefront.CategoriesWithProducts(categories, products) {
		fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
	}
	return tw.Flush()
}

func (a *App) add(ctx context.Context, id string) error {
	product, err := a.catalog.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := a.engine.AddToCart(ctx, *product); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Agregado: %s\n", product.Name)
	return a.show()
}

func (a *App) show() error {
	view := a.engine.View()

	if view.Count == 0 {
		fmt.Fprintln(a.out, "Tu carrito está vacío.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, l := range view.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%dx\t%s\n", l.ID, l.Name, l.Quantity, storefront.FormatPrice(cart.Subtotal(l).InexactFloat64()))
	}
	tw.Flush()

	fmt.Fprintf(a.out, "Artículos: %d\nTotal: %s\n", view.Count, storefront.FormatPrice(view.Total))

	a.recommender.Wait()

	if suggestions := a.recommender.Suggestions(); len(suggestions) > 0 {
		fmt.Fprintln(a.out, "\n¿Necesitas almacenamiento para tu cámara?")
		a.printProducts(suggestions)
	}

	return nil
}

func (a *App) checkout(ctx context.Context) error {
	lines := a.engine.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "Tu carrito está vacío.")
		return appErrors.BadRequestError("Cart is empty")
	}

	contact := a.catalog.GetConfig(ctx).WhatsappNumber
	if contact == "" {
		contact = a.cfg.FallbackContact
	}

	h := checkout.Build(lines, contact, checkout.WithCountryCode(a.cfg.CountryCode))

	a.logger.Info("Checkout prepared", slog.String("reference", h.Reference), slog.String("phone", h.Phone))

	fmt.Fprintln(a.out, h.Message)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, h.URL)

	return nil
}
