package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aaravmahajanofficial/safari-storefront/internal/cart"
	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	"github.com/aaravmahajanofficial/safari-storefront/internal/utils"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

const (
	DefaultCountryCode = "593"
	sendURL            = "https://api.whatsapp.com/send"

	referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	referenceLength   = 6
	separator         = "-------------------------------"
)

var newReference = mustReferenceGenerator()

func mustReferenceGenerator() func() string {
	gen, err := nanoid.CustomASCII(referenceAlphabet, referenceLength)
	if err != nil {
		panic(fmt.Sprintf("checkout: invalid reference alphabet: %v", err))
	}
	return gen
}

// Handoff is everything needed to continue the order in WhatsApp.
type Handoff struct {
	Reference string
	Phone     string
	Message   string
	URL       string
}

// NewReference returns a short uppercase order token, e.g. "K7Q2ZD".
func NewReference() string {
	return newReference()
}

// NormalizePhone keeps the digits, drops one leading 0 and prefixes the
// country code when the number looks local.
func NormalizePhone(raw, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	digits := strings.TrimPrefix(utils.DigitsOnly(raw), "0")

	if len(digits) >= 9 && !strings.HasPrefix(digits, countryCode) {
		return countryCode + digits
	}

	return digits
}

// FormatMessage renders the order summary sent to the store.
func FormatMessage(reference string, lines []models.CartLine, total decimal.Decimal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📦 *NUEVO PEDIDO - #%s*\n\n", reference)
	b.WriteString("Hola! Quisiera realizar el siguiente pedido:\n\n")

	items := make([]string, 0, len(lines))
	for _, line := range lines {
		items = append(items, fmt.Sprintf("✅ *%dx* %s \n   Precio: %s",
			line.Quantity, line.Name, utils.FormatPrice(cart.Subtotal(line).InexactFloat64())))
	}
	b.WriteString(strings.Join(items, "\n\n"))

	b.WriteString("\n\n" + separator + "\n")
	fmt.Fprintf(&b, "💰 *TOTAL: %s*\n", utils.FormatPrice(total.InexactFloat64()))
	b.WriteString(separator + "\n\n")
	b.WriteString("Por favor, confírmame disponibilidad para coordinar la entrega.")

	return b.String()
}

// Marks QueryEscape encodes but a browser's encodeURIComponent leaves alone.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s for a query value the way
// encodeURIComponent does: spaces as %20 and !'()* kept literal.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

type options struct {
	countryCode string
	reference   func() string
}

type Option func(*options)

func WithCountryCode(code string) Option {
	return func(o *options) {
		if code != "" {
			o.countryCode = code
		}
	}
}

// WithReference fixes how order tokens are generated, mainly for tests.
func WithReference(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.reference = gen
		}
	}
}

// Build formats the order and the deep link. The caller only offers checkout
// for a non-empty cart.
func Build(lines []models.CartLine, contact string, opts ...Option) Handoff {
	o := options{countryCode: DefaultCountryCode, reference: NewReference}
	for _, opt := range opts {
		opt(&o)
	}

	ref := o.reference()
	phone := NormalizePhone(contact, o.countryCode)
	message := FormatMessage(ref, lines, cart.TotalOf(lines))

	return Handoff{
		Reference: ref,
		Phone:     phone,
		Message:   message,
		URL:       sendURL + "?phone=" + phone + "&text=" + encodeComponent(message),
	}
}
