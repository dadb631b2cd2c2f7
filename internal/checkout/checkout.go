package checkout

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/nebulashop/storefront/internal/cart"
	"github.com/nebulashop/storefront/internal/transport"
)

// ShippingFee is the flat delivery fee, charged whenever the cart is
// non-empty.
const ShippingFee = 5.0

var (
	ErrInvalidForm = errors.New("checkout: form is not valid")
	ErrEmptyCart   = errors.New("checkout: cart is empty")
)

var (
	// Substring match, not anchored: any input containing a plausible
	// address core is accepted.
	emailRe  = regexp.MustCompile(`\S+@\S+\.\S+`)
	postalRe = regexp.MustCompile(`^[0-9]{4,6}$`)
	cardRe   = regexp.MustCompile(`^[0-9]{13,19}$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/?([0-9]{2})$`)
	cvcRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

type Form struct {
	Email                string
	FirstName            string
	LastName             string
	Address              string
	Apartment            string // optional
	City                 string
	PostalCode           string
	Country              string
	PaymentMethod        string
	NameOnCard           string
	CardNumber           string
	Expiry               string
	CVC                  string
	RememberMe           bool
	UseShippingAsBilling bool
}

// Valid reports whether every submission rule holds.
func (f *Form) Valid() bool {
	return emailRe.MatchString(f.Email) &&
		strings.TrimSpace(f.FirstName) != "" &&
		strings.TrimSpace(f.LastName) != "" &&
		strings.TrimSpace(f.Address) != "" &&
		strings.TrimSpace(f.City) != "" &&
		strings.TrimSpace(f.Country) != "" &&
		postalRe.MatchString(f.PostalCode) &&
		cardRe.MatchString(spaceRe.ReplaceAllString(f.CardNumber, "")) &&
		expiryRe.MatchString(f.Expiry) &&
		cvcRe.MatchString(f.CVC) &&
		strings.TrimSpace(f.NameOnCard) != ""
}

func Subtotal(lines []cart.Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

func ShippingPrice(lines []cart.Line) float64 {
	if len(lines) == 0 {
		return 0
	}
	return ShippingFee
}

// BuildOrder snapshots the cart into an order-creation payload. Prices are
// copied, so later catalog changes cannot touch this order.
func BuildOrder(f Form, lines []cart.Line) transport.CreateOrderRequest {
	subtotal := Subtotal(lines)
	shipping := ShippingPrice(lines)
	total := subtotal + shipping

	items := make([]transport.OrderItemInput, 0, len(lines))
	for _, l := range lines {
		items = append(items, transport.OrderItemInput{
			ProductID: l.ID,
			Title:     l.Title,
			ImageURL:  l.ImageURL,
			Quantity:  uint(l.Quantity),
			Price:     l.Price,
		})
	}

	return transport.CreateOrderRequest{
		Email:                f.Email,
		FirstName:            f.FirstName,
		LastName:             f.LastName,
		Address:              f.Address,
		Apartment:            f.Apartment,
		City:                 f.City,
		PostalCode:           f.PostalCode,
		Country:              f.Country,
		PaymentMethod:        f.PaymentMethod,
		NameOnCard:           f.NameOnCard,
		CardNumber:           f.CardNumber,
		Expiry:               f.Expiry,
		CVC:                  f.CVC,
		RememberMe:           f.RememberMe,
		UseShippingAsBilling: f.UseShippingAsBilling,
		ShippingPrice:        &shipping,
		Subtotal:             &subtotal,
		Total:                &total,
		Items:                items,
	}
}

// Placer submits the order-creation request and returns the new order id.
type Placer interface {
	PlaceOrder(ctx context.Context, req transport.CreateOrderRequest) (uint, error)
}

// Workflow drives one checkout attempt over a cart.
type Workflow struct {
	Cart *cart.Cart
	Form Form
}

// Submit validates, builds the payload and hands it to the placer. The cart
// is cleared and the overlay closed only after the placer acknowledges;
// a failure leaves everything untouched and re-submittable.
func (w *Workflow) Submit(ctx context.Context, placer Placer) (uint, error) {
	if !w.Form.Valid() {
		return 0, ErrInvalidForm
	}
	lines := w.Cart.Lines()
	if len(lines) == 0 {
		return 0, ErrEmptyCart
	}

	req := BuildOrder(w.Form, lines)

	id, err := placer.PlaceOrder(ctx, req)
	if err != nil {
		return 0, err
	}

	w.Cart.ClearCart()
	w.Cart.CloseCheckout()
	return id, nil
}
