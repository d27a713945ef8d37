package features

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/pricing"
	"storefront/internal/service/checkout"
	"storefront/internal/service/order"
	"storefront/internal/service/session"
)

type shoppingContext struct {
	products map[string]domain.Product
	list     []domain.Product
	shop     *session.Shop
	orders   *order.Registry
	checkout *checkout.Service
	userID   string
	browsed  []domain.Product
	placed   domain.Order
	shown    []notify.Message
	stop     func()
	drained  chan struct{}
}

func (c *shoppingContext) reset() {
	if c.shop != nil {
		c.stop()
		<-c.drained
		c.shop.Close()
	}
	c.products = make(map[string]domain.Product)
	c.list = nil
	c.shop = session.NewShop("feature", session.DefaultOptions())
	c.orders = order.NewRegistry(nil, nil)
	c.checkout = checkout.New(pricing.DefaultRules(), c.orders, nil, nil)
	c.userID = ""
	c.browsed = nil
	c.placed = domain.Order{}
	c.shown = nil

	ch, cancel := c.shop.Subscribe()
	c.stop = cancel
	c.drained = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		for msg := range ch {
			if msg.Text != "" {
				c.shown = append(c.shown, msg)
			}
		}
	}(c.drained)
}

func (c *shoppingContext) theCatalog(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		price, err := strconv.ParseInt(row.Cells[2].Value, 10, 64)
		if err != nil {
			return err
		}
		p := domain.Product{
			ID:         row.Cells[0].Value,
			Title:      row.Cells[1].Value,
			Price:      price,
			Categories: []string{row.Cells[3].Value},
		}
		c.products[p.ID] = p
		c.list = append(c.list, p)
	}
	return nil
}

func (c *shoppingContext) anEmptyCart() error {
	if n := c.shop.Cart().Count; n != 0 {
		return fmt.Errorf("expected empty cart, got %d items", n)
	}
	return nil
}

func (c *shoppingContext) iAmSignedInAs(userID string) error {
	c.userID = userID
	c.shop.AttachUser(userID)
	return nil
}

func (c *shoppingContext) product(id string) (domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("unknown product %q", id)
	}
	return p, nil
}

func (c *shoppingContext) iAddProductToTheCart(id string) error {
	return c.iAddProductWithVariantToTheCart(id, "")
}

func (c *shoppingContext) iAddProductWithVariantToTheCart(id, variant string) error {
	p, err := c.product(id)
	if err != nil {
		return err
	}
	c.shop.AddToCart(p, variant)
	return nil
}

func (c *shoppingContext) iDecreaseProductWithVariant(id, variant string) error {
	if !c.shop.Decrease(id, variant) {
		return fmt.Errorf("no line for %s/%s", id, variant)
	}
	return nil
}

func (c *shoppingContext) iBrowseWithMaxPriceSorted(max int, sortKey string) error {
	c.browsed = catalog.Apply(c.list, catalog.Filter{MaxPrice: catalog.Ceiling(int64(max)), Sort: sortKey})
	return nil
}

func (c *shoppingContext) iCheckOutPaying(method string) error {
	o, err := c.checkout.Place(context.Background(), c.userID, c.shop, checkout.PlaceInput{
		Address: domain.Address{
			Name:    "Asha Rao",
			Phone:   "9876543210",
			Pincode: "560001",
			City:    "Bengaluru",
			State:   "Karnataka",
			Line:    "12 MG Road",
		},
		PaymentMethod: method,
	})
	if err != nil {
		return err
	}
	c.placed = o
	return nil
}

func (c *shoppingContext) iToggleProductInTheWishlist(id string) error {
	p, err := c.product(id)
	if err != nil {
		return err
	}
	c.shop.ToggleWishlist(p)
	return nil
}

func (c *shoppingContext) theCartHasLines(n int) error {
	if got := len(c.shop.Cart().Lines); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *shoppingContext) theCartItemCountIs(n int) error {
	if got := c.shop.Cart().Count; got != n {
		return fmt.Errorf("expected item count %d, got %d", n, got)
	}
	return nil
}

func (c *shoppingContext) totals() pricing.Totals {
	return c.checkout.Quote(c.shop, "")
}

func expectAmount(name string, want int, got int64) error {
	if got != int64(want) {
		return fmt.Errorf("expected %s %d, got %d", name, want, got)
	}
	return nil
}

func (c *shoppingContext) theSubtotalIs(v int) error {
	return expectAmount("subtotal", v, c.totals().Subtotal)
}

func (c *shoppingContext) theTaxIs(v int) error { return expectAmount("tax", v, c.totals().Tax) }

func (c *shoppingContext) theDeliveryFeeIs(v int) error {
	return expectAmount("delivery", v, c.totals().Delivery)
}

func (c *shoppingContext) theDiscountIs(v int) error {
	return expectAmount("discount", v, c.totals().Discount)
}

func (c *shoppingContext) theGrandTotalIs(v int) error {
	return expectAmount("grand total", v, c.totals().GrandTotal)
}

func (c *shoppingContext) iSeeProductsInThatOrder(ids string) error {
	got := make([]string, len(c.browsed))
	for i, p := range c.browsed {
		got[i] = p.ID
	}
	if strings.Join(got, ",") != ids {
		return fmt.Errorf("expected %s, got %s", ids, strings.Join(got, ","))
	}
	return nil
}

func (c *shoppingContext) theQuantityOfProductWithVariantIs(id, variant string, n int) error {
	if got := c.shop.Qty(id, variant); got != n {
		return fmt.Errorf("expected quantity %d, got %d", n, got)
	}
	return nil
}

func (c *shoppingContext) theOrderHasItems(n int) error {
	if got := len(c.placed.Items); got != n {
		return fmt.Errorf("expected %d order items, got %d", n, got)
	}
	return nil
}

func (c *shoppingContext) theOrderSubtotalIs(v int) error {
	return expectAmount("order subtotal", v, c.placed.Breakdown.Subtotal)
}

func (c *shoppingContext) theNotificationReads(text string) error {
	msg, ok := c.shop.Notification()
	if !ok {
		return errors.New("no notification visible")
	}
	if msg.Text != text {
		return fmt.Errorf("expected notification %q, got %q", text, msg.Text)
	}
	return nil
}

func (c *shoppingContext) theOrderIsFirstInMyHistory() error {
	history := c.orders.For(context.Background(), c.userID).List()
	if len(history) == 0 {
		return errors.New("history is empty")
	}
	if history[0].ID != c.placed.ID {
		return fmt.Errorf("expected %s first, got %s", c.placed.ID, history[0].ID)
	}
	return nil
}

func (c *shoppingContext) productIsNotInTheWishlist(id string) error {
	if c.shop.InWishlist(id) {
		return fmt.Errorf("product %s still in wishlist", id)
	}
	return nil
}

func (c *shoppingContext) notificationsWereShown(n int) error {
	c.stop()
	<-c.drained
	if got := len(c.shown); got != n {
		return fmt.Errorf("expected %d notifications, got %d", n, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	sc := &shoppingContext{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the catalog:$`, sc.theCatalog)
	ctx.Step(`^an empty cart$`, sc.anEmptyCart)
	ctx.Step(`^I am signed in as "([^"]*)"$`, sc.iAmSignedInAs)

	// When steps
	ctx.Step(`^I add product "([^"]*)" to the cart$`, sc.iAddProductToTheCart)
	ctx.Step(`^I add product "([^"]*)" with variant "([^"]*)" to the cart$`, sc.iAddProductWithVariantToTheCart)
	ctx.Step(`^I decrease product "([^"]*)" with variant "([^"]*)"$`, sc.iDecreaseProductWithVariant)
	ctx.Step(`^I browse with max price (\d+) sorted "([^"]*)"$`, sc.iBrowseWithMaxPriceSorted)
	ctx.Step(`^I check out paying "([^"]*)"$`, sc.iCheckOutPaying)
	ctx.Step(`^I toggle product "([^"]*)" in the wishlist$`, sc.iToggleProductInTheWishlist)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines$`, sc.theCartHasLines)
	ctx.Step(`^the cart item count is (\d+)$`, sc.theCartItemCountIs)
	ctx.Step(`^the subtotal is (\d+)$`, sc.theSubtotalIs)
	ctx.Step(`^the tax is (\d+)$`, sc.theTaxIs)
	ctx.Step(`^the delivery fee is (\d+)$`, sc.theDeliveryFeeIs)
	ctx.Step(`^the discount is (\d+)$`, sc.theDiscountIs)
	ctx.Step(`^the grand total is (\d+)$`, sc.theGrandTotalIs)
	ctx.Step(`^I see products "([^"]*)" in that order$`, sc.iSeeProductsInThatOrder)
	ctx.Step(`^the quantity of product "([^"]*)" with variant "([^"]*)" is (\d+)$`, sc.theQuantityOfProductWithVariantIs)
	ctx.Step(`^the order has (\d+) items$`, sc.theOrderHasItems)
	ctx.Step(`^the order subtotal is (\d+)$`, sc.theOrderSubtotalIs)
	ctx.Step(`^the notification reads "([^"]*)"$`, sc.theNotificationReads)
	ctx.Step(`^the order is first in my history$`, sc.theOrderIsFirstInMyHistory)
	ctx.Step(`^product "([^"]*)" is not in the wishlist$`, sc.productIsNotInTheWishlist)
	ctx.Step(`^(\d+) notifications were shown$`, sc.notificationsWereShown)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"shopping.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
