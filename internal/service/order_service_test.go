package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hopbarley/internal/cart"
	"github.com/hopbarley/internal/constants"
	"github.com/hopbarley/internal/models"
	"github.com/hopbarley/internal/repository"
)

func validCheckoutForm() CheckoutForm {
	return CheckoutForm{
		FullName:      "Ivan Petrov",
		Email:         "Ivan@Example.com",
		Phone:         "+7 900 000 00 00",
		City:          "Moscow",
		Address:       "Tverskaya 1",
		PostalCode:    "101000",
		PaymentMethod: "cash",
	}
}

func countRows(t *testing.T, f *serviceFixture, model interface{}) int64 {
	t.Helper()
	var total int64
	if err := f.db.Model(model).Count(&total).Error; err != nil {
		t.Fatalf("count rows failed: %v", err)
	}
	return total
}

func TestPlaceOrderHappyPath(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	malt := f.product(t, "Caramel Malt 60L", "450.00", 100, true)
	svc := NewOrderService(f.orderRepo, f.productRepo, nil, false)

	c, _ := f.cartService.Open(sess, 5)
	if _, err := f.cartService.Add(c, malt.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// 商品调价后订单仍按加入时的价格
	if err := f.db.Model(&models.Product{}).Where("id = ?", malt.ID).Update("price", models.MustMoney("500.00")).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	order, err := svc.PlaceOrder(PlaceOrderInput{UserID: 5, Cart: c, Form: validCheckoutForm()})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.TotalPrice.String() != "900.00" {
		t.Fatalf("total want 900.00 got %s", order.TotalPrice.String())
	}
	if order.Status != constants.OrderStatusPending || order.IsPaid {
		t.Fatalf("new order should be pending and unpaid: %+v", order)
	}
	if order.Email != "ivan@example.com" || order.PaymentMethod != "cash" {
		t.Fatalf("form should be normalized: email=%s payment=%s", order.Email, order.PaymentMethod)
	}
	if len(order.OrderNo) != 22 || order.OrderNo[:2] != "HB" {
		t.Fatalf("unexpected order number %s", order.OrderNo)
	}

	stored, err := f.orderRepo.GetByID(order.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if len(stored.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(stored.Items))
	}
	item := stored.Items[0]
	if item.Quantity != 2 || item.Price.String() != "450.00" || item.ProductID != malt.ID {
		t.Fatalf("unexpected item: %+v", item)
	}
	if got := f.stockOf(t, malt.ID); got != 98 {
		t.Fatalf("stock want 98 got %d", got)
	}
	if got := order.Items[0].Product.Stock; got != 98 {
		t.Fatalf("returned item stock want 98 got %d", got)
	}
	if !c.IsEmpty() {
		t.Fatalf("cart should be cleared after order")
	}
}

func TestPlaceOrderIsAtomic(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	first := f.product(t, "Pale Ale Malt", "300.00", 10, true)
	second := f.product(t, "Crystal Malt", "350.00", 10, true)
	third := f.product(t, "Chocolate Malt", "380.00", 10, true)
	svc := NewOrderService(f.orderRepo, f.productRepo, nil, false)

	c, _ := f.cartService.Open(sess, 9)
	_, _ = f.cartService.Add(c, first.ID, 1)
	_, _ = f.cartService.Add(c, second.ID, 2)
	_, _ = f.cartService.Add(c, third.ID, 5)
	if err := f.db.Model(&models.Product{}).Where("id = ?", third.ID).Update("stock", 3).Error; err != nil {
		t.Fatalf("lower stock failed: %v", err)
	}

	_, err := svc.PlaceOrder(PlaceOrderInput{UserID: 9, Cart: c, Form: validCheckoutForm()})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}
	var stockErr *cart.StockError
	if !errors.As(err, &stockErr) || stockErr.ProductName != "Chocolate Malt" || stockErr.Available != 3 {
		t.Fatalf("stock error should name the product: %+v", stockErr)
	}
	if total := countRows(t, f, &models.Order{}); total != 0 {
		t.Fatalf("orders want 0 got %d", total)
	}
	if total := countRows(t, f, &models.OrderItem{}); total != 0 {
		t.Fatalf("order items want 0 got %d", total)
	}
	if f.stockOf(t, first.ID) != 10 || f.stockOf(t, second.ID) != 10 || f.stockOf(t, third.ID) != 3 {
		t.Fatalf("stock must not change on failure")
	}
	if c.LineCount() != 3 || c.Count() != 8 {
		t.Fatalf("cart must be intact, lines=%d count=%d", c.LineCount(), c.Count())
	}
}

func TestPlaceOrderRejectsUnavailableProduct(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	malt := f.product(t, "Smoked Malt", "390.00", 10, true)
	svc := NewOrderService(f.orderRepo, f.productRepo, nil, false)

	c, _ := f.cartService.Open(sess, 2)
	_, _ = f.cartService.Add(c, malt.ID, 1)
	if err := f.db.Model(&models.Product{}).Where("id = ?", malt.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	_, err := svc.PlaceOrder(PlaceOrderInput{UserID: 2, Cart: c, Form: validCheckoutForm()})
	var unavailable *ProductUnavailableError
	if !errors.As(err, &unavailable) || unavailable.ProductName != "Smoked Malt" {
		t.Fatalf("want ProductUnavailableError got %v", err)
	}
	if f.stockOf(t, malt.ID) != 10 || c.IsEmpty() {
		t.Fatalf("failed order must not touch stock or cart")
	}
}

func TestPlaceOrderDeletedProductNamedByID(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	malt := f.product(t, "Black Malt", "420.00", 10, true)
	svc := NewOrderService(f.orderRepo, f.productRepo, nil, false)

	c, _ := f.cartService.Open(sess, 4)
	_, _ = f.cartService.Add(c, malt.ID, 1)
	if err := f.db.Delete(&models.Product{}, malt.ID).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	_, err := svc.PlaceOrder(PlaceOrderInput{UserID: 4, Cart: c, Form: validCheckoutForm()})
	var unavailable *ProductUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("want ProductUnavailableError got %v", err)
	}
	if want := fmt.Sprintf("#%d", malt.ID); unavailable.ProductName != want {
		t.Fatalf("product name want %s got %q", want, unavailable.ProductName)
	}
	if c.IsEmpty() {
		t.Fatalf("failed order must keep the cart")
	}
}

func TestPlaceOrderPreconditions(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	malt := f.product(t, "Acid Malt", "420.00", 10, true)
	svc := NewOrderService(f.orderRepo, f.productRepo, nil, false)
	c, _ := f.cartService.Open(sess, 4)

	if _, err := svc.PlaceOrder(PlaceOrderInput{UserID: 4, Cart: c, Form: validCheckoutForm()}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("empty cart want ErrCartEmpty got %v", err)
	}
	_, _ = f.cartService.Add(c, malt.ID, 1)
	if _, err := svc.PlaceOrder(PlaceOrderInput{Cart: c, Form: validCheckoutForm()}); !errors.Is(err, ErrOrderUserRequired) {
		t.Fatalf("anonymous want ErrOrderUserRequired got %v", err)
	}

	form := validCheckoutForm()
	form.Phone = "  "
	form.Email = "not-an-email"
	_, err := svc.PlaceOrder(PlaceOrderInput{UserID: 4, Cart: c, Form: form})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || !errors.Is(err, ErrValidation) {
		t.Fatalf("want ValidationError got %v", err)
	}
	if validationErr.Fields["phone"].Key != "field.required" || validationErr.Fields["email"].Key != "field.email" {
		t.Fatalf("unexpected field errors: %+v", validationErr.Fields)
	}
	if countRows(t, f, &models.Order{}) != 0 || f.stockOf(t, malt.ID) != 10 {
		t.Fatalf("invalid form must not create an order")
	}
}

func TestListAndGetOrdersByUser(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	malt := f.product(t, "Wheat Malt", "330.00", 10, true)
	svc := NewOrderService(f.orderRepo, f.productRepo, nil, false)

	c, _ := f.cartService.Open(sess, 11)
	_, _ = f.cartService.Add(c, malt.ID, 1)
	order, err := svc.PlaceOrder(PlaceOrderInput{UserID: 11, Cart: c, Form: validCheckoutForm()})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if _, err := svc.GetOrderByUser(order.ID, 12); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign order want ErrOrderNotFound got %v", err)
	}
	own, err := svc.GetOrderByUser(order.ID, 11)
	if err != nil || own.OrderNo != order.OrderNo {
		t.Fatalf("own order lookup failed: %v", err)
	}
	if _, _, err := svc.ListOrdersByUser(repository.OrderListFilter{Page: 1, PageSize: 10}); !errors.Is(err, ErrOrderUserRequired) {
		t.Fatalf("list without user want ErrOrderUserRequired got %v", err)
	}
	orders, total, err := svc.ListOrdersByUser(repository.OrderListFilter{UserID: 11, Page: 1, PageSize: 10})
	if err != nil || total != 1 || len(orders) != 1 {
		t.Fatalf("list want 1 order got total=%d len=%d err=%v", total, len(orders), err)
	}
}
