package service

import (
	"errors"
	"strconv"
	"testing"

	"github.com/hopbarley/internal/constants"
	"github.com/hopbarley/internal/models"
)

func TestCartServiceAddAndTotals(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	malt := f.product(t, "Caramel Malt 60L", "450.00", 100, true)

	c, err := f.cartService.Open(sess, 0)
	if err != nil {
		t.Fatalf("open cart failed: %v", err)
	}
	result, err := f.cartService.Add(c, malt.ID, 2)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if result.Status != constants.CartResultSuccess || result.MessageKey != "cart.added" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.MessageArgs[0] != "Caramel Malt 60L" {
		t.Fatalf("message arg want product name got %v", result.MessageArgs)
	}
	if result.ItemsCount != 2 || result.Total.StringFixed(2) != "900.00" {
		t.Fatalf("count/total want 2/900.00 got %d/%s", result.ItemsCount, result.Total.StringFixed(2))
	}

	var stored map[string]map[string]interface{}
	if ok, err := sess.Get("cart", &stored); err != nil || !ok {
		t.Fatalf("cart should be stored in session: ok=%v err=%v", ok, err)
	}
	line := stored[strconv.FormatUint(uint64(malt.ID), 10)]
	if _, isString := line["price"].(string); !isString {
		t.Fatalf("price should be stored as string, got %T", line["price"])
	}
	if !sess.Modified() {
		t.Fatalf("session should be marked modified")
	}
}

func TestCartServiceAddStockResults(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	hops := f.product(t, "Citra Hops", "420.00", 5, true)
	c, _ := f.cartService.Open(sess, 0)

	result, err := f.cartService.Add(c, hops.ID, 6)
	if err != nil {
		t.Fatalf("stock exceeded should not be an error: %v", err)
	}
	if result.Status != constants.CartResultError || result.MessageKey != "cart.stock_available" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.MessageArgs[0] != 5 || result.MessageArgs[1] != 6 {
		t.Fatalf("args want [5 6] got %v", result.MessageArgs)
	}
	if !c.IsEmpty() {
		t.Fatalf("failed add must not create a line")
	}

	if _, err := f.cartService.Add(c, hops.ID, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	result, err = f.cartService.Add(c, hops.ID, 3)
	if err != nil {
		t.Fatalf("additive overflow should not be an error: %v", err)
	}
	if result.MessageKey != "cart.stock_max_available" || result.MessageArgs[0] != 5 {
		t.Fatalf("unexpected additive result: %+v", result)
	}
	if result.ItemsCount != 3 {
		t.Fatalf("count want 3 got %d", result.ItemsCount)
	}
}

func TestCartServiceAddRejects(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	inactive := f.product(t, "Old Yeast", "100.00", 10, false)
	active := f.product(t, "Saaz Hops", "380.00", 10, true)
	c, _ := f.cartService.Open(sess, 0)

	if _, err := f.cartService.Add(c, inactive.ID, 1); !errors.Is(err, ErrProductInactive) {
		t.Fatalf("inactive want ErrProductInactive got %v", err)
	}
	if _, err := f.cartService.Add(c, 9999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing want ErrProductNotFound got %v", err)
	}
	if _, err := f.cartService.Add(c, active.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("zero quantity want ErrInvalidQuantity got %v", err)
	}
	if c.LineCount() != 0 {
		t.Fatalf("rejected adds must not create lines")
	}
}

func TestCartServiceUpdate(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	malt := f.product(t, "Pilsner Malt", "480.00", 10, true)
	c, _ := f.cartService.Open(sess, 0)
	if _, err := f.cartService.Add(c, malt.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 价格变化不影响已有行的快照
	if err := f.db.Model(&models.Product{}).Where("id = ?", malt.ID).Update("price", models.MustMoney("999.00")).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	result, err := f.cartService.Update(c, malt.ID, 4)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if result.MessageKey != "cart.updated" || result.ItemTotal.StringFixed(2) != "1920.00" {
		t.Fatalf("unexpected update result: key=%s item_total=%s", result.MessageKey, result.ItemTotal.StringFixed(2))
	}

	result, err = f.cartService.Update(c, malt.ID, 11)
	if err != nil {
		t.Fatalf("update overflow should not be an error: %v", err)
	}
	if result.Status != constants.CartResultError || result.MessageKey != "cart.stock_available" {
		t.Fatalf("unexpected overflow result: %+v", result)
	}
	if line, _ := c.Line(malt.ID); line.Quantity != 4 {
		t.Fatalf("quantity should stay 4 got %d", line.Quantity)
	}

	result, err = f.cartService.Update(c, malt.ID, 0)
	if err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	if result.MessageKey != "cart.item_removed" || !result.ItemTotal.IsZero() || !c.IsEmpty() {
		t.Fatalf("update to zero should remove line: %+v", result)
	}
}

func TestCartServiceRemoveIsIdempotent(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	malt := f.product(t, "Maris Otter", "520.00", 10, true)
	hops := f.product(t, "Mosaic Hops", "400.00", 10, true)
	c, _ := f.cartService.Open(sess, 0)
	_, _ = f.cartService.Add(c, malt.ID, 1)
	_, _ = f.cartService.Add(c, hops.ID, 2)

	first, err := f.cartService.Remove(c, malt.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	second, err := f.cartService.Remove(c, malt.ID)
	if err != nil {
		t.Fatalf("second remove should be a noop: %v", err)
	}
	if first.ItemsCount != second.ItemsCount || !first.Total.Equal(second.Total) {
		t.Fatalf("remove twice should equal remove once: %+v vs %+v", first, second)
	}
	if second.MessageKey != "cart.removed" || second.ItemsCount != 2 {
		t.Fatalf("unexpected remove result: %+v", second)
	}
	if _, err := f.cartService.Remove(c, 9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("remove missing product want ErrProductNotFound got %v", err)
	}
}

func TestCartServiceViewSkipsInactive(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	malt := f.product(t, "Unmalted Wheat", "380.00", 10, true)
	hops := f.product(t, "Cascade Hops", "320.00", 10, true)
	c, _ := f.cartService.Open(sess, 0)
	_, _ = f.cartService.Add(c, malt.ID, 1)
	_, _ = f.cartService.Add(c, hops.ID, 1)

	if err := f.db.Model(&models.Product{}).Where("id = ?", hops.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	view, err := f.cartService.View(c)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].ProductID != malt.ID {
		t.Fatalf("view should only list active products: %+v", view.Items)
	}
	if view.LineCount != 2 {
		t.Fatalf("stored lines are kept, line count want 2 got %d", view.LineCount)
	}
}

func TestCartServiceSaveBeforeLogin(t *testing.T) {
	f := newServiceFixture(t)
	_, sess := newTestSession(t)
	c, _ := f.cartService.Open(sess, 0)

	result, err := f.cartService.SaveBeforeLogin(sess, c)
	if err != nil {
		t.Fatalf("save empty cart failed: %v", err)
	}
	if result.Status != constants.CartResultEmpty || sess.Has("cart_before_login") {
		t.Fatalf("empty cart should not be saved: %+v", result)
	}

	malt := f.product(t, "Caramel Malt", "450.00", 10, true)
	_, _ = f.cartService.Add(c, malt.ID, 3)
	result, err = f.cartService.SaveBeforeLogin(sess, c)
	if err != nil {
		t.Fatalf("save cart failed: %v", err)
	}
	if result.MessageKey != "cart.saved" || result.MessageArgs[0] != 3 {
		t.Fatalf("unexpected save result: %+v", result)
	}
	if !sess.Has("cart_before_login") {
		t.Fatalf("snapshot should be stored under cart_before_login")
	}
}
