package repository

import (
	"testing"

	"github.com/hopbarley/internal/constants"
	"github.com/hopbarley/internal/models"
)

func TestOrderCreateAndQueryByUser(t *testing.T) {
	db := setupRepositoryTestDB(t)
	products := NewProductRepository(db)
	orders := NewOrderRepository(db)
	product := createTestProduct(t, products, 1, "cascade", 10, true)

	for i, no := range []string{"HB-1", "HB-2"} {
		order := &models.Order{
			OrderNo:       no,
			UserID:        7,
			Status:        constants.OrderStatusPending,
			TotalPrice:    models.MustMoney("200"),
			FullName:      "Ivan",
			Phone:         "+7",
			City:          "Moscow",
			Address:       "Tverskaya 1",
			PaymentMethod: constants.PaymentMethodDebit,
		}
		items := []models.OrderItem{{ProductID: product.ID, Quantity: i + 1, Price: models.MustMoney("100")}}
		if err := orders.Create(order, items); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
		if items[0].OrderID != order.ID {
			t.Fatalf("item order id want %d got %d", order.ID, items[0].OrderID)
		}
	}

	rows, total, err := orders.ListByUser(OrderListFilter{UserID: 7, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("orders want 2 got total=%d rows=%d", total, len(rows))
	}
	if rows[0].OrderNo != "HB-2" {
		t.Fatalf("newest order first want HB-2 got %s", rows[0].OrderNo)
	}
	if len(rows[0].Items) != 1 || rows[0].Items[0].Product.Name != "cascade" {
		t.Fatalf("items with product should be preloaded, got %+v", rows[0].Items)
	}

	other, err := orders.GetByIDAndUser(rows[0].ID, 8)
	if err != nil {
		t.Fatalf("get by other user failed: %v", err)
	}
	if other != nil {
		t.Fatalf("foreign order should not be visible")
	}

	if err := orders.UpdateStatus(rows[0].ID, constants.OrderStatusPaid, map[string]interface{}{"is_paid": true}); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	paid, err := orders.GetByID(rows[0].ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if paid.Status != constants.OrderStatusPaid || !paid.IsPaid {
		t.Fatalf("order should be paid, got status=%s is_paid=%v", paid.Status, paid.IsPaid)
	}
}

func TestUserRepositoryLookups(t *testing.T) {
	db := setupRepositoryTestDB(t)
	users := NewUserRepository(db)
	user := &models.User{Username: "brewer", Email: "brewer@example.com", PasswordHash: "x"}
	if err := users.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	byEmail, err := users.GetByEmail(" Brewer@Example.com ")
	if err != nil || byEmail == nil {
		t.Fatalf("get by email failed: user=%v err=%v", byEmail, err)
	}
	byName, err := users.GetByUsername("brewer")
	if err != nil || byName == nil || byName.ID != user.ID {
		t.Fatalf("get by username failed: user=%v err=%v", byName, err)
	}
	count, err := users.CountByEmail("brewer@example.com", user.ID)
	if err != nil {
		t.Fatalf("count by email failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("self email should not count, got %d", count)
	}
	missing, err := users.GetByID(404)
	if err != nil {
		t.Fatalf("get missing user failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing user should be nil")
	}
}
