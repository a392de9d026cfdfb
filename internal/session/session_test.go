package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type savedCart struct {
	Items map[string]int `json:"items"`
}

func openCommitted(t *testing.T, m *Manager, values map[string]interface{}) string {
	t.Helper()
	ctx := context.Background()
	s, err := m.Open(ctx, "")
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	for key, value := range values {
		if err := s.Set(key, value); err != nil {
			t.Fatalf("set %s failed: %v", key, err)
		}
	}
	if err := m.Commit(ctx, s); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	return s.ID()
}

func TestManagerOpenCommitRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, time.Hour)
	ctx := context.Background()

	id := openCommitted(t, m, map[string]interface{}{"cart": savedCart{Items: map[string]int{"7": 2}}})

	s, err := m.Open(ctx, id)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if s.IsNew() {
		t.Fatalf("reopened session should not be new")
	}
	var got savedCart
	found, err := s.Get("cart", &got)
	if err != nil || !found {
		t.Fatalf("get cart failed: found=%v err=%v", found, err)
	}
	if got.Items["7"] != 2 {
		t.Fatalf("cart item want 2 got %d", got.Items["7"])
	}
	if s.Modified() {
		t.Fatalf("read-only access should not mark session modified")
	}
}

func TestManagerOpenRejectsUnknownID(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)
	s, err := m.Open(context.Background(), "attacker-chosen")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if s.ID() == "attacker-chosen" || !s.IsNew() {
		t.Fatalf("unknown id must not be reused, got %s", s.ID())
	}
}

func TestCommitWritesOnlyDirtyKeys(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, time.Hour)
	ctx := context.Background()
	id := openCommitted(t, m, map[string]interface{}{"a": 1, "b": 2})

	first, _ := m.Open(ctx, id)
	second, _ := m.Open(ctx, id)
	_ = first.Set("a", 10)
	second.Delete("b")
	if err := m.Commit(ctx, first); err != nil {
		t.Fatalf("commit first failed: %v", err)
	}
	if err := m.Commit(ctx, second); err != nil {
		t.Fatalf("commit second failed: %v", err)
	}

	values, ok, err := store.Load(ctx, id)
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if string(values["a"]) != "10" {
		t.Fatalf("a want 10 got %s", string(values["a"]))
	}
	if _, exists := values["b"]; exists {
		t.Fatalf("b should be deleted")
	}
}

func TestTakeConsumesOnce(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, time.Hour)
	ctx := context.Background()
	id := openCommitted(t, m, map[string]interface{}{"cart_before_login": savedCart{Items: map[string]int{"1": 3}}, "cart": 1})

	first, _ := m.Open(ctx, id)
	second, _ := m.Open(ctx, id)

	var got savedCart
	found, err := first.Take(ctx, "cart_before_login", &got)
	if err != nil || !found {
		t.Fatalf("first take failed: found=%v err=%v", found, err)
	}
	if got.Items["1"] != 3 {
		t.Fatalf("taken value want 3 got %d", got.Items["1"])
	}

	found, err = second.Take(ctx, "cart_before_login", &got)
	if err != nil {
		t.Fatalf("second take failed: %v", err)
	}
	if found {
		t.Fatalf("second take should not see consumed value")
	}
	if first.Has("cart_before_login") {
		t.Fatalf("taken key should be gone locally")
	}
}

func TestTakePendingValueStaysLocal(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)
	ctx := context.Background()
	s, _ := m.Open(ctx, "")
	_ = s.Set("saved_cart", map[string]int{"2": 1})

	var got map[string]int
	found, err := s.Take(ctx, "saved_cart", &got)
	if err != nil || !found {
		t.Fatalf("take pending failed: found=%v err=%v", found, err)
	}
	if got["2"] != 1 {
		t.Fatalf("pending value want 1 got %d", got["2"])
	}
}

func TestCycleKeepsDataAndDestroysOldID(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, time.Hour)
	ctx := context.Background()
	oldID := openCommitted(t, m, map[string]interface{}{"cart": 5})

	s, _ := m.Open(ctx, oldID)
	m.Cycle(s)
	if s.ID() == oldID {
		t.Fatalf("cycle should change session id")
	}
	if err := m.Commit(ctx, s); err != nil {
		t.Fatalf("commit cycled session failed: %v", err)
	}
	if _, ok, _ := store.Load(ctx, oldID); ok {
		t.Fatalf("old session should be destroyed")
	}
	reopened, _ := m.Open(ctx, s.ID())
	var cart int
	if found, _ := reopened.Get("cart", &cart); !found || cart != 5 {
		t.Fatalf("cycled data want 5 got found=%v value=%d", found, cart)
	}
}

func TestFlushDropsData(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, time.Hour)
	ctx := context.Background()
	oldID := openCommitted(t, m, map[string]interface{}{"cart": 5})

	s, _ := m.Open(ctx, oldID)
	m.Flush(s)
	if err := m.Commit(ctx, s); err != nil {
		t.Fatalf("commit flushed session failed: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("flushed session should leave store empty, got %d", store.Len())
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()
	if err := store.Save(ctx, "id", Changes{Set: map[string]json.RawMessage{"k": json.RawMessage(`1`)}}, time.Minute); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, ok, _ := store.Load(ctx, "id"); ok {
		t.Fatalf("expired session should not load")
	}
}

func TestWriteCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	s := newSession(NewMemoryStore(), "sid-1", nil, true)
	WriteCookie(c, CookieOptions{Name: "hb_session", MaxAge: 60, SameSite: ParseSameSite("strict")}, s)
	header := w.Header().Get("Set-Cookie")
	if !strings.Contains(header, "hb_session=sid-1") || !strings.Contains(header, "HttpOnly") {
		t.Fatalf("cookie header unexpected: %s", header)
	}
	if !strings.Contains(header, "SameSite=Strict") {
		t.Fatalf("cookie should carry SameSite=Strict, got %s", header)
	}
}
