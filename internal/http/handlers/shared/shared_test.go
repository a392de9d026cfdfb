package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizePagination(t *testing.T) {
	page, size := NormalizePagination(0, 0, 12)
	if page != 1 || size != 12 {
		t.Fatalf("default want 1/12 got %d/%d", page, size)
	}
	_, size = NormalizePagination(2, 500, 12)
	if size != 100 {
		t.Fatalf("page size cap want 100 got %d", size)
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(1, 12, 25)
	if p.TotalPage != 3 {
		t.Fatalf("total page want 3 got %d", p.TotalPage)
	}
}

func TestRespondErrorLocalised(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?lang=ru", nil)
	c.Set("request_id", "rid-1")

	RespondError(c, 404, "error.product_not_found", errors.New("boom"))

	var body struct {
		StatusCode int                    `json:"status_code"`
		Msg        string                 `json:"msg"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.StatusCode != 404 {
		t.Fatalf("status code want 404 got %d", body.StatusCode)
	}
	if body.Msg != "Товар не найден" {
		t.Fatalf("unexpected message: %s", body.Msg)
	}
	if body.Data["request_id"] != "rid-1" {
		t.Fatalf("request_id want rid-1 got %v", body.Data["request_id"])
	}
}
