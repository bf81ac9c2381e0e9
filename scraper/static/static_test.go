package static

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sedama0217-sketch/PMserch/config"
	"github.com/sedama0217-sketch/PMserch/models"
	"github.com/sedama0217-sketch/PMserch/utils"
)

const fixtureHTML = `<!DOCTYPE html>
<html><body>
<ul class="product-list">
  <li class="product-item">
    <a href="/products/dimoo"><h3 class="product-name">DIMOO Space Series</h3></a>
    <img src="/img/dimoo.jpg">
    <span class="stock-label">在庫あり</span>
  </li>
  <li class="product-item">
    <a data-href="/products/molly"><h3 class="product-name">MOLLY Career Series</h3></a>
    <img data-src="/img/molly.jpg">
    <span class="stock-label">売り切れ</span>
  </li>
  <li class="product-item">
    <a href="/products/nameless"></a>
    <span class="stock-label">sold out</span>
  </li>
  <li class="product-item">
    <span class="stock-label">orphan block, no name, no link</span>
  </li>
  <li class="product-item">
    <h3 class="product-name">No Link Item</h3>
  </li>
</ul>
</body></html>`

func testConfig(url string) *config.Config {
	return &config.Config{
		URL:  url,
		Mode: config.ModeStatic,
		Selectors: config.Selectors{
			Item:  "li.product-item",
			Name:  ".product-name",
			Link:  "a",
			Image: "img",
			Stock: ".stock-label",
		},
	}
}

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(fixtureHTML))
	}))
	defer srv.Close()

	s := New(testConfig(srv.URL), utils.NewLogger())
	items, err := s.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := []models.RawItem{
		{Name: "DIMOO Space Series", URL: "/products/dimoo", Image: "/img/dimoo.jpg", StockText: "在庫あり"},
		{Name: "MOLLY Career Series", URL: "/products/molly", Image: "/img/molly.jpg", StockText: "売り切れ"},
		{Name: "unknown", URL: "/products/nameless", StockText: "sold out"},
		{Name: "No Link Item"},
	}

	if len(items) != len(want) {
		t.Fatalf("got %d items; want %d (the orphan block must be skipped): %+v", len(items), len(want), items)
	}
	for i, w := range want {
		if items[i] != w {
			t.Errorf("item %d = %+v; want %+v", i, items[i], w)
		}
	}
}

func TestExtractAttributeFallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<li class="product-item">
			<a data-url="/products/deep"><span class="product-name">Deep Fallback</span></a>
		</li>`))
	}))
	defer srv.Close()

	s := New(testConfig(srv.URL), utils.NewLogger())
	items, err := s.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(items) != 1 || items[0].URL != "/products/deep" {
		t.Errorf("data-url fallback not honoured: %+v", items)
	}
}

func TestExtractHTTPErrorIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := New(testConfig(srv.URL), utils.NewLogger())
	if _, err := s.Extract(context.Background()); err == nil {
		t.Error("non-2xx page fetch must fail the extraction")
	}
}

func TestExtractEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>nothing for sale</p></body></html>`))
	}))
	defer srv.Close()

	s := New(testConfig(srv.URL), utils.NewLogger())
	items, err := s.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected zero items, got %+v", items)
	}
}
