package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextWithQuery(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(contextWithQuery(""), Limits{Default: 30, Max: 30})
	if p.Limit != 30 {
		t.Errorf("expected default limit 30, got %d", p.Limit)
	}
}

func TestFromContext_CustomValue(t *testing.T) {
	p := FromContext(contextWithQuery("?limit=5"), Limits{Default: 30, Max: 30})
	if p.Limit != 5 {
		t.Errorf("expected limit 5, got %d", p.Limit)
	}
}

func TestFromContext_MaxLimit(t *testing.T) {
	p := FromContext(contextWithQuery("?limit=500"), Limits{Default: 20, Max: 20})
	if p.Limit != 20 {
		t.Errorf("expected limit capped at 20, got %d", p.Limit)
	}
}

func TestFromContext_InvalidValues(t *testing.T) {
	for _, q := range []string{"?limit=abc", "?limit=-1", "?limit=0", "?limit="} {
		p := FromContext(contextWithQuery(q), Limits{Default: 20, Max: 20})
		if p.Limit != 20 {
			t.Errorf("%s: expected default limit 20, got %d", q, p.Limit)
		}
	}
}

func TestFromContext_NoMax(t *testing.T) {
	p := FromContext(contextWithQuery("?limit=1000"), Limits{Default: 10})
	if p.Limit != 1000 {
		t.Errorf("expected uncapped limit, got %d", p.Limit)
	}
}
