package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(query string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor("")

	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected default offset 0, got %d", p.Offset)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	p := paramsFor("?limit=50&offset=10")

	if p.Limit != 50 {
		t.Errorf("expected limit 50, got %d", p.Limit)
	}
	if p.Offset != 10 {
		t.Errorf("expected offset 10, got %d", p.Offset)
	}
}

func TestFromContext_ClampsLimit(t *testing.T) {
	if p := paramsFor("?limit=5000"); p.Limit != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
	if p := paramsFor("?limit=-3"); p.Limit != DefaultLimit {
		t.Errorf("expected default limit for negative input, got %d", p.Limit)
	}
}

func TestFromContext_NegativeOffset(t *testing.T) {
	if p := paramsFor("?offset=-10"); p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestFromContext_InvalidNumbers(t *testing.T) {
	p := paramsFor("?limit=abc&offset=xyz")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("expected defaults for invalid input, got %+v", p)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	resp := NewResponse([]int{1, 2}, 5, Params{Limit: 2, Offset: 0})
	if !resp.HasMore {
		t.Error("expected has_more with 5 total and first page of 2")
	}
	resp = NewResponse([]int{5}, 5, Params{Limit: 2, Offset: 4})
	if resp.HasMore {
		t.Error("expected no more results on last page")
	}
}

func TestNewResponse_NilData(t *testing.T) {
	resp := NewResponse[string](nil, 0, Params{Limit: 20})
	if resp.Data == nil || len(resp.Data) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", resp.Data)
	}
}

func TestWithNextLink(t *testing.T) {
	resp := NewResponse([]int{1, 2}, 5, Params{Limit: 2, Offset: 2}).WithNextLink("/api/v1/readings")
	if resp.Next != "/api/v1/readings?limit=2&offset=4" {
		t.Errorf("unexpected next link %q", resp.Next)
	}

	last := NewResponse([]int{5}, 5, Params{Limit: 2, Offset: 4}).WithNextLink("/api/v1/readings")
	if last.Next != "" {
		t.Errorf("expected no next link on last page, got %q", last.Next)
	}
}
