package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		want  Page
		wantS int64
	}{
		{"defaults", "/tasks", Page{Number: 1, Limit: PageSize}, 0},
		{"explicit", "/tasks?page=3&limit=20", Page{Number: 3, Limit: 20}, 40},
		{"clamped", "/tasks?limit=5000", Page{Number: 1, Limit: MaxPageSize}, 0},
		{"zero page", "/tasks?page=0", Page{Number: 1, Limit: PageSize}, 0},
		{"garbage", "/tasks?page=abc&limit=-1", Page{Number: 1, Limit: PageSize}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(httptest.NewRequest("GET", tt.url, nil))
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.url, got, tt.want)
			}
			if got.Skip() != tt.wantS {
				t.Errorf("Skip() = %d, want %d", got.Skip(), tt.wantS)
			}
		})
	}
}

func TestSetHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	Page{Number: 2, Limit: 10}.SetHeaders(rec, 37)

	if got := rec.Header().Get("X-Total-Count"); got != "37" {
		t.Errorf("X-Total-Count = %q", got)
	}
	if got := rec.Header().Get("X-Page"); got != "2" {
		t.Errorf("X-Page = %q", got)
	}
	if got := rec.Header().Get("X-Limit"); got != "10" {
		t.Errorf("X-Limit = %q", got)
	}
}
