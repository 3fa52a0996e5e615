package pagination

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Params
		wantPage  int
		wantLimit int
	}{
		{"defaults", Params{}, 1, 20},
		{"negative", Params{Page: -3, Limit: -1}, 1, 20},
		{"kept", Params{Page: 4, Limit: 50}, 4, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("Normalize() = %+v, want page=%d limit=%d", got, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 3, Limit: 20}).Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
	if got := (Params{}).Offset(); got != 0 {
		t.Errorf("Offset() on zero params = %d, want 0", got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 7, 15},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestNewPagedEmpty(t *testing.T) {
	page := NewPaged[int](nil, 0, Params{Page: 9})
	if page.Data == nil || len(page.Data) != 0 {
		t.Fatalf("empty page should carry an empty, non-nil data slice")
	}
	if page.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", page.TotalPages)
	}
	if page.Page != 9 {
		t.Errorf("Page = %d, want 9", page.Page)
	}
}
