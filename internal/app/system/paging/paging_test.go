package paging

import (
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestCompute_Clamps(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		page, per int
		want      Window
	}{
		{"empty", 0, 1, 10, Window{Page: 1, PerPage: 10, Total: 0, TotalPages: 1}},
		{"page past end", 57, 9, 10, Window{Page: 6, PerPage: 10, Total: 57, TotalPages: 6}},
		{"page zero", 57, 0, 25, Window{Page: 1, PerPage: 25, Total: 57, TotalPages: 3}},
		{"unknown per page", 30, 2, 7, Window{Page: 2, PerPage: 10, Total: 30, TotalPages: 3}},
		{"exact fit", 100, 1, 100, Window{Page: 1, PerPage: 100, Total: 100, TotalPages: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.total, tt.page, tt.per); got != tt.want {
				t.Errorf("Compute(%d, %d, %d) = %+v, want %+v", tt.total, tt.page, tt.per, got, tt.want)
			}
		})
	}
}

func TestRange(t *testing.T) {
	if got := Compute(0, 1, 10).Range(); got != (Range{}) {
		t.Errorf("empty range = %+v, want zero", got)
	}
	if got := Compute(57, 6, 10).Range(); got != (Range{Start: 51, End: 57}) {
		t.Errorf("last page range = %+v", got)
	}
	if got := Compute(57, 2, 25).Range(); got != (Range{Start: 26, End: 50}) {
		t.Errorf("middle page range = %+v", got)
	}
}

func TestPrevNext(t *testing.T) {
	w := Compute(30, 1, 10)
	if w.HasPrev() || !w.HasNext() || w.PrevPage() != 1 || w.NextPage() != 2 {
		t.Errorf("first page prev/next wrong: %+v", w)
	}
	w = Compute(30, 3, 10)
	if !w.HasPrev() || w.HasNext() || w.NextPage() != 3 {
		t.Errorf("last page prev/next wrong: %+v", w)
	}
}

func pages(links []Link) []int {
	var out []int
	for _, l := range links {
		if l.Gap {
			out = append(out, 0)
			continue
		}
		out = append(out, l.Page)
	}
	return out
}

func TestLinks(t *testing.T) {
	tests := []struct {
		page, totalPages int
		want             []int // 0 marks a gap
	}{
		{1, 1, []int{1}},
		{1, 5, []int{1, 2, 3, 4, 5}},
		{1, 10, []int{1, 2, 3, 0, 10}},
		{5, 10, []int{1, 0, 3, 4, 5, 6, 7, 0, 10}},
		{10, 10, []int{1, 0, 8, 9, 10}},
		{4, 10, []int{1, 2, 3, 4, 5, 6, 0, 10}},
	}
	for _, tt := range tests {
		w := Compute(tt.totalPages*10, tt.page, 10)
		if got := pages(w.Links()); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Links(page=%d of %d) = %v, want %v", tt.page, tt.totalPages, got, tt.want)
		}
	}
}

func TestLinks_MarksCurrent(t *testing.T) {
	for _, l := range Compute(50, 3, 10).Links() {
		if l.Current != (l.Page == 3) {
			t.Errorf("link %+v current flag wrong", l)
		}
	}
}

func TestSlice(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if got := Slice(rows, Compute(len(rows), 2, 10)); !reflect.DeepEqual(got, []int{11, 12}) {
		t.Errorf("Slice page 2 = %v", got)
	}
	if got := Slice([]int{}, Compute(0, 1, 10)); len(got) != 0 {
		t.Errorf("Slice empty = %v", got)
	}
}

func TestParse(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?page=3&per=50", nil)
	if ParsePage(r) != 3 || ParsePerPage(r) != 50 {
		t.Errorf("ParsePage/ParsePerPage = %d/%d", ParsePage(r), ParsePerPage(r))
	}
	r = httptest.NewRequest("GET", "/x?page=-2&per=13", nil)
	if ParsePage(r) != 1 || ParsePerPage(r) != DefaultPerPage {
		t.Errorf("bad values not defaulted: %d/%d", ParsePage(r), ParsePerPage(r))
	}
}
