package pagination

import "testing"

func TestToPagedDataMiddlePage(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	page, err := ToPagedData(items, 2, 10)
	if err != nil {
		t.Fatalf("ToPagedData returned error: %v", err)
	}
	if len(page.Items) != 10 {
		t.Errorf("expected 10 items, got %d", len(page.Items))
	}
	if page.Items[0] != 10 {
		t.Errorf("expected first item 10, got %d", page.Items[0])
	}
	if page.TotalCount != 25 {
		t.Errorf("expected total count 25, got %d", page.TotalCount)
	}
	if page.PageCount != 3 {
		t.Errorf("expected page count 3, got %d", page.PageCount)
	}
	if !page.HasNextPage {
		t.Error("expected HasNextPage on page 2 of 3")
	}
	if !page.HasPreviousPage {
		t.Error("expected HasPreviousPage on page 2 of 3")
	}
}

func TestToPagedDataLastPartialPage(t *testing.T) {
	items := make([]int, 25)
	page, err := ToPagedData(items, 3, 10)
	if err != nil {
		t.Fatalf("ToPagedData returned error: %v", err)
	}
	if len(page.Items) != 5 {
		t.Errorf("expected 5 items on the last page, got %d", len(page.Items))
	}
	if page.HasNextPage {
		t.Error("expected no next page on the last page")
	}
	if !page.HasPreviousPage {
		t.Error("expected HasPreviousPage on page 3")
	}
}

func TestToPagedDataBeyondRange(t *testing.T) {
	page, err := ToPagedData([]int{1, 2, 3}, 5, 10)
	if err != nil {
		t.Fatalf("ToPagedData returned error: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("expected empty page beyond range, got %d items", len(page.Items))
	}
	if page.TotalCount != 3 {
		t.Errorf("expected total count 3, got %d", page.TotalCount)
	}
}

func TestInvalidPageArguments(t *testing.T) {
	if _, err := ToPagedData([]int{1}, 0, 10); err == nil {
		t.Error("expected error for page number 0")
	}
	if _, err := ToPagedData([]int{1}, 1, 0); err == nil {
		t.Error("expected error for page size 0")
	}
	if _, err := New([]int{1}, 1, -1, 10); err == nil {
		t.Error("expected error for negative page number")
	}
}

func TestNewEmptyCollection(t *testing.T) {
	page, err := New([]string{}, 0, 1, 20)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if page.PageCount != 0 {
		t.Errorf("expected page count 0 for empty collection, got %d", page.PageCount)
	}
	if page.HasNextPage || page.HasPreviousPage {
		t.Error("expected no next or previous page for empty collection")
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1, 20); got != 0 {
		t.Errorf("expected offset 0 for page 1, got %d", got)
	}
	if got := Offset(3, 10); got != 20 {
		t.Errorf("expected offset 20 for page 3 size 10, got %d", got)
	}
}
