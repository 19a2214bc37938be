package models

import "testing"

func TestTotalStock(t *testing.T) {
	p := Product{Sizes: []SizeEntry{
		{Size: 8, Quantity: 3},
		{Size: 9, Quantity: 5},
		{Size: 10, Quantity: 0},
	}}

	if got := p.TotalStock(); got != 8 {
		t.Errorf("TotalStock() = %d, want 8", got)
	}

	empty := Product{}
	if got := empty.TotalStock(); got != 0 {
		t.Errorf("TotalStock() on empty sizes = %d, want 0", got)
	}
}

func TestFindSize(t *testing.T) {
	p := Product{Sizes: []SizeEntry{
		{Size: 8, Quantity: 3},
		{Size: 9.5, Quantity: 2},
	}}

	entry := p.FindSize(9.5)
	if entry == nil {
		t.Fatal("FindSize(9.5) = nil, want entry")
	}
	if entry.Quantity != 2 {
		t.Errorf("entry.Quantity = %d, want 2", entry.Quantity)
	}

	// Mutations through the returned pointer must hit the product.
	entry.Quantity = 7
	if p.Sizes[1].Quantity != 7 {
		t.Errorf("mutation through FindSize pointer not visible, got %d", p.Sizes[1].Quantity)
	}

	if p.FindSize(11) != nil {
		t.Error("FindSize(11) should be nil for an unknown size")
	}
}

func TestValidateSale(t *testing.T) {
	price := 100.0
	low := 80.0
	high := 120.0
	equal := 100.0

	if err := ValidateSale(price, false, nil); err != nil {
		t.Errorf("off-sale product should not need a salePrice: %v", err)
	}
	if err := ValidateSale(price, true, &low); err != nil {
		t.Errorf("salePrice below price should pass: %v", err)
	}
	if err := ValidateSale(price, true, nil); err == nil {
		t.Error("onSale without salePrice should fail")
	}
	if err := ValidateSale(price, true, &high); err == nil {
		t.Error("salePrice above price should fail")
	}
	if err := ValidateSale(price, true, &equal); err == nil {
		t.Error("salePrice equal to price should fail")
	}
}

func TestValidateSizes(t *testing.T) {
	ok := []SizeEntry{{Size: 8, Quantity: 1}, {Size: 9, Quantity: 0}}
	if err := ValidateSizes(ok); err != nil {
		t.Errorf("valid sizes rejected: %v", err)
	}

	dup := []SizeEntry{{Size: 8, Quantity: 1}, {Size: 8, Quantity: 2}}
	if err := ValidateSizes(dup); err == nil {
		t.Error("duplicate size values should fail")
	}

	neg := []SizeEntry{{Size: 8, Quantity: -1}}
	if err := ValidateSizes(neg); err == nil {
		t.Error("negative quantity should fail")
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []OrderStatus{StatusProcessing, StatusShipped, StatusDelivered} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	if ValidStatus("Cancelled") {
		t.Error(`ValidStatus("Cancelled") = true, want false`)
	}
}
