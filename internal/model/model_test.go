package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kiwari-pos/kds/internal/enum"
)

func TestLineItemRef(t *testing.T) {
	masterID := uuid.New()
	menuItemID := uuid.New()

	tests := []struct {
		name string
		li   LineItem
		want string
	}{
		{"master link wins", LineItem{MasterID: &masterID, MenuItemID: &menuItemID}, masterID.String()},
		{"menu item fallback", LineItem{MenuItemID: &menuItemID}, menuItemID.String()},
		{"no reference", LineItem{Name: "Kerupuk"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.li.Ref(); got != tt.want {
				t.Errorf("Ref() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineItemSubtotal(t *testing.T) {
	li := LineItem{
		Name:      "Nasi Bakar Ayam",
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("35000"),
	}

	want := decimal.RequireFromString("105000")
	if got := li.Subtotal(); !got.Equal(want) {
		t.Errorf("Subtotal() = %s, want %s", got, want)
	}
}

func TestLineItemKitchenStatus(t *testing.T) {
	tests := []struct {
		name string
		li   LineItem
		want string
	}{
		{"untouched", LineItem{Quantity: 2}, enum.ItemStatusPending},
		{"stored cooking", LineItem{Quantity: 2, Status: enum.ItemStatusCooking}, enum.ItemStatusCooking},
		{"counter overrides stale status", LineItem{Quantity: 2, CompletedCount: 2, Status: enum.ItemStatusCooking}, enum.ItemStatusReady},
		{"partial batch", LineItem{Quantity: 3, CompletedCount: 1}, enum.ItemStatusCooking},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.li.KitchenStatus(); got != tt.want {
				t.Errorf("KitchenStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
