package model

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{
		StatusCreated, StatusShippedToDistributor, StatusAtDistributor,
		StatusShippedToRetailer, StatusAtRetailer, StatusSold,
	} {
		got, err := ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStatus(%q) = %q", s, got)
		}
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "created", "Shipped", "Delivered"} {
		_, err := ParseStatus(s)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseStatus(%q): expected ErrInvalidArgument, got %v", s, err)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleManufacturer, RoleDistributor, RoleRetailer} {
		if !ValidRole(r) {
			t.Errorf("expected %q to be a valid role", r)
		}
	}
	if ValidRole("admin") || ValidRole("") {
		t.Error("expected non-participant roles to be invalid")
	}
}
