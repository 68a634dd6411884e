package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{"+14155552671", "14155552671", "+91 98765 43210", "(415) 555-2671"}
	for _, phone := range valid {
		if !ValidatePhone(phone) {
			t.Errorf("expected %q to be valid", phone)
		}
	}

	invalid := []string{"", "abc", "+0123", "0415555", "+1 (415) 555-CALL"}
	for _, phone := range invalid {
		if ValidatePhone(phone) {
			t.Errorf("expected %q to be invalid", phone)
		}
	}
}
