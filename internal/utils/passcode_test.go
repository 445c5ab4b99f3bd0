package utils

import (
	"regexp"
	"testing"
)

func TestNewPassCodeFormat(t *testing.T) {
	re := regexp.MustCompile(`^SC-\d{4}$`)
	for i := 0; i < 200; i++ {
		code, err := NewPassCode()
		if err != nil {
			t.Fatalf("NewPassCode: %v", err)
		}
		if !re.MatchString(code) {
			t.Fatalf("pass code %q does not match SC-NNNN", code)
		}
	}
}
