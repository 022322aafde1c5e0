package validation

import (
	"reflect"
	"testing"

	"weather-info/internal/apperrors"
)

func TestParseSlotTime(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"10:07", "10:00"},
		{"10:29", "10:00"},
		{"10:30", "11:00"},
		{"10:37", "11:00"},
		{"23:45", "00:00"},
		{"00:00", "00:00"},
		{" 12:00 ", "12:00"},
	}
	for _, tt := range tests {
		got, err := ParseSlotTime(tt.in)
		if err != nil {
			t.Fatalf("ParseSlotTime(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseSlotTime(%q)=%q want=%q", tt.in, got, tt.want)
		}
	}
}

func TestParseSlotTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "noon", "25:00", "12:60", "12-00"} {
		if _, err := ParseSlotTime(in); !apperrors.Is(err, apperrors.KindValidation) {
			t.Fatalf("ParseSlotTime(%q) err=%v want validation error", in, err)
		}
	}
}

func TestParseParams(t *testing.T) {
	got, err := ParseParams("temperature, Humidity,temperature")
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	want := []string{"temperature", "humidity"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}

	got, err = ParseParams("")
	if err != nil {
		t.Fatalf("ParseParams empty: %v", err)
	}
	if !reflect.DeepEqual(got, DefaultParams) {
		t.Fatalf("got=%v want=%v", got, DefaultParams)
	}

	if _, err := ParseParams("temperature,visibility"); !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("err=%v want validation error", err)
	}
}
