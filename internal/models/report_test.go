package models

import (
	"strings"
	"testing"
)

func validReport() Report {
	return Report{
		UserID:      1,
		GarbageType: "Plastic",
		Description: "overflowing bags next to the bus stop",
		Latitude:    -1.2921,
		Longitude:   36.8219,
		Status:      StatusPending,
	}
}

func TestReportValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Report)
		wantErr error
	}{
		{"valid", func(r *Report) {}, nil},
		{"unknown garbage type", func(r *Report) { r.GarbageType = "Nuclear Waste" }, ErrInvalidGarbageType},
		{"empty garbage type", func(r *Report) { r.GarbageType = "" }, ErrInvalidGarbageType},
		{"unknown status", func(r *Report) { r.Status = "InProgress" }, ErrInvalidStatus},
		{"resolved status ok", func(r *Report) { r.Status = StatusResolved }, nil},
		{"empty description", func(r *Report) { r.Description = "   " }, ErrInvalidDescription},
		{"over-long description", func(r *Report) { r.Description = strings.Repeat("x", MaxDescriptionLen+1) }, ErrInvalidDescription},
		{"max-length description ok", func(r *Report) { r.Description = strings.Repeat("x", MaxDescriptionLen) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReport()
			tt.mutate(&r)
			if err := r.Validate(); err != tt.wantErr {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEveryGarbageTypeIsValid(t *testing.T) {
	for _, gt := range GarbageTypes {
		if !IsValidGarbageType(gt) {
			t.Fatalf("garbage type %q should be valid", gt)
		}
	}
	if IsValidGarbageType("plastic") {
		t.Fatal("garbage type matching must be case sensitive")
	}
}
