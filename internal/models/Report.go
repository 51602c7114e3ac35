package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusResolved = "Resolved"
)

// MaxDescriptionLen bounds the free-text description of a report.
const MaxDescriptionLen = 500

// GarbageTypes is the closed set of report categories.
var GarbageTypes = []string{
	"Plastic",
	"Wet Waste",
	"Medical Waste",
	"Overflowing Bin",
	"Illegal Dumping",
}

var (
	ErrInvalidGarbageType = errors.New("invalid garbage type")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidDescription = errors.New("description must be non-empty and at most 500 characters")
)

type Report struct {
	gorm.Model
	UserID      uint    `json:"user_id"`
	User        *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	GarbageType string  `json:"garbage_type"`
	Description string  `json:"description"`
	Image       string  `json:"image,omitempty"` // stored filename under the upload dir
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Status      string  `json:"status" gorm:"default:Pending"`
}

// IsValidGarbageType reports whether t belongs to the closed category set.
func IsValidGarbageType(t string) bool {
	for _, gt := range GarbageTypes {
		if gt == t {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is one of the two report statuses.
func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusResolved
}

// Validate enforces the report invariants: category and status must come from
// their closed sets and the description must be non-empty within bounds.
func (r *Report) Validate() error {
	if !IsValidGarbageType(r.GarbageType) {
		return ErrInvalidGarbageType
	}
	if r.Status != "" && !IsValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	desc := strings.TrimSpace(r.Description)
	if desc == "" || len(r.Description) > MaxDescriptionLen {
		return ErrInvalidDescription
	}
	return nil
}

// BeforeSave rejects out-of-enum values at the store level.
func (r *Report) BeforeSave(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = StatusPending
	}
	return r.Validate()
}
