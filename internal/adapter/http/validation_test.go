package http

import (
	"errors"
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func u64(v uint64) *uint64 { return &v }

func TestHolderRule(t *testing.T) {
	cv := NewValidator()

	for name, req := range map[string]assignReq{
		"person only":   {ProductID: 1, PersonID: u64(3)},
		"location only": {ProductID: 1, LocationID: u64(4)},
		"both":          {ProductID: 1, PersonID: u64(3), LocationID: u64(4)},
	} {
		if err := cv.Validate(&req); err != nil {
			t.Fatalf("%s: expected valid, got %v", name, err)
		}
	}

	err := cv.Validate(&assignReq{ProductID: 1})
	if err == nil {
		t.Fatalf("expected holder error")
	}
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "person_id", "person_id or location_id is required") {
		t.Fatalf("missing holder message: %+v", fe)
	}

	err = cv.Validate(&updateAssignmentReq{Status: "active"})
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "person_id", "location_id") {
		t.Fatalf("update request must apply the holder rule too: %+v", fe)
	}
}

func TestEnumValidations(t *testing.T) {
	cv := NewValidator()

	if err := cv.Validate(&createRequestReq{Kind: "maintenance", Title: "x"}); err != nil {
		t.Fatalf("maintenance kind should pass: %v", err)
	}
	fe := ToFieldErrors(cv.Validate(&createRequestReq{Kind: "holiday", Title: "x"}))
	if !containsFieldMsg(fe, "kind", "not a known request kind") {
		t.Fatalf("missing kind message: %+v", fe)
	}

	if err := cv.Validate(&setStatusReq{Status: "awaiting_repair"}); err != nil {
		t.Fatalf("awaiting_repair should pass: %v", err)
	}
	fe = ToFieldErrors(cv.Validate(&setStatusReq{Status: "on_loan"}))
	if !containsFieldMsg(fe, "status", "must be one of available") {
		t.Fatalf("missing product status message: %+v", fe)
	}

	fe = ToFieldErrors(cv.Validate(&updateAssignmentReq{PersonID: u64(1), Status: "misplaced"}))
	if !containsFieldMsg(fe, "status", "active, returned, lost") {
		t.Fatalf("missing assignment status message: %+v", fe)
	}

	// empty status on create means "available"
	if err := cv.Validate(&createProductReq{Name: "Pump"}); err != nil {
		t.Fatalf("empty optional status should pass: %v", err)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&assignReq{PersonID: u64(1), Note: strings.Repeat("n", 2001)})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "product_id", "is required") {
		t.Fatalf("missing 'is required' for product_id: %+v", fe)
	}
	if !containsFieldMsg(fe, "note", "at most 2000") {
		t.Fatalf("missing max message for note: %+v", fe)
	}

	// requester_id is optional and defaults to the caller
	if err := cv.Validate(&createRequestReq{Kind: "cari_edit", Title: "x"}); err != nil {
		t.Fatalf("unexpected errors: %v", err)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
