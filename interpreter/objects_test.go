package interpreter

import "testing"

func TestLoxNumberStringTrimsTrailingPointZero(t *testing.T) {
	tests := []struct {
		n    loxNumber
		want string
	}{
		{3, "3"},
		{3.5, "3.5"},
		{0, "0"},
		{-2, "-2"},
		{1.25, "1.25"},
	}
	for _, test := range tests {
		if got := test.n.String(); got != test.want {
			t.Errorf("loxNumber(%v).String() = %q, want %q", float64(test.n), got, test.want)
		}
	}
}

func TestLoxBoolString(t *testing.T) {
	if got := loxBool(true).String(); got != "true" {
		t.Errorf("loxBool(true).String() = %q, want %q", got, "true")
	}
	if got := loxBool(false).String(); got != "false" {
		t.Errorf("loxBool(false).String() = %q, want %q", got, "false")
	}
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		v    loxObject
		want bool
	}{
		{theNil, false},
		{loxBool(false), false},
		{loxBool(true), true},
		{loxNumber(0), true}, // only nil and false are falsy
		{loxString(""), true},
	}
	for _, test := range tests {
		if got := isTruthy(test.v); got != test.want {
			t.Errorf("isTruthy(%v) = %v, want %v", test.v, got, test.want)
		}
	}
}

func TestEqualsScalarsByValue(t *testing.T) {
	if !equals(loxNumber(1), loxNumber(1)) {
		t.Error("equals(1, 1) = false, want true")
	}
	if equals(loxNumber(1), loxNumber(2)) {
		t.Error("equals(1, 2) = true, want false")
	}
	if equals(loxNumber(1), loxString("1")) {
		t.Error("equals(1, \"1\") = true, want false (no cross-type equality)")
	}
	if !equals(theNil, theNil) {
		t.Error("equals(nil, nil) = false, want true")
	}
	if equals(theNil, loxBool(false)) {
		t.Error("equals(nil, false) = true, want false")
	}
}

func TestEqualsInstancesByIdentity(t *testing.T) {
	class := &LoxClass{name: "A", methods: map[string]*LoxFunction{}}
	a := &loxInstance{class: class, fields: map[string]loxObject{}}
	b := &loxInstance{class: class, fields: map[string]loxObject{}}
	if equals(a, b) {
		t.Error("equals(a, b) = true for two distinct instances, want false")
	}
	if !equals(a, a) {
		t.Error("equals(a, a) = false, want true")
	}
}
