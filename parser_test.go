package dejson

import (
	"strings"
	"testing"
)

func TestParser_TrailingInput(t *testing.T) {
	var out any
	err := Unmarshal([]byte(`{"a":1} x`), &out)
	if err == nil {
		t.Fatal("expected trailing input error")
	}
	fault, ok := err.(*Error)
	if !ok || fault.Kind != ErrorFormat {
		t.Fatalf("expected format error, got %v", err)
	}
	if !strings.Contains(fault.Message, "trailing") && !strings.Contains(fault.Message, "invalid character") {
		t.Fatalf("unexpected message: %v", fault)
	}
}

func TestParser_TrailingValue(t *testing.T) {
	var out int
	err := Unmarshal([]byte(`1 2`), &out)
	if err == nil {
		t.Fatal("expected trailing input error")
	}
	fault := err.(*Error)
	if fault.Kind != ErrorFormat || fault.Line != 1 || fault.Column != 3 {
		t.Fatalf("expected format error at 1:3, got %v", fault)
	}
}

func TestParser_UnterminatedObject(t *testing.T) {
	var out map[string]any
	err := Unmarshal([]byte(`{`), &out)
	if err == nil {
		t.Fatal("expected error")
	}
	fault := err.(*Error)
	if fault.Kind != ErrorFormat || fault.Line != 1 || fault.Column != 2 {
		t.Fatalf("expected format error at 1:2, got %v", fault)
	}
}

func TestParser_ErrorPositionMultiline(t *testing.T) {
	input := "{\n  \"a\": 1,\n  \"b\": tru\n}"
	var out map[string]any
	err := Unmarshal([]byte(input), &out)
	if err == nil {
		t.Fatal("expected error")
	}
	fault := err.(*Error)
	if fault.Line != 3 || fault.Column != 8 {
		t.Fatalf("expected error at 3:8, got %d:%d (%v)", fault.Line, fault.Column, fault)
	}
}

func TestParser_DepthLimit(t *testing.T) {
	input := strings.Repeat("[", 2*DefaultMaxDepth) + strings.Repeat("]", 2*DefaultMaxDepth)
	var out any
	err := Unmarshal([]byte(input), &out)
	if err == nil {
		t.Fatal("expected depth error")
	}
	fault := err.(*Error)
	if fault.Kind != ErrorFormat || !strings.Contains(fault.Message, "depth") {
		t.Fatalf("expected depth error, got %v", fault)
	}
}

func TestParser_DepthLimitOverride(t *testing.T) {
	var out any
	if err := Unmarshal([]byte(`[[[[1]]]]`), &out, WithMaxDepth(4)); err != nil {
		t.Fatalf("depth 4 should fit: %v", err)
	}
	err := Unmarshal([]byte(`[[[[[1]]]]]`), &out, WithMaxDepth(4))
	if err == nil {
		t.Fatal("expected depth error at depth 5")
	}
}

func TestParser_EmptyComposites(t *testing.T) {
	var seq []int
	if err := Unmarshal([]byte(`[]`), &seq); err != nil {
		t.Fatalf("empty array: %v", err)
	}
	if seq == nil || len(seq) != 0 {
		t.Fatalf("expected empty slice, got %#v", seq)
	}
	var obj map[string]int
	if err := Unmarshal([]byte(`{}`), &obj); err != nil {
		t.Fatalf("empty object: %v", err)
	}
	if obj == nil || len(obj) != 0 {
		t.Fatalf("expected empty map, got %#v", obj)
	}
}

func TestParser_SeparatorViolations(t *testing.T) {
	cases := []string{
		`[1 2]`,
		`[1,]`,
		`[,1]`,
		`{"a"1}`,
		`{"a":1 "b":2}`,
		`{"a":1,}`,
		`{1:2}`,
		`{"a";1}`,
		`["a"`,
	}
	for _, input := range cases {
		var out any
		err := Unmarshal([]byte(input), &out)
		if err == nil {
			t.Fatalf("%s: expected error", input)
		}
		if fault := err.(*Error); fault.Kind != ErrorFormat {
			t.Fatalf("%s: expected format error, got %v", input, fault)
		}
	}
}

func TestParser_NumberDispatch(t *testing.T) {
	var f float64
	if err := Unmarshal([]byte(`18446744073709551616`), &f); err != nil {
		t.Fatalf("overflowing integer should land in the float callback: %v", err)
	}
	if f != 18446744073709551616.0 {
		t.Fatalf("unexpected value %v", f)
	}
	var u uint64
	if err := Unmarshal([]byte(`18446744073709551615`), &u); err != nil {
		t.Fatalf("max uint64: %v", err)
	}
	if u != 18446744073709551615 {
		t.Fatalf("unexpected value %v", u)
	}
	var i int64
	if err := Unmarshal([]byte(`-9223372036854775808`), &i); err != nil {
		t.Fatalf("min int64: %v", err)
	}
	if i != -9223372036854775808 {
		t.Fatalf("unexpected value %v", i)
	}
}

func TestParser_NumberRange(t *testing.T) {
	// Lexically valid literals beyond float64 range are range errors, not
	// syntax errors.
	for _, input := range []string{`1e999`, `-1e999`, `1` + strings.Repeat("0", 400)} {
		var f float64
		err := Unmarshal([]byte(input), &f)
		if err == nil {
			t.Fatalf("%s: expected range error", input)
		}
		fault := err.(*Error)
		if fault.Kind != ErrorUnexpected || !strings.Contains(fault.Description, "range") {
			t.Fatalf("%s: expected unexpected-range error, got %v", input, fault)
		}
	}
}
