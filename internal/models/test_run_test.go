package models

import "testing"

func TestStatusCounts_ValueSparse(t *testing.T) {
	stats := StatusCounts{"passed": 3, "untested": 1}

	v, err := stats.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}

	var restored StatusCounts
	if err := restored.Scan(v); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if len(restored) != 2 {
		t.Errorf("restored map has %d keys, expected 2", len(restored))
	}
	if restored["passed"] != 3 {
		t.Errorf("passed = %d, expected 3", restored["passed"])
	}
	if restored["untested"] != 1 {
		t.Errorf("untested = %d, expected 1", restored["untested"])
	}
	if _, present := restored["failed"]; present {
		t.Error("zero-count statuses should be absent, not zero")
	}
}

func TestStatusCounts_NilValue(t *testing.T) {
	var stats StatusCounts

	v, err := stats.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if v != "{}" {
		t.Errorf("nil map should serialize to {}, got %v", v)
	}
}

func TestStatusCounts_ScanNil(t *testing.T) {
	var stats StatusCounts
	if err := stats.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) returned error: %v", err)
	}
	if stats == nil || len(stats) != 0 {
		t.Error("Scan(nil) should produce an empty map")
	}
}

func TestStatusCounts_ScanUnsupportedType(t *testing.T) {
	var stats StatusCounts
	if err := stats.Scan(42); err == nil {
		t.Error("Scan should reject non-string, non-bytes values")
	}
}
