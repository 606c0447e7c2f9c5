package store

import (
	"reflect"
	"testing"
)

type testStruct struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value,omitempty"`
	Skip  string  `json:"-"`
	Plain int
	priv  string // unexported, should be skipped
}

func TestRecordFromStruct_Basic(t *testing.T) {
	s := testStruct{ID: "1", Name: "foo", Value: 3.14, Skip: "x", Plain: 2, priv: "secret"}
	m := RecordFromStruct(s)

	expected := Record{
		"id":    "1",
		"name":  "foo",
		"value": 3.14,
		"Plain": 2,
	}
	if !reflect.DeepEqual(m, expected) {
		t.Errorf("RecordFromStruct() = %v, want %v", m, expected)
	}
	if _, ok := m["priv"]; ok {
		t.Error("Unexported field 'priv' should not be present in record")
	}
}

func TestRecordFromStruct_PointerAndOmitEmpty(t *testing.T) {
	m := RecordFromStruct(&testStruct{Name: "bar"})
	if _, ok := m["value"]; ok {
		t.Error("zero omitempty field should be dropped")
	}
	if m["name"] != "bar" {
		t.Errorf("name = %v, want bar", m["name"])
	}
	if !m.IsNew() {
		t.Error("record with empty id should be new")
	}
}

func TestRecordFromStruct_NonStruct(t *testing.T) {
	if m := RecordFromStruct(123); len(m) != 0 {
		t.Errorf("RecordFromStruct(int) = %v, want empty", m)
	}
	var nilPtr *testStruct
	if m := RecordFromStruct(nilPtr); len(m) != 0 {
		t.Errorf("RecordFromStruct(nil) = %v, want empty", m)
	}
}

func TestDecodeRecord(t *testing.T) {
	got, err := DecodeRecord[testStruct](Record{"id": "9", "name": "baz", "value": 1.5, "Plain": 4.0})
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	want := testStruct{ID: "9", Name: "baz", Value: 1.5, Plain: 4}
	if got != want {
		t.Errorf("DecodeRecord() = %+v, want %+v", got, want)
	}

	if _, err := DecodeRecord[testStruct](Record{"name": 5.0}); err == nil {
		t.Error("expected type mismatch error")
	}
}

func TestRecord_Clone(t *testing.T) {
	r := Record{"id": "a"}
	c := r.Clone()
	c.SetID("b")
	if r.ID() != "a" {
		t.Errorf("clone modified original: %v", r)
	}
	var nilRec Record
	if nilRec.ID() != "" || !nilRec.IsNew() || nilRec.Clone() == nil {
		t.Error("nil record helpers misbehave")
	}
}
