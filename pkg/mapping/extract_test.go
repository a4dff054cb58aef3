package mapping

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// decode parses a JSON document the way the client does.
func decode(t *testing.T, data string) Object {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()
	var obj Object
	if err := dec.Decode(&obj); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return obj
}

func readFixture(t *testing.T, name string) Object {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return decode(t, string(data))
}

func TestField_Absent(t *testing.T) {
	obj := decode(t, `{"explicit_null": null, "text": "abc", "number": 12, "object": {"a": "b"}, "array": [1]}`)

	tests := []struct {
		name  string
		check func() bool
	}{
		{"missing string", func() bool { _, ok := Field[string](obj, "missing"); return ok }},
		{"null string", func() bool { _, ok := Field[string](obj, "explicit_null"); return ok }},
		{"number as string", func() bool { _, ok := Field[string](obj, "number"); return ok }},
		{"missing int", func() bool { _, ok := Field[int](obj, "missing"); return ok }},
		{"null int", func() bool { _, ok := Field[int](obj, "explicit_null"); return ok }},
		{"text as int", func() bool { _, ok := Field[int](obj, "text"); return ok }},
		{"object as int64", func() bool { _, ok := Field[int64](obj, "object"); return ok }},
		{"text as float32", func() bool { _, ok := Field[float32](obj, "text"); return ok }},
		{"array as object", func() bool { _, ok := Field[Object](obj, "array"); return ok }},
		{"object as array", func() bool { _, ok := Field[Array](obj, "object"); return ok }},
		{"null any", func() bool { _, ok := Field[any](obj, "explicit_null"); return ok }},
		{"nil object", func() bool { _, ok := Field[string](nil, "text"); return ok }},
		{"unsupported type", func() bool { _, ok := Field[time.Duration](obj, "number"); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.check() {
				t.Errorf("expected field to be absent")
			}
		})
	}
}

func TestField_Present(t *testing.T) {
	obj := decode(t, `{"s": "abc", "i": 42, "numeric_string": "17", "l": 5368709120, "f": 0.1, "b": true, "o": {"k": "v"}, "a": ["x"]}`)

	if v, ok := Field[string](obj, "s"); !ok || v != "abc" {
		t.Errorf("string = %q, %v", v, ok)
	}
	if v, ok := Field[int](obj, "i"); !ok || v != 42 {
		t.Errorf("int = %d, %v", v, ok)
	}
	if v, ok := Field[int](obj, "numeric_string"); !ok || v != 17 {
		t.Errorf("numeric string as int = %d, %v", v, ok)
	}
	if v, ok := Field[int64](obj, "l"); !ok || v != 5368709120 {
		t.Errorf("int64 = %d, %v", v, ok)
	}
	if v, ok := Field[float32](obj, "f"); !ok || v != float32(0.1) {
		t.Errorf("float32 = %v, %v", v, ok)
	}
	if v, ok := Field[float32](obj, "i"); !ok || v != 42 {
		t.Errorf("int as float32 = %v, %v", v, ok)
	}
	if v, ok := Field[bool](obj, "b"); !ok || !v {
		t.Errorf("bool = %v, %v", v, ok)
	}
	if v, ok := Field[Object](obj, "o"); !ok || v["k"] != "v" {
		t.Errorf("object = %v, %v", v, ok)
	}
	if v, ok := Field[Array](obj, "a"); !ok || len(v) != 1 {
		t.Errorf("array = %v, %v", v, ok)
	}
	if v, ok := Field[any](obj, "s"); !ok || v != "abc" {
		t.Errorf("any = %v, %v", v, ok)
	}
}

func TestField_PlainDecodeNumbers(t *testing.T) {
	// Documents decoded without UseNumber carry float64 values.
	obj := Object{"i": float64(7), "f": 2.5}
	if v, ok := Field[int](obj, "i"); !ok || v != 7 {
		t.Errorf("int = %d, %v", v, ok)
	}
	if v, ok := Field[float32](obj, "f"); !ok || v != 2.5 {
		t.Errorf("float32 = %v, %v", v, ok)
	}
}

func TestPtr(t *testing.T) {
	obj := decode(t, `{"n": 3, "z": null}`)
	if p := Ptr[int](obj, "n"); p == nil || *p != 3 {
		t.Errorf("Ptr(n) = %v", p)
	}
	if p := Ptr[int](obj, "z"); p != nil {
		t.Errorf("Ptr(z) = %v, want nil", *p)
	}
}

func TestDictionary(t *testing.T) {
	obj := decode(t, `{"small": "s.jpg", "large": "l.jpg", "broken": 3}`)
	got := Dictionary(obj)
	if len(got) != 3 || got["small"] != "s.jpg" || got["large"] != "l.jpg" || got["broken"] != "" {
		t.Errorf("Dictionary() = %v", got)
	}
	if got := Dictionary(nil); got == nil || len(got) != 0 {
		t.Errorf("Dictionary(nil) = %v, want empty map", got)
	}
}

func TestStrings(t *testing.T) {
	arr := decode(t, `{"a": ["one", null, "two", 3, "three"]}`)["a"].(Array)
	got := Strings(arr)
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("Strings() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Strings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := Strings(nil); len(got) != 0 {
		t.Errorf("Strings(nil) = %v", got)
	}
}

func TestItems_SkipsNullAndMalformed(t *testing.T) {
	arr := decode(t, `{"a": [{"username": "a"}, null, 5, {"username": "b"}]}`)["a"].(Array)
	got := Items[string](arr, Func[Object, string](func(o Object) string { return String(o, "username") }))
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Items() = %v", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *time.Time
	}{
		{"plain", "2014-04-16T20:07:11", ptrTime(time.Date(2014, 4, 16, 20, 7, 11, 0, time.UTC))},
		{"fractional seconds", "2014-04-16T20:07:11.145", ptrTime(time.Date(2014, 4, 16, 20, 7, 11, 0, time.UTC))},
		{"empty", "", nil},
		{"date only", "2014-04-16", nil},
		{"garbage", "yesterday at noon", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.in)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ParseDate(%q) = %v, want nil", tt.in, got)
			case tt.want != nil && (got == nil || !got.Equal(*tt.want)):
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			case got != nil && got.Location() != time.UTC:
				t.Errorf("ParseDate(%q) location = %v, want UTC", tt.in, got.Location())
			}
		})
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
