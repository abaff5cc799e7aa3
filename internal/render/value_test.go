package render

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{"", `""`},
		{`say "hi"`, `'say "hi"'`},
		{`both "and" 'quotes'`, `"both \"and\" 'quotes'"`},
		{"tab\there", `"tab\there"`},
		{"line\nbreak", `"line\nbreak"`},
		{`back\slash`, `"back\\slash"`},
		{"bell\x07", `"bell\u0007"`},
		{"unicode ok ß", `"unicode ok ß"`},
	}
	for _, tt := range tests {
		if got := String(tt.in); got != tt.want {
			t.Errorf("String(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "name"},
		{"default-features", "default-features"},
		{"cfg(unix)", `"cfg(unix)"`},
		{`cfg(target_os = "macos")`, `'cfg(target_os = "macos")'`},
		{"", `""`},
	}
	for _, tt := range tests {
		if got := Key(tt.in); got != tt.want {
			t.Errorf("Key(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestValueArrays(t *testing.T) {
	if got, want := Value([]any{"a"}, true), `["a"]`; got != want {
		t.Fatalf("single-element array = %s, want %s", got, want)
	}
	if got, want := Value([]any{"a", "b"}, false), `["a", "b"]`; got != want {
		t.Fatalf("flat array = %s, want %s", got, want)
	}
	want := "[\n    \"a\",\n    \"b\",\n]"
	if got := Value([]any{"a", "b"}, true); got != want {
		t.Fatalf("pretty array:\nwant %q\ngot  %q", want, got)
	}
}

func TestValueScalars(t *testing.T) {
	if got := Value(true, false); got != "true" {
		t.Fatalf("bool = %s", got)
	}
	if got := Value(int64(42), false); got != "42" {
		t.Fatalf("int64 = %s", got)
	}
	if got := Value(1.5, false); got != "1.5" {
		t.Fatalf("float = %s", got)
	}
	if got := Value(2.0, false); got != "2.0" {
		t.Fatalf("whole float = %s", got)
	}
}
