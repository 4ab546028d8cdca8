// internal/core/normalize/clean_test.go
package normalize

import "testing"

func TestClean_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "empty", in: "", out: ""},
		{name: "identity ascii", in: "see http://a.com now", out: "see http://a.com now"},
		{name: "keeps case and width", in: "ＦＯＯ Bar", out: "ＦＯＯ Bar"},
		{name: "utf8 repair", in: string([]byte{0xff, 'a', 0x80, 'b'}), out: "ab"},
		{name: "drops zwj inside url", in: "https://www.goo\u200Dgle.com", out: "https://www.google.com"},
		{name: "drops bom and zwnj", in: "\uFEFFa\u200Cb", out: "ab"},
		{name: "drops controls keeps newlines", in: "a\x00b\x7f\tc\r\nd\u0085e", out: "ab\tc\r\nde"},
		{name: "nfc composes", in: "cafe\u0301", out: "caf\u00e9"},
		{name: "composes across a removed zwj", in: "e\u200D\u0301 http://a.com", out: "\u00e9 http://a.com"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Clean(tc.in)
			if got != tc.out {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.out)
			}
			if again := Clean(got); again != got {
				t.Fatalf("Clean not idempotent: %q -> %q", got, again)
			}
		})
	}
}
