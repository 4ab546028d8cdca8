package category

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"url", URL, true},
		{" URL ", URL, true},
		{"phone", Phone, true},
		{"mail", Email, true},
		{"mention", Mention, true},
		{"tag", Hashtag, true},
		{"custom", Category{}, false},
		{"", Category{}, false},
	}
	for _, c := range cases {
		got, ok := Parse(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("Parse(%q) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCustomIdentity(t *testing.T) {
	a := NewCustom("android", `\sAndroid\b`)
	b := NewCustom("android", `\sAndroid\b`)
	if a == b {
		t.Fatalf("custom categories with equal patterns must differ")
	}
	if cp := a; cp != a {
		t.Fatalf("custom category must equal its copy")
	}
	if a.Custom().ID == b.Custom().ID {
		t.Fatalf("ids must be unique")
	}
	if a.Name() != "android" || !a.IsCustom() || !a.Valid() {
		t.Fatalf("unexpected custom: name=%q", a.Name())
	}
}

func TestCustomDefaultName(t *testing.T) {
	c := NewCustom("  ", "x")
	if c.Name() == "" || c.Name()[:7] != "custom-" {
		t.Fatalf("default name = %q", c.Name())
	}
}

func TestBuiltinNamesAndValid(t *testing.T) {
	want := []string{"url", "phone", "email", "mention", "hashtag"}
	for i, c := range Builtins() {
		if c.Name() != want[i] {
			t.Fatalf("Builtins()[%d].Name() = %q want %q", i, c.Name(), want[i])
		}
		if !c.Valid() || c.IsCustom() {
			t.Fatalf("builtin %q should be valid and not custom", c.Name())
		}
	}
	if (Category{}).Valid() {
		t.Fatalf("zero category must be invalid")
	}
	if (Category{Kind: KindCustom}).Valid() {
		t.Fatalf("custom without definition must be invalid")
	}
	if Kind(99).String() != "unknown" {
		t.Fatalf("unknown kind name")
	}
}
