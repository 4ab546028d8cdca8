package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"autolink/internal/core/category"
)

func TestRun_TextRewrite(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-categories", "url", "-rewrite", "http://a.com=A", "see", "http://a.com", "now"}, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if lines[0] != "see A now" {
		t.Fatalf("display line %q", lines[0])
	}
	if len(lines) != 2 || lines[1] != "4\t5\turl\tA" {
		t.Fatalf("items %q", lines[1:])
	}
}

func TestRun_JSONFromStdin(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-format", "json", "-categories", "email"}, strings.NewReader("mail bob@example.org\n"), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var got output
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if got.Display != "mail bob@example.org" || len(got.Items) != 1 {
		t.Fatalf("got %+v", got)
	}
	if got.Items[0].Category != "email" || got.Items[0].Original != "bob@example.org" {
		t.Fatalf("item %+v", got.Items[0])
	}
}

func TestRun_BadFlags(t *testing.T) {
	var out bytes.Buffer
	cases := [][]string{
		{"-format", "xml", "x"},
		{"-categories", "fax", "x"},
		{"-rewrite", "novalue", "x"},
		{"-custom", "ticket=(", "x"},
	}
	for _, args := range cases {
		if err := run(args, strings.NewReader(""), &out); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestBuildCategories(t *testing.T) {
	cats, err := buildCategories("", nil, nil)
	if err != nil || len(cats) != len(category.Builtins()) {
		t.Fatalf("default: %v %v", cats, err)
	}

	cats, err = buildCategories("url,phone",
		pairs{{"ticket", `JIRA-\d+`}, {"ticket", `T#\d+`}},
		pairs{{"team", "platform"}, {"ticket", "hotfix"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var names []string
	for _, c := range cats {
		names = append(names, c.Name())
	}
	if strings.Join(names, ",") != "url,phone,ticket,team" {
		t.Fatalf("order %v", names)
	}
	if got := cats[2].Custom(); len(got.Patterns) != 2 || len(got.Keywords) != 1 {
		t.Fatalf("ticket custom %+v", got)
	}
}

func TestRun_RewriteKeepsQueryString(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-categories", "url", "-rewrite", "http://a.com/?q=1=Q", "see http://a.com/?q=1 now"}, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if first := strings.SplitN(out.String(), "\n", 2)[0]; first != "see Q now" {
		t.Fatalf("display line %q", first)
	}
}

func TestURLPairs_SplitAtLastEquals(t *testing.T) {
	var p urlPairs
	if err := p.Set("http://a.com/?a=1&b=2=short"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if p.pairs[0] != [2]string{"http://a.com/?a=1&b=2", "short"} {
		t.Fatalf("pair = %q", p.pairs[0])
	}
	for _, bad := range []string{"nodelim", "=x", "http://a.com="} {
		if err := p.Set(bad); err == nil {
			t.Fatalf("Set(%q) accepted", bad)
		}
	}
}
