// Command autolink linkifies text from args or stdin and prints the items
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"autolink/internal/core/autolink"
	"autolink/internal/core/category"
	"autolink/internal/platform/logger"
)

// pairs is a repeatable name=value flag
type pairs [][2]string

func (p *pairs) String() string {
	parts := make([]string, 0, len(*p))
	for _, kv := range *p {
		parts = append(parts, kv[0]+"="+kv[1])
	}
	return strings.Join(parts, ",")
}

func (p *pairs) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	return p.add(k, val, ok, v)
}

func (p *pairs) add(k, val string, ok bool, v string) error {
	if !ok || k == "" || val == "" {
		return fmt.Errorf("want name=value, got %q", v)
	}
	*p = append(*p, [2]string{k, val})
	return nil
}

// urlPairs splits on the last '=' so query strings stay inside the url
type urlPairs struct{ pairs }

func (p *urlPairs) Set(v string) error {
	i := strings.LastIndexByte(v, '=')
	if i < 0 {
		return p.add("", "", false, v)
	}
	return p.add(v[:i], v[i+1:], true, v)
}

type item struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Category string `json:"category"`
	Original string `json:"original"`
	Display  string `json:"display"`
}

type output struct {
	Display string `json:"display"`
	Items   []item `json:"items"`
}

func main() {
	// stdout carries the linkified output
	logOpts := logger.FromEnv()
	logOpts.Writer = os.Stderr
	logger.Init(logOpts)

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logger.Get().Error().Err(err).Msg("autolink failed")
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("autolink", flag.ContinueOnError)
	var (
		cats     = fs.String("categories", "", "comma separated builtin categories (default: all)")
		clean    = fs.Bool("clean", false, "drop control and format characters before scanning")
		skipCode = fs.Bool("skip-code", false, "ignore matches inside code zones")
		strict   = fs.Bool("strict", false, "fail on offset invariant violations")
		maxItems = fs.Int("max-items", 0, "cap items per pass (0 = no cap)")
		format   = fs.String("format", "text", "output format: text|json")
		custom   pairs
		keywords pairs
		rewrites urlPairs
	)
	fs.Var(&custom, "custom", "custom category pattern name=regex (repeatable)")
	fs.Var(&keywords, "keyword", "custom category keyword name=word (repeatable)")
	fs.Var(&rewrites, "rewrite", "static url rewrite original=display, split at the last = (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *format != "text" && *format != "json" {
		return fmt.Errorf("bad -format %q", *format)
	}

	categories, err := buildCategories(*cats, custom, keywords)
	if err != nil {
		return err
	}
	table := make(map[string]string, len(rewrites.pairs))
	for _, kv := range rewrites.pairs {
		table[kv[0]] = kv[1]
	}

	eng, err := autolink.New(autolink.Config{
		Categories:    categories,
		CleanInput:    *clean,
		SkipCodeZones: *skipCode,
		Strict:        *strict,
		MaxItems:      *maxItems,
	}, autolink.WithRewrites(table))
	if err != nil {
		return err
	}

	text := strings.Join(fs.Args(), " ")
	if fs.NArg() == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.TrimRight(string(b), "\n")
	}

	res, err := eng.SetText(text)
	if err != nil {
		return err
	}

	out := output{Display: res.Display, Items: make([]item, 0, res.Set.Len())}
	for _, it := range res.Items() {
		out.Items = append(out.Items, item{
			Start:    it.Start,
			End:      it.End,
			Category: it.Category.Name(),
			Original: it.Original,
			Display:  it.Display,
		})
	}

	if *format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	fmt.Fprintln(stdout, out.Display)
	for _, it := range out.Items {
		fmt.Fprintf(stdout, "%d\t%d\t%s\t%s\n", it.Start, it.End, it.Category, it.Display)
	}
	return nil
}

// buildCategories keeps flag order: builtins first, then customs in first-seen order
func buildCategories(names string, custom, keywords pairs) ([]category.Category, error) {
	var out []category.Category
	if names != "" {
		for _, n := range strings.Split(names, ",") {
			c, ok := category.Parse(n)
			if !ok {
				return nil, fmt.Errorf("unknown category %q", n)
			}
			out = append(out, c)
		}
	}

	var order []string
	pats := map[string][]string{}
	words := map[string][]string{}
	for _, kv := range custom {
		if _, ok := pats[kv[0]]; !ok {
			if _, seen := words[kv[0]]; !seen {
				order = append(order, kv[0])
			}
		}
		pats[kv[0]] = append(pats[kv[0]], kv[1])
	}
	for _, kv := range keywords {
		if _, ok := words[kv[0]]; !ok {
			if _, seen := pats[kv[0]]; !seen {
				order = append(order, kv[0])
			}
		}
		words[kv[0]] = append(words[kv[0]], kv[1])
	}
	for _, name := range order {
		out = append(out, category.NewCustomWithKeywords(name, pats[name], words[name]))
	}

	if len(out) == 0 {
		return category.Builtins(), nil
	}
	return out, nil
}
