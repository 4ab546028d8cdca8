package swaggerkit

import (
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"autolink/internal/core/version"
)

// Op documents one endpoint under /api/v1. Errors lists statuses beyond the
// 400, 422 and 500 every endpoint may answer
type Op struct {
	Method  string
	Path    string
	Tag     string
	Summary string
	Errors  []int
}

var (
	mu  sync.RWMutex
	ops = map[string]Op{}
)

// Add records ops; a later Add for the same method and path replaces the earlier one
func Add(list ...Op) {
	mu.Lock()
	defer mu.Unlock()
	for _, op := range list {
		op.Method = strings.ToLower(op.Method)
		ops[op.Method+" "+op.Path] = op
	}
}

type document struct {
	OpenAPI    string                          `json:"openapi"`
	Info       info                            `json:"info"`
	Servers    []server                        `json:"servers"`
	Paths      map[string]map[string]operation `json:"paths"`
	Components components                      `json:"components"`
}

type info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

type server struct {
	URL string `json:"url"`
}

type operation struct {
	Tags      []string            `json:"tags"`
	Summary   string              `json:"summary"`
	Responses map[string]response `json:"responses"`
}

type response struct {
	Description string                `json:"description"`
	Content     map[string]mediaType `json:"content,omitempty"`
}

type mediaType struct {
	Schema ref `json:"schema"`
}

type ref struct {
	Ref string `json:"$ref"`
}

type components struct {
	Schemas map[string]schema `json:"schemas"`
}

type schema struct {
	Type       string            `json:"type"`
	Format     string            `json:"format,omitempty"`
	Properties map[string]schema `json:"properties,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

var defaultErrors = []int{http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusInternalServerError}

// errorEnvelope mirrors the body phttp.Write sends for errors
var errorEnvelope = schema{
	Type: "object",
	Properties: map[string]schema{
		"status_code": {Type: "integer", Format: "int32"},
		"status":      {Type: "string"},
		"code":        {Type: "integer", Format: "int32"},
		"error":       {Type: "string"},
		"field":       {Type: "string"},
		"request_id":  {Type: "string"},
	},
	Required: []string{"status_code", "status"},
}

func build(title string) document {
	doc := document{
		OpenAPI: "3.0.3",
		Info: info{
			Title:       title,
			Version:     version.Info().Version,
			Description: "Link detection, URL rewrite tables and click events",
		},
		Servers:    []server{{URL: "/api/v1"}},
		Paths:      map[string]map[string]operation{},
		Components: components{Schemas: map[string]schema{"Error": errorEnvelope}},
	}

	mu.RLock()
	defer mu.RUnlock()
	for _, key := range slices.Sorted(maps.Keys(ops)) {
		op := ops[key]
		if doc.Paths[op.Path] == nil {
			doc.Paths[op.Path] = map[string]operation{}
		}
		doc.Paths[op.Path][op.Method] = describe(op)
	}
	return doc
}

func describe(op Op) operation {
	out := operation{
		Tags:      []string{op.Tag},
		Summary:   op.Summary,
		Responses: map[string]response{"200": {Description: http.StatusText(http.StatusOK)}},
	}
	errRef := map[string]mediaType{"application/json": {Schema: ref{Ref: "#/components/schemas/Error"}}}
	for _, code := range append(slices.Clone(defaultErrors), op.Errors...) {
		out.Responses[strconv.Itoa(code)] = response{Description: http.StatusText(code), Content: errRef}
	}
	return out
}
