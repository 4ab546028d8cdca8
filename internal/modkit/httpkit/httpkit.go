// Package httpkit is what module transports import: the router type, route
// sugar that binds JSON bodies, and the shared /api/v1 middleware stack
package httpkit

import (
	"net/http"

	phttp "autolink/internal/platform/net/http"
	"autolink/internal/platform/net/http/bind"

	"github.com/go-chi/chi/v5"
)

type Router = phttp.Router

// Created marks a handler result as 201
func Created(data any) phttp.Response { return phttp.Created(data) }

// Status answers data with an explicit status
func Status(code int, data any) phttp.Response { return phttp.Response{Status: code, Body: data} }

// Param returns the named path segment, "" when absent
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }

// Get routes a body-less handler
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.Handle(func(req *http.Request) phttp.Response {
		return result(h(req))
	}))
}

// PostJSON routes a handler whose body binds and validates into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, withBody(h))
}

// PutJSON is PostJSON for PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, withBody(h))
}

func withBody[T any](h func(*http.Request, T) (any, error)) phttp.Handler {
	return phttp.Handle(func(req *http.Request) phttp.Response {
		in, err := bind.JSON[T](req)
		if err != nil {
			return phttp.Error(err)
		}
		return result(h(req, in))
	})
}

// result lets handlers return a phttp.Response when 200 is not the status
func result(out any, err error) phttp.Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(phttp.Response); ok {
		return resp
	}
	return phttp.OK(out)
}
