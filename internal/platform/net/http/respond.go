// Package http is the api's transport layer: a chi backed Router, the JSON
// envelope every endpoint answers with, and the server that runs them
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "autolink/internal/platform/errors"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Envelope is the body of every api response. Successes carry Data,
// failures carry Code, Error and, for input errors, the offending Field
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is a handler result. An error Body picks its own status from its code
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

func OK(data any) Response      { return Response{Status: stdhttp.StatusOK, Body: data} }
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }
func Error(err error) Response  { return Response{Body: err} }

// Handle serves the Response fn returns
func Handle(fn func(*stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { Write(w, r, fn(r)) }
}

// Write renders resp inside an Envelope stamped with the request id
func Write(w stdhttp.ResponseWriter, r *stdhttp.Request, resp Response) {
	env := Envelope{StatusCode: resp.Status, RequestID: chimw.GetReqID(r.Context())}
	if err, ok := resp.Body.(error); ok {
		wire := perr.WireFrom(err)
		env.StatusCode = perr.HTTPStatus(err)
		env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
	} else {
		env.Data = resp.Body
	}
	if env.StatusCode == 0 {
		env.StatusCode = stdhttp.StatusOK
	}
	env.Status = stdhttp.StatusText(env.StatusCode)

	h := w.Header()
	for k, vs := range resp.Header {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	h.Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(env.StatusCode)
	_ = json.NewEncoder(w).Encode(env)
}
