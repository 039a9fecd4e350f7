package weberr

import "errors"

type responder interface {
	Response() (body interface{}, status int)
}

// Response extracts the client response carried by err, if any error in its
// chain was decorated with one.
func Response(err error) (body interface{}, status int, ok bool) {
	var rsp responder
	if errors.As(err, &rsp) {
		body, code := rsp.Response()
		return body, code, true
	}
	return nil, 0, false
}

type responseError struct {
	error
	body   interface{}
	status int
}

func (e *responseError) Response() (interface{}, int) { return e.body, e.status }

func (e *responseError) Unwrap() error { return e.error }
