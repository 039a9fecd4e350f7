package weberr

import "errors"

type fielder interface {
	Fields() map[string]interface{}
}

// Fields extracts the log fields carried by err, if any error in its chain
// was decorated with some.
func Fields(err error) (fields map[string]interface{}, ok bool) {
	var f fielder
	if errors.As(err, &f) {
		return f.Fields(), true
	}
	return nil, false
}

type fieldsError struct {
	error
	fields map[string]interface{}
}

func (e *fieldsError) Fields() map[string]interface{} { return e.fields }

func (e *fieldsError) Unwrap() error { return e.error }
