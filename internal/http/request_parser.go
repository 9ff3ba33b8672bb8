// This file turns request bodies into the loosely typed field maps the
// services accept. Both JSON objects and form-encoded bodies are understood.

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"igreja/internal/core"
)

// maxBodyBytes bounds how much of a request body is read.
const maxBodyBytes = 1 << 20

var errBodyNotObject = errors.New("request body must be a JSON object")

// RequestBodyParser reads the body once and parses it as JSON or form data.
type RequestBodyParser struct {
	body        []byte
	contentType string
	fields      core.Fields
	parsed      bool
	err         error
}

func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{contentType: r.Header.Get("Content-Type")}
	if r.Body == nil {
		return p
	}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if p.err == nil && len(p.body) > maxBodyBytes {
		p.err = fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}
	return p
}

// Parse decodes the body. An empty body yields empty fields, which the
// services fill with defaults.
func (p *RequestBodyParser) Parse() (core.Fields, error) {
	if p.parsed {
		return p.fields, p.err
	}
	p.parsed = true

	if p.err != nil {
		return nil, p.err
	}

	trimmed := bytes.TrimSpace(p.body)
	if len(trimmed) == 0 {
		p.fields = core.Fields{}
		return p.fields, nil
	}

	if p.IsJSON() {
		p.fields, p.err = parseJSONFields(trimmed)
		return p.fields, p.err
	}

	form, err := url.ParseQuery(string(trimmed))
	if err != nil {
		p.err = fmt.Errorf("parse form body: %w", err)
		return nil, p.err
	}
	p.fields = make(core.Fields, len(form))
	for key := range form {
		p.fields[key] = sanitizeInput(form.Get(key))
	}
	return p.fields, nil
}

// IsJSON reports whether the body is treated as JSON, either by content
// type or because it opens with a brace.
func (p *RequestBodyParser) IsJSON() bool {
	if strings.HasPrefix(strings.ToLower(p.contentType), "application/json") {
		return true
	}
	trimmed := bytes.TrimSpace(p.body)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

func (p *RequestBodyParser) ContentType() string {
	return p.contentType
}

func parseJSONFields(body []byte) (core.Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse JSON body: %w", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errBodyNotObject
	}

	fields := make(core.Fields, len(obj))
	for k, v := range obj {
		if s, ok := v.(string); ok {
			v = sanitizeInput(s)
		}
		fields[k] = v
	}
	return fields, nil
}
