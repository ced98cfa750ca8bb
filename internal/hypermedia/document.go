// Package hypermedia builds Mason documents: a JSON record decorated with
// @namespaces, @controls and @error members.
package hypermedia

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
)

const MediaType = "application/vnd.mason+json"

type Namespace struct {
	Name string `json:"name"`
}

type Control struct {
	Href     string             `json:"href"`
	Method   string             `json:"method,omitempty"`
	Encoding string             `json:"encoding,omitempty"`
	Title    string             `json:"title,omitempty"`
	Schema   *jsonschema.Schema `json:"schema,omitempty"`
}

type ErrorInfo struct {
	Message  string   `json:"@message"`
	Messages []string `json:"@messages,omitempty"`
}

// ControlOption sets an optional attribute of a control.
type ControlOption func(*Control)

func WithMethod(method string) ControlOption {
	return func(c *Control) { c.Method = method }
}

func WithTitle(title string) ControlOption {
	return func(c *Control) { c.Title = title }
}

func WithEncoding(encoding string) ControlOption {
	return func(c *Control) { c.Encoding = encoding }
}

func WithSchema(schema *jsonschema.Schema) ControlOption {
	return func(c *Control) { c.Schema = schema }
}

// Document is a Mason envelope under construction. The record's fields are
// flattened into the top level of the encoded object, followed by any
// extra members and the @-prefixed hypermedia members.
type Document struct {
	Namespaces map[string]Namespace
	Controls   map[string]*Control
	Error      *ErrorInfo

	record  any
	members map[string]any
}

// NewDocument starts a document around record, which must encode to a
// JSON object. A nil record yields a document with only hypermedia members.
func NewDocument(record any) *Document {
	return &Document{
		Namespaces: make(map[string]Namespace),
		Controls:   make(map[string]*Control),
		record:     record,
		members:    make(map[string]any),
	}
}

// Set adds an extra top-level member, such as the list of a collection.
func (d *Document) Set(key string, value any) *Document {
	d.members[key] = value
	return d
}

// AddNamespace is idempotent: registering the same prefix again replaces it.
func (d *Document) AddNamespace(prefix, uri string) *Document {
	d.Namespaces[prefix] = Namespace{Name: uri}
	return d
}

// AddControl inserts or overwrites the control called name.
func (d *Document) AddControl(name, href string, opts ...ControlOption) *Document {
	if href == "" {
		panic(fmt.Sprintf("hypermedia: control %q has no href", name))
	}
	c := &Control{Href: href}
	for _, opt := range opts {
		opt(c)
	}
	d.Controls[name] = c
	return d
}

func (d *Document) AddControlPost(name, title, href string, schema *jsonschema.Schema) *Document {
	if schema == nil {
		panic(fmt.Sprintf("hypermedia: POST control %q has no schema", name))
	}
	return d.AddControl(name, href,
		WithMethod(http.MethodPost),
		WithEncoding("json"),
		WithTitle(title),
		WithSchema(schema),
	)
}

func (d *Document) AddControlPut(title, href string, schema *jsonschema.Schema) *Document {
	if schema == nil {
		panic("hypermedia: edit control has no schema")
	}
	return d.AddControl("edit", href,
		WithMethod(http.MethodPut),
		WithEncoding("json"),
		WithTitle(title),
		WithSchema(schema),
	)
}

func (d *Document) AddControlDelete(title, href string) *Document {
	return d.AddControl(NS+":delete", href,
		WithMethod(http.MethodDelete),
		WithTitle(title),
	)
}

func (d *Document) AddError(title, detail string) *Document {
	d.Error = &ErrorInfo{Message: title}
	if detail != "" {
		d.Error.Messages = []string{detail}
	}
	return d
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.members)+3)
	if d.record != nil {
		raw, err := json.Marshal(d.record)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("hypermedia: record is not an object: %w", err)
		}
	}
	for k, v := range d.members {
		if err := put(out, k, v); err != nil {
			return nil, err
		}
	}
	if len(d.Namespaces) > 0 {
		if err := put(out, "@namespaces", d.Namespaces); err != nil {
			return nil, err
		}
	}
	if len(d.Controls) > 0 {
		if err := put(out, "@controls", d.Controls); err != nil {
			return nil, err
		}
	}
	if d.Error != nil {
		if err := put(out, "@error", d.Error); err != nil {
			return nil, err
		}
	}
	return json.Marshal(out)
}

func put(out map[string]json.RawMessage, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("hypermedia: encode %s: %w", key, err)
	}
	out[key] = raw
	return nil
}
