package models

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"inventorymanager/internal/common"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"
)

const schemaDraft = "http://json-schema.org/draft-07/schema#"

func init() {
	// Prices travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

var reflector = &jsonschema.Reflector{
	AllowAdditionalProperties:  false,
	DoNotReference:             true,
	RequiredFromJSONSchemaTags: true,
	Anonymous:                  true,
	ExpandedStruct:             true,
	Mapper: func(t reflect.Type) *jsonschema.Schema {
		if t == decimalType || (t.Kind() == reflect.Ptr && t.Elem() == decimalType) {
			return &jsonschema.Schema{Type: "number"}
		}
		return nil
	},
}

func reflectSchema(doc any) *jsonschema.Schema {
	s := reflector.Reflect(doc)
	s.Version = schemaDraft
	return s
}

// The same schema values are advertised in hypermedia controls and used
// to validate request bodies.
var (
	itemSchema      = reflectSchema(&ItemDocument{})
	locationSchema  = reflectSchema(&LocationDocument{})
	warehouseSchema = reflectSchema(&WarehouseDocument{})
	stockSchema     = reflectSchema(&StockDocument{})
	catalogueSchema = reflectSchema(&CatalogueDocument{})
)

func ItemSchema() *jsonschema.Schema      { return itemSchema }
func LocationSchema() *jsonschema.Schema  { return locationSchema }
func WarehouseSchema() *jsonschema.Schema { return warehouseSchema }
func StockSchema() *jsonschema.Schema     { return stockSchema }
func CatalogueSchema() *jsonschema.Schema { return catalogueSchema }

var compiledSchemas sync.Map

func compile(s *jsonschema.Schema) (*gojsonschema.Schema, error) {
	if v, ok := compiledSchemas.Load(s); ok {
		return v.(*gojsonschema.Schema), nil
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	v, _ := compiledSchemas.LoadOrStore(s, compiled)
	return v.(*gojsonschema.Schema), nil
}

// Validate checks a raw request body against s. Malformed JSON and schema
// violations are both reported as common.ErrValidation.
func Validate(s *jsonschema.Schema, body []byte) error {
	compiled, err := compile(s)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("empty request body: %w", common.ErrValidation)
	}
	result, err := compiled.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("malformed JSON document: %w", common.ErrValidation)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%s: %w", strings.Join(msgs, "; "), common.ErrValidation)
	}
	return nil
}

// Decode validates body against s and unmarshals it into a document.
func Decode[T any](s *jsonschema.Schema, body []byte) (T, error) {
	var doc T
	if err := Validate(s, body); err != nil {
		return doc, err
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return doc, fmt.Errorf("decode document: %v: %w", err, common.ErrValidation)
	}
	return doc, nil
}

func stringPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
