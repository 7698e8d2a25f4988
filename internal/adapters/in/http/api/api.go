// Package api embeds the OpenAPI document describing the ordering HTTP API.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var document []byte

var registerOnce sync.Once

// Load parses and validates the embedded document.
func Load() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// RegisterSwagger publishes doc to the swag registry read by the swagger UI.
// Only the first call registers.
func RegisterSwagger(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc(raw))
	})
	return nil
}

type swaggerDoc []byte

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}
