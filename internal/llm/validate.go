package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidatingProvider rejects responses that do not match the request's
// schema, and responses cut at the token limit.
type ValidatingProvider struct {
	inner Provider
}

// WithValidation wraps a Provider with response validation.
func WithValidation(p Provider) Provider {
	return &ValidatingProvider{inner: p}
}

func (v *ValidatingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := v.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StopReason == StopMaxTokens {
		return resp, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if err := ValidateJSON(req.Schema, resp.Content); err != nil {
		return resp, err
	}
	return resp, nil
}

func (v *ValidatingProvider) ModelID() string {
	return v.inner.ModelID()
}

// compiled caches compiled schemas by name.
var compiled sync.Map // map[string]*jsonschema.Schema

// ValidateJSON checks raw against schema. A nil schema accepts anything.
// Failures are *ErrInvalidResponse.
func ValidateJSON(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := compile(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}
	if err := sch.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := compiled.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values, not Go literals.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://" + schema.Name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	compiled.Store(schema.Name, sch)
	return sch, nil
}
