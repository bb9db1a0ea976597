// Package openapi harvests mask definitions from OpenAPI documents.
//
// Request-body properties annotated with the x-text-mask extension become
// preset definitions keyed "<operationId>.<property path>". The extension is
// either a mask pattern string or an object:
//
//	x-text-mask:
//	  mask: "(999) 999-9999"
//	  placeholderChar: "_"
//	  guide: false
//	  keepCharPositions: true
//	  showMask: true
//	  pipe: upper
package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-textmask/pkg/presets"
)

// ExtensionKey is the schema extension carrying a mask.
const ExtensionKey = "x-text-mask"

type extensionSpec struct {
	Mask              string `json:"mask"`
	PlaceholderChar   string `json:"placeholderChar"`
	Guide             *bool  `json:"guide"`
	KeepCharPositions bool   `json:"keepCharPositions"`
	ShowMask          bool   `json:"showMask"`
	Pipe              string `json:"pipe"`
	Description       string `json:"description"`
}

// Definitions loads raw (JSON or YAML) and returns the masks declared on
// request-body properties.
func Definitions(ctx context.Context, raw []byte) (map[string]presets.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	out := make(map[string]presets.Definition)
	if spec.Paths == nil {
		return out, nil
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			for _, contentType := range sortedKeys(op.RequestBody.Value.Content) {
				media := op.RequestBody.Value.Content[contentType]
				if media == nil || media.Schema == nil {
					continue
				}
				if err := collect(out, id, "", media.Schema, map[*openapi3.Schema]bool{}); err != nil {
					return nil, err
				}
			}
		}
	}
	return out, nil
}

func collect(out map[string]presets.Definition, opID, prefix string, ref *openapi3.SchemaRef, visiting map[*openapi3.Schema]bool) error {
	if ref == nil || ref.Value == nil || visiting[ref.Value] {
		return nil
	}
	schema := ref.Value
	visiting[schema] = true
	defer delete(visiting, schema)

	if prefix != "" {
		if value, ok := schema.Extensions[ExtensionKey]; ok {
			def, err := decodeExtension(value)
			if err != nil {
				return fmt.Errorf("openapi: operation %q property %q: %w", opID, prefix, err)
			}
			def.Name = opID + "." + prefix
			def.Source = opID
			if def.Description == "" {
				def.Description = schema.Description
			}
			if err := def.Validate(); err != nil {
				return fmt.Errorf("openapi: operation %q property %q: %w", opID, prefix, err)
			}
			if _, exists := out[def.Name]; !exists {
				out[def.Name] = def
			}
		}
	}

	for _, name := range sortedKeys(schema.Properties) {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if err := collect(out, opID, path, schema.Properties[name], visiting); err != nil {
			return err
		}
	}
	for _, part := range schema.AllOf {
		if err := collect(out, opID, prefix, part, visiting); err != nil {
			return err
		}
	}
	return nil
}

func decodeExtension(value any) (presets.Definition, error) {
	var spec extensionSpec
	switch typed := value.(type) {
	case string:
		spec.Mask = typed
	case json.RawMessage:
		if err := unmarshalExtension(typed, &spec); err != nil {
			return presets.Definition{}, err
		}
	default:
		data, err := json.Marshal(typed)
		if err != nil {
			return presets.Definition{}, fmt.Errorf("encode %s: %w", ExtensionKey, err)
		}
		if err := unmarshalExtension(data, &spec); err != nil {
			return presets.Definition{}, err
		}
	}
	if strings.TrimSpace(spec.Mask) == "" {
		return presets.Definition{}, fmt.Errorf("%s has no mask", ExtensionKey)
	}
	return presets.Definition{
		Mask:              spec.Mask,
		PlaceholderChar:   spec.PlaceholderChar,
		Guide:             spec.Guide,
		KeepCharPositions: spec.KeepCharPositions,
		ShowMask:          spec.ShowMask,
		Pipe:              spec.Pipe,
		Description:       spec.Description,
	}, nil
}

func unmarshalExtension(data []byte, spec *extensionSpec) error {
	var pattern string
	if err := json.Unmarshal(data, &pattern); err == nil {
		spec.Mask = pattern
		return nil
	}
	if err := json.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("decode %s: %w", ExtensionKey, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
