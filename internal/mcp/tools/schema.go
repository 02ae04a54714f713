package tools

import (
	"github.com/roivaz/raindrop-mcp/internal/raindrop"
)

// Declarative argument schemas. Every tool call is checked against its
// schema before any upstream request is even constructed; a violation fails
// fast with an invalid_arguments error and zero network effect.

type argKind int

const (
	argString argKind = iota
	argNumber
	argBool
	argStringList
)

func (k argKind) label() string {
	switch k {
	case argString:
		return "string"
	case argNumber:
		return "number"
	case argBool:
		return "boolean"
	case argStringList:
		return "array of strings"
	}
	return "unknown"
}

func (k argKind) matches(v any) bool {
	switch k {
	case argString:
		_, ok := v.(string)
		return ok
	case argNumber:
		switch v.(type) {
		case float64, int, int64:
			return true
		}
		return false
	case argBool:
		_, ok := v.(bool)
		return ok
	case argStringList:
		switch list := v.(type) {
		case []string:
			return true
		case []any:
			for _, item := range list {
				if _, ok := item.(string); !ok {
					return false
				}
			}
			return true
		}
		return false
	}
	return false
}

type argField struct {
	name     string
	kind     argKind
	required bool
}

type argSchema []argField

// validate checks required presence and type conformance. Unknown argument
// names are tolerated; clients may send extras the schema does not declare.
func (s argSchema) validate(args map[string]any) error {
	for _, f := range s {
		raw, ok := args[f.name]
		if !ok || raw == nil {
			if f.required {
				return raindrop.Errorf(raindrop.KindInvalidArguments, "missing required argument %q", f.name)
			}
			continue
		}
		if !f.kind.matches(raw) {
			return raindrop.Errorf(raindrop.KindInvalidArguments, "argument %q must be a %s", f.name, f.kind.label())
		}
	}
	return nil
}
