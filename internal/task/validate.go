package task

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed items.schema.json
var itemsSchema string

// ValidateDocument checks a raw items document against the task schema
// and returns one error per violation. The store itself never
// schema-validates (it treats anything that is not a task array as
// absent); this backs the doctor command's diagnostics.
func ValidateDocument(raw string) []error {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return []error{fmt.Errorf("parse items document: %w", err)}
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("items.schema.json", strings.NewReader(itemsSchema)); err != nil {
		return []error{fmt.Errorf("load items schema: %w", err)}
	}
	schema, err := compiler.Compile("items.schema.json")
	if err != nil {
		return []error{fmt.Errorf("compile items schema: %w", err)}
	}

	if err := schema.Validate(doc); err != nil {
		var errs []error
		collectSchemaErrors(&errs, err)
		return errs
	}
	return nil
}

func collectSchemaErrors(errs *[]error, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		*errs = append(*errs, err)
		return
	}
	if len(ve.Causes) == 0 {
		*errs = append(*errs, fmt.Errorf("%s: %s", instancePath(ve.InstanceLocation), ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// instancePath turns a JSON pointer like "/2/text" into "items[2].text".
func instancePath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "items"
	}
	path := "items"
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if isDigits(part) {
			path += "[" + part + "]"
		} else {
			path += "." + part
		}
	}
	return path
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
