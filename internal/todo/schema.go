package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed todos.schema.json
var storeSchemaJSON []byte

const storeSchemaURL = "mem:///todoz/todos.schema.json"

var compileStoreSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	if err := compiler.AddResource(storeSchemaURL, bytes.NewReader(storeSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	return compiler.Compile(storeSchemaURL)
})

// schemaViolation is one failed schema assertion.
type schemaViolation struct {
	Loc string
	Err error
}

// validateStoreDocument checks raw store file bytes against the embedded
// schema. It returns nil for a valid document, or the first leaf violation.
func validateStoreDocument(data []byte) *schemaViolation {
	schema, err := compileStoreSchema()
	if err != nil {
		// embedded schema is static; a compile failure is a programming error
		panic(fmt.Sprintf("todo: compile store schema: %v", err))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return &schemaViolation{Err: err}
	}

	if dec.More() {
		return &schemaViolation{Err: errors.New("trailing data after JSON document")}
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return &schemaViolation{Err: err}
		}

		leaf := firstLeaf(ve)

		return &schemaViolation{
			Loc: jsonPointerToPath(leaf.InstanceLocation),
			Err: errors.New(leaf.Message),
		}
	}

	return nil
}

func firstLeaf(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}

	return err
}

// jsonPointerToPath turns "/1/description" into "[1].description".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")

	if ptr == "" {
		return ""
	}

	var path strings.Builder

	for part := range strings.SplitSeq(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")

		if part == "" {
			continue
		}

		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&path, "[%d]", idx)

			continue
		}

		if path.Len() > 0 {
			path.WriteByte('.')
		}

		path.WriteString(part)
	}

	return path.String()
}
