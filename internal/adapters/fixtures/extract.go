package fixtures

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// ErrCollectionMissing is returned when an expression selects nothing.
var ErrCollectionMissing = errors.New("collection missing from document")

// ValidateExpression reports whether expr compiles as JMESPath.
func ValidateExpression(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return errors.New("empty expression")
	}
	_, err := jmespath.Compile(expr)
	return err
}

// Extract decodes raw JSON, evaluates expr against it and decodes the
// selection into out. A null selection yields ErrCollectionMissing.
func Extract(raw []byte, expr string, out any) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	selected, err := jmespath.Search(expr, doc)
	if err != nil {
		return fmt.Errorf("evaluate %q: %w", expr, err)
	}
	if selected == nil {
		return fmt.Errorf("%q: %w", expr, ErrCollectionMissing)
	}
	buf, err := json.Marshal(selected)
	if err != nil {
		return fmt.Errorf("re-encode selection: %w", err)
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return fmt.Errorf("decode selection %q: %w", expr, err)
	}
	return nil
}
