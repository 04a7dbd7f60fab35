package catalog

import (
	// blank import for embeds
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"sigs.k8s.io/yaml"
)

//go:embed data/catalog_schema.json
var catalogSchema []byte

// ValidateSchema checks raw catalog content (JSON or YAML) against the
// embedded catalog schema. It reports every violation, not just the first,
// since the catalog is edited by hand and fixed in one pass.
func ValidateSchema(contents []byte) error {
	jsonContents, err := yaml.YAMLToJSON(contents)
	if err != nil {
		return fmt.Errorf("catalog is not valid JSON or YAML: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(catalogSchema)
	dataLoader := gojsonschema.NewBytesLoader(jsonContents)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, resultError := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", resultError.Field(), resultError.Description()))
	}
	return fmt.Errorf("catalog does not match schema:\n  %s", strings.Join(problems, "\n  "))
}
