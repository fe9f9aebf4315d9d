package contracts

import (
	"bytes"
	"embed"
	"fmt"
	"log"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

var searchQueryStateSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	data, err := schemasFS.ReadFile("schemas/search_query_state.json")
	if err != nil {
		log.Fatalf("failed to read search query state schema: %v", err)
	}
	if err := compiler.AddResource("schemas/search_query_state.json", bytes.NewReader(data)); err != nil {
		log.Fatalf("failed to add schema resource: %v", err)
	}

	searchQueryStateSchema, err = compiler.Compile("schemas/search_query_state.json")
	if err != nil {
		log.Fatalf("failed to compile search query state schema: %v", err)
	}
}

// ValidateSearchQueryState проверяет сырой JSON от модели по схеме
// спецификации поиска еще до десериализации в доменный тип.
func ValidateSearchQueryState(raw interface{}) error {
	if err := searchQueryStateSchema.Validate(raw); err != nil {
		return fmt.Errorf("search query state does not match schema: %w", err)
	}
	return nil
}
