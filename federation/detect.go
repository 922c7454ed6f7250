package federation

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const linkDirectiveName = "link"

// IsFedTwo reports whether sdl declares a @link directive on a schema
// definition or schema extension. Only the directive name is checked.
// SDL that fails to parse is never federation 2.
func IsFedTwo(sdl string) bool {
	doc, err := parser.ParseSchema(&ast.Source{Input: sdl})
	if err != nil {
		return false
	}

	return hasLink(doc.Schema) || hasLink(doc.SchemaExtension)
}

func hasLink(defs ast.SchemaDefinitionList) bool {
	for _, def := range defs {
		if def.Directives.ForName(linkDirectiveName) != nil {
			return true
		}
	}
	return false
}
