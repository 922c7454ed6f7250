package introspection

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/samber/lo"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

const defaultDeprecationReason = "No longer supported"

var (
	ErrNoQueryType   = errors.New("could not find the root query")
	ErrMissingName   = errors.New("could not find type's name")
	ErrUnknownMember = errors.New("could not find type definition for union or interface member")
)

// builtin types and directives are provided by every GraphQL implementation
// and never belong to a subgraph schema
var (
	builtinScalars    = []string{"ID", "Int", "Float", "String", "Boolean"}
	builtinDirectives = []string{"skip", "include", "deprecated", "specifiedBy"}
)

// printSchema renders an introspection result as SDL
func printSchema(remote *querySchema) (string, error) {
	schema, err := buildSchema(remote)
	if err != nil {
		return "", err
	}

	buf := bytes.NewBufferString("")
	f := formatter.NewFormatter(buf)
	f.FormatSchema(schema)
	return buf.String(), nil
}

func buildSchema(remote *querySchema) (*ast.Schema, error) {
	if remote == nil || remote.QueryType == nil || remote.QueryType.Name == "" {
		return nil, ErrNoQueryType
	}

	schema := &ast.Schema{
		Types:      map[string]*ast.Definition{},
		Directives: map[string]*ast.DirectiveDefinition{},
	}

	for _, remoteType := range remote.Types {
		if remoteType.Name == "" {
			return nil, ErrMissingName
		}

		schemaType := parseType(remoteType)
		if schemaType == nil {
			continue
		}

		switch {
		case remoteType.Name == remote.QueryType.Name:
			schema.Query = schemaType
		case remote.MutationType != nil && remoteType.Name == remote.MutationType.Name:
			schema.Mutation = schemaType
		case remote.SubscriptionType != nil && remoteType.Name == remote.SubscriptionType.Name:
			schema.Subscription = schemaType
		}

		schema.Types[schemaType.Name] = schemaType
	}

	if schema.Query == nil {
		return nil, ErrNoQueryType
	}

	// every interface and union member has to be declared as well
	for _, def := range schema.Types {
		members := append(append([]string{}, def.Interfaces...), def.Types...)
		for _, name := range members {
			if _, ok := schema.Types[name]; !ok {
				return nil, ErrUnknownMember
			}
		}
	}

	for _, directive := range remote.Directives {
		if directive.Name == "" {
			return nil, ErrMissingName
		}
		if lo.Contains(builtinDirectives, directive.Name) {
			continue
		}

		schema.Directives[directive.Name] = &ast.DirectiveDefinition{
			// the formatter reads Src to tell builtin directives apart
			Position:    &ast.Position{Src: &ast.Source{}},
			Name:        directive.Name,
			Description: directive.Description,
			Arguments:   parseArgList(directive.Args),
			Locations: lo.Map(directive.Locations, func(loc string, _ int) ast.DirectiveLocation {
				return ast.DirectiveLocation(loc)
			}),
		}
	}

	return schema, nil
}

func parseType(remoteType fullType) *ast.Definition {
	if strings.HasPrefix(remoteType.Name, "__") || lo.Contains(builtinScalars, remoteType.Name) {
		return nil
	}

	definition := &ast.Definition{
		Name:        remoteType.Name,
		Description: remoteType.Description,
	}

	switch remoteType.Kind {
	case "OBJECT":
		definition.Kind = ast.Object
	case "SCALAR":
		definition.Kind = ast.Scalar
	case "INTERFACE":
		definition.Kind = ast.Interface
	case "UNION":
		definition.Kind = ast.Union
		definition.Types = typeNames(remoteType.PossibleTypes)
	case "INPUT_OBJECT":
		definition.Kind = ast.InputObject
	case "ENUM":
		definition.Kind = ast.Enum

		for _, value := range remoteType.EnumValues {
			definition.EnumValues = append(definition.EnumValues, &ast.EnumValueDefinition{
				Name:        value.Name,
				Description: value.Description,
				Directives:  deprecation(value.IsDeprecated, value.DeprecationReason),
			})
		}
	default:
		return nil
	}

	definition.Interfaces = typeNames(remoteType.Interfaces)

	for _, f := range remoteType.Fields {
		definition.Fields = append(definition.Fields, &ast.FieldDefinition{
			Name:        f.Name,
			Description: f.Description,
			Arguments:   parseArgList(f.Args),
			Type:        parseTypeRef(&f.Type),
			Directives:  deprecation(f.IsDeprecated, f.DeprecationReason),
		})
	}

	for _, f := range remoteType.InputFields {
		definition.Fields = append(definition.Fields, &ast.FieldDefinition{
			Name:         f.Name,
			Description:  f.Description,
			Type:         parseTypeRef(&f.Type),
			DefaultValue: parseDefaultValue(f.DefaultValue),
		})
	}

	return definition
}

func typeNames(refs []typeRef) []string {
	return lo.FilterMap(refs, func(ref typeRef, _ int) (string, bool) {
		return ref.Name, ref.Name != ""
	})
}

func deprecation(isDeprecated bool, reason *string) ast.DirectiveList {
	if !isDeprecated {
		return nil
	}

	directive := &ast.Directive{Name: "deprecated"}
	if reason != nil && *reason != defaultDeprecationReason {
		directive.Arguments = ast.ArgumentList{{
			Name:  "reason",
			Value: &ast.Value{Kind: ast.StringValue, Raw: *reason},
		}}
	}

	return ast.DirectiveList{directive}
}

func parseArgList(args []inputValue) ast.ArgumentDefinitionList {
	result := ast.ArgumentDefinitionList{}

	for _, argument := range args {
		result = append(result, &ast.ArgumentDefinition{
			Name:         argument.Name,
			Description:  argument.Description,
			Type:         parseTypeRef(&argument.Type),
			DefaultValue: parseDefaultValue(argument.DefaultValue),
		})
	}

	return result
}

// parseDefaultValue keeps the literal as is. The value is only ever printed
// back, so it is stored with a kind that prints Raw unquoted.
func parseDefaultValue(raw json.RawMessage) *ast.Value {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	literal := string(raw)

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		literal = s
	}

	return &ast.Value{
		Position: &ast.Position{},
		Raw:      literal,
		Kind:     ast.EnumValue,
	}
}

func parseTypeRef(ref *typeRef) *ast.Type {
	if ref == nil {
		return nil
	}

	switch ref.Kind {
	case "NON_NULL":
		inner := parseTypeRef(ref.OfType)
		if inner == nil {
			return nil
		}
		inner.NonNull = true
		return inner
	case "LIST":
		return ast.ListType(parseTypeRef(ref.OfType), &ast.Position{})
	default:
		return ast.NamedType(ref.Name, &ast.Position{})
	}
}
