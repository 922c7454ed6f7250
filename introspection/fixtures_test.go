package introspection

const productsSDL = `extend schema @link(url: "https://specs.apollo.dev/federation/v2.3", import: ["@key"])

type Product @key(fields: "id") {
	id: ID!
}
`

var productsIntrospection = `{
	"__schema": {
		"queryType": {"name": "RootQuery"},
		"mutationType": null,
		"subscriptionType": null,
		"types": [
			{
				"kind": "OBJECT",
				"name": "RootQuery",
				"description": "",
				"fields": [
					{
						"name": "product",
						"description": "Find a product",
						"args": [
							{"name": "id", "description": "", "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "ID", "ofType": null}}, "defaultValue": null}
						],
						"type": {"kind": "OBJECT", "name": "Product", "ofType": null},
						"isDeprecated": false,
						"deprecationReason": null
					},
					{
						"name": "products",
						"description": "",
						"args": [
							{"name": "first", "description": "", "type": {"kind": "SCALAR", "name": "Int", "ofType": null}, "defaultValue": "10"},
							{"name": "kind", "description": "", "type": {"kind": "ENUM", "name": "Kind", "ofType": null}, "defaultValue": "BOOK"},
							{"name": "filter", "description": "", "type": {"kind": "INPUT_OBJECT", "name": "Filter", "ofType": null}, "defaultValue": null}
						],
						"type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "LIST", "name": null, "ofType": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "OBJECT", "name": "Product", "ofType": null}}}},
						"isDeprecated": false,
						"deprecationReason": null
					},
					{
						"name": "search",
						"description": "",
						"args": [],
						"type": {"kind": "UNION", "name": "SearchResult", "ofType": null},
						"isDeprecated": false,
						"deprecationReason": null
					}
				],
				"inputFields": null,
				"interfaces": [],
				"enumValues": null,
				"possibleTypes": null
			},
			{
				"kind": "OBJECT",
				"name": "Product",
				"description": "",
				"fields": [
					{"name": "id", "description": "", "args": [], "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "ID", "ofType": null}}, "isDeprecated": false, "deprecationReason": null},
					{"name": "name", "description": "", "args": [], "type": {"kind": "SCALAR", "name": "String", "ofType": null}, "isDeprecated": true, "deprecationReason": "use title"},
					{"name": "sku", "description": "", "args": [], "type": {"kind": "SCALAR", "name": "String", "ofType": null}, "isDeprecated": true, "deprecationReason": "No longer supported"},
					{"name": "createdAt", "description": "", "args": [], "type": {"kind": "SCALAR", "name": "DateTime", "ofType": null}, "isDeprecated": false, "deprecationReason": null}
				],
				"inputFields": null,
				"interfaces": [{"kind": "INTERFACE", "name": "Node", "ofType": null}],
				"enumValues": null,
				"possibleTypes": null
			},
			{
				"kind": "INTERFACE",
				"name": "Node",
				"description": "",
				"fields": [
					{"name": "id", "description": "", "args": [], "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "ID", "ofType": null}}, "isDeprecated": false, "deprecationReason": null}
				],
				"inputFields": null,
				"interfaces": [],
				"enumValues": null,
				"possibleTypes": [{"kind": "OBJECT", "name": "Product", "ofType": null}]
			},
			{
				"kind": "UNION",
				"name": "SearchResult",
				"description": "",
				"fields": null,
				"inputFields": null,
				"interfaces": null,
				"enumValues": null,
				"possibleTypes": [{"kind": "OBJECT", "name": "Product", "ofType": null}]
			},
			{
				"kind": "ENUM",
				"name": "Kind",
				"description": "Product kinds",
				"fields": null,
				"inputFields": null,
				"interfaces": null,
				"enumValues": [
					{"name": "BOOK", "description": "", "isDeprecated": false, "deprecationReason": null},
					{"name": "FILM", "description": "", "isDeprecated": false, "deprecationReason": null}
				],
				"possibleTypes": null
			},
			{
				"kind": "INPUT_OBJECT",
				"name": "Filter",
				"description": "",
				"fields": null,
				"inputFields": [
					{"name": "tags", "description": "", "type": {"kind": "LIST", "name": null, "ofType": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "String", "ofType": null}}}, "defaultValue": "[\"new\"]"},
					{"name": "limit", "description": "", "type": {"kind": "SCALAR", "name": "Int", "ofType": null}, "defaultValue": 5}
				],
				"interfaces": null,
				"enumValues": null,
				"possibleTypes": null
			},
			{"kind": "SCALAR", "name": "DateTime", "description": "", "fields": null, "inputFields": null, "interfaces": null, "enumValues": null, "possibleTypes": null},
			{"kind": "SCALAR", "name": "ID", "description": "", "fields": null, "inputFields": null, "interfaces": null, "enumValues": null, "possibleTypes": null},
			{"kind": "SCALAR", "name": "String", "description": "", "fields": null, "inputFields": null, "interfaces": null, "enumValues": null, "possibleTypes": null},
			{"kind": "SCALAR", "name": "Int", "description": "", "fields": null, "inputFields": null, "interfaces": null, "enumValues": null, "possibleTypes": null},
			{"kind": "OBJECT", "name": "__Schema", "description": "", "fields": [], "inputFields": null, "interfaces": [], "enumValues": null, "possibleTypes": null}
		],
		"directives": [
			{"name": "include", "description": "", "locations": ["FIELD"], "args": [{"name": "if", "description": "", "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "Boolean", "ofType": null}}, "defaultValue": null}]},
			{"name": "auth", "description": "", "locations": ["FIELD_DEFINITION", "OBJECT"], "args": [{"name": "role", "description": "", "type": {"kind": "SCALAR", "name": "String", "ofType": null}, "defaultValue": "\"admin\""}]}
		]
	}
}`
