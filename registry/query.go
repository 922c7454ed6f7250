package registry

const fetchQueryName = "SubgraphFetchQuery"

var fetchQuery = `query SubgraphFetchQuery($graph_ref: ID!, $subgraph_name: ID!) {
	variant(ref: $graph_ref) {
		__typename
		... on GraphVariant {
			subgraph(name: $subgraph_name) {
				url
				activePartialSchema {
					sdl
				}
			}
			subgraphs {
				name
			}
		}
	}
}`

const graphVariantTypename = "GraphVariant"

type fetchResult struct {
	Variant *variant `json:"variant"`
}

type variant struct {
	Typename  string             `json:"__typename"`
	Subgraph  *publishedSubgraph `json:"subgraph"`
	Subgraphs []subgraphName     `json:"subgraphs"`
}

type publishedSubgraph struct {
	URL                 *string       `json:"url"`
	ActivePartialSchema partialSchema `json:"activePartialSchema"`
}

type partialSchema struct {
	SDL string `json:"sdl"`
}

type subgraphName struct {
	Name string `json:"name"`
}
