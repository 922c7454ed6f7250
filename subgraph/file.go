package subgraph

import (
	"context"
	"os"

	"github.com/buildbuildio/supergraph/config"
)

// FileResolver reads a subgraph schema from a file relative to the
// supergraph config. It is always ready and reads the file on every call.
type FileResolver struct {
	configRoot string
	path       string
	unresolved config.UnresolvedSubgraph
}

func NewFileResolver(configRoot, path string, unresolved config.UnresolvedSubgraph) *FileResolver {
	return &FileResolver{
		configRoot: configRoot,
		path:       path,
		unresolved: unresolved,
	}
}

func (*FileResolver) resolver() {}

func (r *FileResolver) Ready(context.Context) error {
	return nil
}

func (r *FileResolver) Resolve(ctx context.Context) (*FullyResolvedSubgraph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := r.unresolved.Name()

	file, err := r.unresolved.ResolveFilePath(r.configRoot, r.path)
	if err != nil {
		return nil, &ResolveError{Kind: FileNotFound, SubgraphName: name, Path: r.path, Err: err}
	}

	schema, err := os.ReadFile(file)
	if err != nil {
		return nil, &ResolveError{Kind: Fs, SubgraphName: name, Path: file, Err: err}
	}

	var options []Option
	if routingURL := r.unresolved.RoutingURL(); routingURL != nil {
		options = append(options, WithRoutingURL(*routingURL))
	}

	return New(name, string(schema), r.unresolved.Schema(), options...), nil
}
