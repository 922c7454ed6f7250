package subgraph

import (
	"context"

	"github.com/buildbuildio/supergraph/config"
)

// SdlResolver wraps a schema given inline in the config. It never fails.
type SdlResolver struct {
	sdl        string
	unresolved config.UnresolvedSubgraph
}

func NewSdlResolver(sdl string, unresolved config.UnresolvedSubgraph) *SdlResolver {
	return &SdlResolver{sdl: sdl, unresolved: unresolved}
}

func (*SdlResolver) resolver() {}

func (r *SdlResolver) Ready(context.Context) error {
	return nil
}

func (r *SdlResolver) Resolve(context.Context) (*FullyResolvedSubgraph, error) {
	var options []Option
	if routingURL := r.unresolved.RoutingURL(); routingURL != nil {
		options = append(options, WithRoutingURL(*routingURL))
	}

	return New(r.unresolved.Name(), r.sdl, config.SdlSource{Sdl: r.sdl}, options...), nil
}
