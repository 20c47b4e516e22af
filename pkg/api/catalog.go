package api

import (
	"context"
	"fmt"
	"net/url"
)

// TransportKind selects the primitive an endpoint is bound to.
type TransportKind string

const (
	TransportPlain  TransportKind = "plain"
	TransportJSON   TransportKind = "json"
	TransportStream TransportKind = "stream"
)

// EndpointSpec binds a named operation to its verb, path and primitive.
type EndpointSpec struct {
	Name      string
	Method    Method
	Path      string
	Transport TransportKind
}

// Endpoint names.
const (
	EndpointSearch               = "search"
	EndpointSearchWidget         = "searchWidget"
	EndpointSearchSidebar        = "searchSidebar"
	EndpointSearchSpellcheck     = "searchSpellcheck"
	EndpointAutosuggest          = "autosuggest"
	EndpointFactCheck            = "factCheck"
	EndpointWebgraphHostIngoing  = "webgraphHostIngoing"
	EndpointWebgraphHostOutgoing = "webgraphHostOutgoing"
	EndpointWebgraphHostKnows    = "webgraphHostKnows"
	EndpointWebgraphHostSimilar  = "webgraphHostSimilar"
	EndpointWebgraphPageIngoing  = "webgraphPageIngoing"
	EndpointWebgraphPageOutgoing = "webgraphPageOutgoing"
	EndpointAlice                = "alice"
	EndpointAliceSaveState       = "aliceSaveState"
	EndpointSummarize            = "summarize"
	EndpointExploreExport        = "exploreExport"
	EndpointSitesExport          = "sitesExport"
	EndpointImprovementStore     = "improvementStore"
)

var catalog = [...]EndpointSpec{
	{Name: EndpointSearch, Method: MethodPost, Path: "search", Transport: TransportJSON},
	{Name: EndpointSearchWidget, Method: MethodPost, Path: "search/widget", Transport: TransportJSON},
	{Name: EndpointSearchSidebar, Method: MethodPost, Path: "search/sidebar", Transport: TransportJSON},
	{Name: EndpointSearchSpellcheck, Method: MethodPost, Path: "search/spellcheck", Transport: TransportJSON},
	{Name: EndpointAutosuggest, Method: MethodPost, Path: "autosuggest", Transport: TransportJSON},
	{Name: EndpointFactCheck, Method: MethodPost, Path: "fact_check", Transport: TransportJSON},
	{Name: EndpointWebgraphHostIngoing, Method: MethodPost, Path: "webgraph/host/ingoing", Transport: TransportJSON},
	{Name: EndpointWebgraphHostOutgoing, Method: MethodPost, Path: "webgraph/host/outgoing", Transport: TransportJSON},
	{Name: EndpointWebgraphHostKnows, Method: MethodPost, Path: "webgraph/host/knows", Transport: TransportJSON},
	{Name: EndpointWebgraphHostSimilar, Method: MethodPost, Path: "webgraph/host/similar", Transport: TransportJSON},
	{Name: EndpointWebgraphPageIngoing, Method: MethodPost, Path: "webgraph/page/ingoing", Transport: TransportJSON},
	{Name: EndpointWebgraphPageOutgoing, Method: MethodPost, Path: "webgraph/page/outgoing", Transport: TransportJSON},
	{Name: EndpointAlice, Method: MethodGet, Path: "alice", Transport: TransportStream},
	{Name: EndpointAliceSaveState, Method: MethodPost, Path: "alice/save_state", Transport: TransportPlain},
	{Name: EndpointSummarize, Method: MethodGet, Path: "summarize", Transport: TransportStream},
	{Name: EndpointExploreExport, Method: MethodPost, Path: "explore/export", Transport: TransportPlain},
	{Name: EndpointSitesExport, Method: MethodPost, Path: "sites/export", Transport: TransportPlain},
	{Name: EndpointImprovementStore, Method: MethodPost, Path: "/improvement/store", Transport: TransportPlain},
}

var catalogIdx = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, spec := range catalog {
		if _, dup := idx[spec.Name]; dup {
			panic(fmt.Sprintf("duplicate endpoint %q", spec.Name))
		}
		idx[spec.Name] = i
	}
	return idx
}()

// Endpoints returns a copy of the endpoint table in declaration order.
func Endpoints() []EndpointSpec {
	out := make([]EndpointSpec, len(catalog))
	copy(out, catalog[:])
	return out
}

// LookupEndpoint returns the endpoint registered under name.
func LookupEndpoint(name string) (EndpointSpec, bool) {
	i, ok := catalogIdx[name]
	if !ok {
		return EndpointSpec{}, false
	}
	return catalog[i], true
}

func endpoint(name string) EndpointSpec {
	spec, ok := LookupEndpoint(name)
	if !ok {
		panic(fmt.Sprintf("unknown endpoint %q", name))
	}
	return spec
}

// Descriptor builds the request for this endpoint.
func (e EndpointSpec) Descriptor(query url.Values, body any) Descriptor {
	return Descriptor{Method: e.Method, Path: e.Path, Query: query, Body: body}
}

func callJSON[T any](ctx context.Context, name string, query url.Values, body any, opts []Option) *Pending[T] {
	d := endpoint(name).Descriptor(query, body)
	return RequestJSON[T](ctx, d.Method, d.Target(), d.Body, opts...)
}

func callPlain(ctx context.Context, name string, query url.Values, body any, opts []Option) *Pending[string] {
	d := endpoint(name).Descriptor(query, body)
	return RequestPlain(ctx, d.Method, d.Target(), d.Body, opts...)
}

func callStream[T any](ctx context.Context, name string, query url.Values, decode Decoder[T], opts []Option) *Stream[T] {
	d := endpoint(name).Descriptor(query, nil)
	return OpenStream(ctx, d.Target(), decode, opts...)
}
