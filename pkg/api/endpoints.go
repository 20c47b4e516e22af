package api

import (
	"context"
	"net/url"
)

// Search runs a free-text search.
func Search(ctx context.Context, q SearchQuery, opts ...Option) *Pending[SearchResult] {
	return callJSON[SearchResult](ctx, EndpointSearch, nil, q, opts)
}

// SearchWidget returns the widget matching the query, or nil.
func SearchWidget(ctx context.Context, q WidgetQuery, opts ...Option) *Pending[*Widget] {
	return callJSON[*Widget](ctx, EndpointSearchWidget, nil, q, opts)
}

// SearchSidebar returns the sidebar matching the query, or nil.
func SearchSidebar(ctx context.Context, q SidebarQuery, opts ...Option) *Pending[*DisplayedSidebar] {
	return callJSON[*DisplayedSidebar](ctx, EndpointSearchSidebar, nil, q, opts)
}

// SearchSpellcheck returns the corrected query, or nil when nothing changes.
func SearchSpellcheck(ctx context.Context, q SpellcheckQuery, opts ...Option) *Pending[*HighlightedSpellCorrection] {
	return callJSON[*HighlightedSpellCorrection](ctx, EndpointSearchSpellcheck, nil, q, opts)
}

// Autosuggest returns completions for a partial query.
func Autosuggest(ctx context.Context, p AutosuggestParams, opts ...Option) *Pending[[]Suggestion] {
	return callJSON[[]Suggestion](ctx, EndpointAutosuggest, url.Values{"q": {p.Q}}, nil, opts)
}

// FactCheck scores how well the evidence supports the claim.
func FactCheck(ctx context.Context, p FactCheckParams, opts ...Option) *Pending[FactCheckResponse] {
	return callJSON[FactCheckResponse](ctx, EndpointFactCheck, nil, p, opts)
}

func WebgraphHostIngoing(ctx context.Context, p SiteParams, opts ...Option) *Pending[[]FullEdge] {
	return callJSON[[]FullEdge](ctx, EndpointWebgraphHostIngoing, url.Values{"site": {p.Site}}, nil, opts)
}

func WebgraphHostOutgoing(ctx context.Context, p SiteParams, opts ...Option) *Pending[[]FullEdge] {
	return callJSON[[]FullEdge](ctx, EndpointWebgraphHostOutgoing, url.Values{"site": {p.Site}}, nil, opts)
}

func WebgraphHostKnows(ctx context.Context, p SiteParams, opts ...Option) *Pending[KnowsSite] {
	return callJSON[KnowsSite](ctx, EndpointWebgraphHostKnows, url.Values{"site": {p.Site}}, nil, opts)
}

func WebgraphHostSimilar(ctx context.Context, p SimilarSitesParams, opts ...Option) *Pending[[]ScoredSite] {
	return callJSON[[]ScoredSite](ctx, EndpointWebgraphHostSimilar, nil, p, opts)
}

func WebgraphPageIngoing(ctx context.Context, p PageParams, opts ...Option) *Pending[[]FullEdge] {
	return callJSON[[]FullEdge](ctx, EndpointWebgraphPageIngoing, url.Values{"page": {p.Page}}, nil, opts)
}

func WebgraphPageOutgoing(ctx context.Context, p PageParams, opts ...Option) *Pending[[]FullEdge] {
	return callJSON[[]FullEdge](ctx, EndpointWebgraphPageOutgoing, url.Values{"page": {p.Page}}, nil, opts)
}

// Alice opens an assistant session. Optic and PrevState are only sent when set.
func Alice(ctx context.Context, p AliceParams, opts ...Option) *Stream[ExecutionState] {
	query := url.Values{"message": {p.Message}}
	if p.Optic != "" {
		query.Set("optic", p.Optic)
	}
	if p.PrevState != "" {
		query.Set("prevState", p.PrevState)
	}
	return callStream(ctx, EndpointAlice, query, JSONDecoder[ExecutionState](), opts)
}

// AliceSaveState persists assistant state and resolves with its encoded handle.
func AliceSaveState(ctx context.Context, p SaveStateParams, opts ...Option) *Pending[EncodedSavedState] {
	return callPlain(ctx, EndpointAliceSaveState, nil, p, opts)
}

// Summarize streams a summary of url with respect to query, chunk by chunk.
func Summarize(ctx context.Context, p SummarizeParams, opts ...Option) *Stream[string] {
	query := url.Values{"query": {p.Query}, "url": {p.URL}}
	return callStream[string](ctx, EndpointSummarize, query, TextDecoder, opts)
}

// ExploreExport renders an optic from explored sites.
func ExploreExport(ctx context.Context, p ExploreExportOpticParams, opts ...Option) *Pending[string] {
	return callPlain(ctx, EndpointExploreExport, nil, p, opts)
}

// SitesExport renders an optic from the user's site rankings.
func SitesExport(ctx context.Context, p SitesExportOpticParams, opts ...Option) *Pending[string] {
	return callPlain(ctx, EndpointSitesExport, nil, p, opts)
}

// ImprovementStore registers shown results and resolves with the query id.
func ImprovementStore(ctx context.Context, p ImprovementStoreParams, opts ...Option) *Pending[string] {
	return callPlain(ctx, EndpointImprovementStore, nil, p, opts)
}
