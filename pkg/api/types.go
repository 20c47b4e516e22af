package api

import (
	"encoding/json"
	"fmt"
)

// Region restricts search results to a market.
type Region string

const (
	RegionAll     Region = "All"
	RegionDenmark Region = "Denmark"
	RegionFrance  Region = "France"
	RegionGermany Region = "Germany"
	RegionSpain   Region = "Spain"
	RegionUS      Region = "US"
)

// Regions lists every selectable region.
var Regions = []Region{RegionAll, RegionDenmark, RegionFrance, RegionGermany, RegionSpain, RegionUS}

// SiteRankings are per-user site preferences applied to a search.
type SiteRankings struct {
	Blocked  []string `json:"blocked"`
	Disliked []string `json:"disliked"`
	Liked    []string `json:"liked"`
}

// SearchQuery is the body of the search endpoint. Zero values are omitted
// and left to the server defaults.
type SearchQuery struct {
	Query                string        `json:"query"`
	Page                 int           `json:"page,omitempty"`
	NumResults           int           `json:"numResults,omitempty"`
	Optic                string        `json:"optic,omitempty"`
	SelectedRegion       Region        `json:"selectedRegion,omitempty"`
	SiteRankings         *SiteRankings `json:"siteRankings,omitempty"`
	SafeSearch           *bool         `json:"safeSearch,omitempty"`
	FetchDiscussions     *bool         `json:"fetchDiscussions,omitempty"`
	FlattenResponse      *bool         `json:"flattenResponse,omitempty"`
	ReturnRankingSignals *bool         `json:"returnRankingSignals,omitempty"`
}

const (
	SearchResultWebsites = "websites"
	SearchResultBang     = "bang"
)

// SearchResult is either a page of websites or a bang redirect, tagged by Type.
type SearchResult struct {
	Type string `json:"type"`
	WebsitesResult
	BangHit
}

// IsBang reports whether the query resolved to a bang redirect.
func (r SearchResult) IsBang() bool { return r.Type == SearchResultBang }

// WebsitesResult is a page of ranked webpages plus optional widgets.
type WebsitesResult struct {
	Webpages            []DisplayedWebpage          `json:"webpages,omitempty"`
	NumHits             int                         `json:"numHits"`
	HasMoreResults      bool                        `json:"hasMoreResults"`
	SearchDurationMs    int64                       `json:"searchDurationMs"`
	DirectAnswer        *DisplayedAnswer            `json:"directAnswer,omitempty"`
	Discussions         []DisplayedWebpage          `json:"discussions,omitempty"`
	Sidebar             *DisplayedSidebar           `json:"sidebar,omitempty"`
	SpellCorrectedQuery *HighlightedSpellCorrection `json:"spellCorrectedQuery,omitempty"`
	Widget              *Widget                     `json:"widget,omitempty"`
}

// Bang is a shortcut that redirects a query to another site.
type Bang struct {
	Category    string `json:"c,omitempty"`
	Domain      string `json:"d,omitempty"`
	Rank        int    `json:"r,omitempty"`
	Site        string `json:"s,omitempty"`
	Subcategory string `json:"sc,omitempty"`
	Tag         string `json:"t"`
	URL         string `json:"u"`
}

// BangHit is the bang that matched and where it redirects.
type BangHit struct {
	Bang       *Bang  `json:"bang,omitempty"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// SignalScore is one ranking signal's contribution.
type SignalScore struct {
	Coefficient float64 `json:"coefficient"`
	Value       float64 `json:"value"`
}

type DisplayedWebpage struct {
	Title          string                 `json:"title"`
	URL            string                 `json:"url"`
	Site           string                 `json:"site"`
	Domain         string                 `json:"domain"`
	PrettyURL      string                 `json:"prettyUrl"`
	Snippet        Snippet                `json:"snippet"`
	RankingSignals map[string]SignalScore `json:"rankingSignals,omitempty"`
}

const (
	SnippetNormal          = "normal"
	SnippetStackOverflowQA = "stackOverflowQA"
)

// Snippet is a text excerpt or a StackOverflow Q&A, tagged by Type.
type Snippet struct {
	Type     string                 `json:"type"`
	Date     string                 `json:"date,omitempty"`
	Text     *TextSnippet           `json:"text,omitempty"`
	Question *StackOverflowQuestion `json:"question,omitempty"`
	Answers  []StackOverflowAnswer  `json:"answers,omitempty"`
}

type TextSnippet struct {
	Fragments []TextSnippetFragment `json:"fragments"`
}

type TextSnippetFragmentKind string

const (
	FragmentNormal      TextSnippetFragmentKind = "normal"
	FragmentHighlighted TextSnippetFragmentKind = "highlighted"
)

type TextSnippetFragment struct {
	Kind TextSnippetFragmentKind `json:"kind"`
	Text string                  `json:"text"`
}

// CodeOrText is one block of a StackOverflow body; Type is "code" or "text".
type CodeOrText struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type StackOverflowQuestion struct {
	Body []CodeOrText `json:"body"`
}

type StackOverflowAnswer struct {
	Body     []CodeOrText `json:"body"`
	Date     string       `json:"date"`
	URL      string       `json:"url"`
	Upvotes  int          `json:"upvotes"`
	Accepted bool         `json:"accepted"`
}

type DisplayedAnswer struct {
	Answer    string `json:"answer"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	PrettyURL string `json:"prettyUrl"`
	Snippet   string `json:"snippet"`
}

const (
	SidebarEntity        = "entity"
	SidebarStackOverflow = "stackOverflow"
)

// DisplayedSidebar is tagged by Type; Value is decoded on demand by Entity
// or StackOverflow.
type DisplayedSidebar struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// StackOverflowSidebar is the value of a stackOverflow sidebar.
type StackOverflowSidebar struct {
	Title  string              `json:"title"`
	Answer StackOverflowAnswer `json:"answer"`
}

// Entity decodes the sidebar value of an entity sidebar.
func (s DisplayedSidebar) Entity() (*DisplayedEntity, error) {
	if s.Type != SidebarEntity {
		return nil, fmt.Errorf("sidebar is %q, not %q", s.Type, SidebarEntity)
	}
	var e DisplayedEntity
	if err := json.Unmarshal(s.Value, &e); err != nil {
		return nil, &ParseError{Text: string(s.Value), Err: err}
	}
	return &e, nil
}

// StackOverflow decodes the sidebar value of a stackOverflow sidebar.
func (s DisplayedSidebar) StackOverflow() (*StackOverflowSidebar, error) {
	if s.Type != SidebarStackOverflow {
		return nil, fmt.Errorf("sidebar is %q, not %q", s.Type, SidebarStackOverflow)
	}
	var so StackOverflowSidebar
	if err := json.Unmarshal(s.Value, &so); err != nil {
		return nil, &ParseError{Text: string(s.Value), Err: err}
	}
	return &so, nil
}

type DisplayedEntity struct {
	Title           string            `json:"title"`
	SmallAbstract   EntitySnippet     `json:"smallAbstract"`
	ImageBase64     string            `json:"imageBase64,omitempty"`
	Info            []EntityInfo      `json:"info"`
	MatchScore      float64           `json:"matchScore"`
	RelatedEntities []DisplayedEntity `json:"relatedEntities"`
}

// EntityInfo is one (label, value) row of an entity infobox. On the wire it
// is a two-element array.
type EntityInfo struct {
	Key   string
	Value EntitySnippet
}

func (e *EntityInfo) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[0], &e.Key); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &e.Value)
}

func (e EntityInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Key, e.Value})
}

type EntitySnippet struct {
	Fragments []EntitySnippetFragment `json:"fragments"`
}

// EntitySnippetFragment is plain text (Kind "normal") or a link (Kind "link").
type EntitySnippetFragment struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// HighlightedSpellCorrection carries the corrected query; Highlighted marks
// the changes with <b> elements.
type HighlightedSpellCorrection struct {
	Raw         string `json:"raw"`
	Highlighted string `json:"highlighted"`
}

// Widget is a computed answer; the only Type is "calculator".
type Widget struct {
	Type  string      `json:"type"`
	Value Calculation `json:"value"`
}

type Calculation struct {
	Input  string  `json:"input"`
	Expr   Expr    `json:"expr"`
	Result float64 `json:"result"`
}

// Expr is a literal number or an operator node.
type Expr struct {
	Number *float64         `json:"Number,omitempty"`
	Op     *json.RawMessage `json:"Op,omitempty"`
}

// Suggestion is one autosuggest entry; Highlighted marks the matched prefix
// with <b> elements.
type Suggestion struct {
	Raw         string `json:"raw"`
	Highlighted string `json:"highlighted"`
}

type AutosuggestParams struct {
	Q string
}

type FactCheckParams struct {
	Claim    string `json:"claim"`
	Evidence string `json:"evidence"`
}

type FactCheckResponse struct {
	Score float64 `json:"score"`
}

// SiteParams identifies a host in the web graph.
type SiteParams struct {
	Site string
}

// PageParams identifies a page in the web graph.
type PageParams struct {
	Page string
}

type Node struct {
	Name string `json:"name"`
}

// FullEdge is a labelled link between two web graph nodes.
type FullEdge struct {
	From  Node   `json:"from"`
	To    Node   `json:"to"`
	Label string `json:"label"`
}

const (
	KnowsSiteKnown   = "known"
	KnowsSiteUnknown = "unknown"
)

// KnowsSite reports whether the web graph contains a host.
type KnowsSite struct {
	Type string `json:"type"`
	Site string `json:"site,omitempty"`
}

func (k KnowsSite) Known() bool { return k.Type == KnowsSiteKnown }

type SimilarSitesParams struct {
	Sites []string `json:"sites"`
	TopN  int      `json:"topN"`
}

type ScoredSite struct {
	Site        string  `json:"site"`
	Score       float64 `json:"score"`
	Description string  `json:"description,omitempty"`
}

type ExploreExportOpticParams struct {
	ChosenSites  []string `json:"chosenSites"`
	SimilarSites []string `json:"similarSites"`
}

type SitesExportOpticParams struct {
	SiteRankings SiteRankings `json:"siteRankings"`
}

// EncodedSavedState is an opaque assistant conversation handle.
type EncodedSavedState = string

// EncodedEncryptedState is the opaque state emitted when an assistant turn ends.
type EncodedEncryptedState = string

type AliceParams struct {
	Message   string
	Optic     string
	PrevState EncodedSavedState
}

// SaveStateParams is passed through to the assistant backend unchanged.
type SaveStateParams = json.RawMessage

const (
	ExecutionBeginSearch  = "beginSearch"
	ExecutionSearchResult = "searchResult"
	ExecutionSpeaking     = "speaking"
	ExecutionDone         = "done"
)

// ExecutionState is one assistant stream event, tagged by Type.
type ExecutionState struct {
	Type   string                `json:"type"`
	Query  string                `json:"query,omitempty"`
	Result []SimplifiedWebsite   `json:"result,omitempty"`
	Text   string                `json:"text,omitempty"`
	State  EncodedEncryptedState `json:"state,omitempty"`
}

type SimplifiedWebsite struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
	Site  string `json:"site"`
}

type SummarizeParams struct {
	Query string
	URL   string
}

type WidgetQuery struct {
	Query string `json:"query"`
}

type SidebarQuery struct {
	Query string `json:"query"`
}

type SpellcheckQuery struct {
	Query string `json:"query"`
}

// ImprovementStoreParams registers the shown results of a query so later
// clicks can be attributed to it.
type ImprovementStoreParams struct {
	Query string   `json:"query"`
	URLs  []string `json:"urls"`
}
