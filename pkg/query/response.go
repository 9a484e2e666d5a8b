package query

import (
	"encoding/json"

	"github.com/gnames/gntol/pkg/imgref"
)

// Node describes a node in query results.
type Node struct {
	ExternalID string          `json:"externalId"`
	Children   []string        `json:"children"`
	Parent     *string         `json:"parent"`
	Tips       int             `json:"tips"`
	Support    bool            `json:"phylogeneticSupport"`
	CommonName *string         `json:"commonName"`
	ImageName  imgref.ImageRef `json:"imageName"`
	IUCN       *string         `json:"iucnStatus"`
}

// Suggestion is a search suggestion. CanonicalName is set when Name is
// an alternative name of a node.
type Suggestion struct {
	Name          string  `json:"name"`
	CanonicalName *string `json:"canonicalName"`
	Pop           int     `json:"pop"`
}

// SuggResponse holds suggestions and tells if there are more of them.
type SuggResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
	HasMore     bool         `json:"hasMore"`
}

// DescInfo is a description of a node.
type DescInfo struct {
	Text string `json:"text"`
	// SourceID is the id of the wiki page.
	SourceID int64 `json:"sourceId"`
	// FromAlt is true when the text came from the alternative source.
	FromAlt bool `json:"fromAlternateSource"`
}

// ImgInfo is metadata of an image.
type ImgInfo struct {
	ID      int64  `json:"id"`
	Source  string `json:"source"`
	URL     string `json:"url"`
	License string `json:"license"`
	Artist  string `json:"artist"`
	Credit  string `json:"credit"`
}

// NodeInfo combines a node with its description and image.
type NodeInfo struct {
	Node        Node      `json:"node"`
	Description *DescInfo `json:"description"`
	Image       *ImgInfo  `json:"image"`
}

// InfoResponse describes a node. For compound nodes SubNodesInfo has
// two elements, one per sub-name, nil if the sub-node is absent from
// the view.
type InfoResponse struct {
	Node         NodeInfo    `json:"node"`
	SubNodesInfo []*NodeInfo `json:"subNodesInfo"`
}

// Response is a result of Handle. At most one of its fields is set, an
// empty Response encodes as null.
type Response struct {
	Nodes map[string]Node
	Sugg  *SuggResponse
	Info  *InfoResponse
}

// IsEmpty is true if there is nothing to return.
func (r Response) IsEmpty() bool {
	return r.Nodes == nil && r.Sugg == nil && r.Info == nil
}

// MarshalJSON encodes the field that is set.
func (r Response) MarshalJSON() ([]byte, error) {
	switch {
	case r.Nodes != nil:
		return json.Marshal(r.Nodes)
	case r.Sugg != nil:
		return json.Marshal(r.Sugg)
	case r.Info != nil:
		return json.Marshal(r.Info)
	default:
		return []byte("null"), nil
	}
}
