// Package schema provides database schema models for gntol.
// Tree views share the same models and differ by table suffix.
package schema

import (
	"github.com/gnames/gntol/pkg/tree"
)

// Node is a node of a tree view.
type Node struct {
	// Name is the unique display name.
	Name string `gorm:"primaryKey;type:text"`

	// OttID is the external id of the node (for example 'ott770315').
	OttID string `gorm:"column:id;type:text;unique;not null"`

	// Tips is the number of descendant leaves.
	Tips int `gorm:"not null"`
}

// Edge connects a parent with a child.
type Edge struct {
	Parent string `gorm:"primaryKey;type:text"`
	Child  string `gorm:"primaryKey;type:text"`

	// PSupport is true when placement of the child is supported.
	PSupport bool `gorm:"column:p_support;not null"`
}

// LinkedImage is an image borrowed by a node from its descendants.
type LinkedImage struct {
	Name string `gorm:"primaryKey;type:text"`

	// OttIDs is either one external id or two ids separated by a comma,
	// where either slot of a pair can be empty.
	OttIDs string `gorm:"column:otol_ids;type:text;not null"`
}

// AltName is an alternative (usually vernacular) name of a node.
type AltName struct {
	Name    string `gorm:"primaryKey;type:text"`
	AltName string `gorm:"column:alt_name;primaryKey;type:text"`

	// PrefAlt marks the preferred alternative name.
	PrefAlt bool `gorm:"column:pref_alt;not null"`

	// Src is the source of the alternative name ('eol', 'enwiki', ...).
	Src string `gorm:"type:text"`
}

// WikiID maps a node to a wiki page.
type WikiID struct {
	Name   string `gorm:"primaryKey;type:text"`
	PageID int64  `gorm:"column:id;not null"`
}

// Desc is a description of a wiki page.
type Desc struct {
	WikiID int64  `gorm:"column:wiki_id;primaryKey;autoIncrement:false"`
	Desc   string `gorm:"column:desc;type:text"`

	// FromDBP is true when the text came from the alternative source.
	FromDBP bool `gorm:"column:from_dbp;not null"`
}

// NodeImage is an image that belongs to a node.
type NodeImage struct {
	Name  string `gorm:"primaryKey;type:text"`
	ImgID int64  `gorm:"column:img_id;not null"`
	Src   string `gorm:"type:text;not null"`
}

// Image is metadata of an image.
type Image struct {
	ID      int64  `gorm:"primaryKey;autoIncrement:false"`
	Src     string `gorm:"primaryKey;type:text"`
	URL     string `gorm:"column:url;type:text"`
	License string `gorm:"type:text"`
	Artist  string `gorm:"type:text"`
	Credit  string `gorm:"type:text"`
}

// NodeIUCN is a conservation status of a node.
type NodeIUCN struct {
	Name string `gorm:"primaryKey;type:text"`
	IUCN string `gorm:"column:iucn;type:text;not null"`
}

// NodePop is popularity of a node.
type NodePop struct {
	Name string `gorm:"primaryKey;type:text"`
	Pop  int    `gorm:"not null"`
}

func (Node) TableName() string        { return NodesTable(tree.Full) }
func (Edge) TableName() string        { return EdgesTable(tree.Full) }
func (LinkedImage) TableName() string { return LinkedImagesTable(tree.Full) }
func (AltName) TableName() string     { return "names" }
func (WikiID) TableName() string      { return "wiki_ids" }
func (Desc) TableName() string        { return "descs" }
func (NodeImage) TableName() string   { return "node_imgs" }
func (Image) TableName() string       { return "images" }
func (NodeIUCN) TableName() string    { return "node_iucn" }
func (NodePop) TableName() string     { return "node_pop" }

// NodesTable returns the name of the nodes table of a view.
func NodesTable(v tree.View) string {
	return "nodes" + v.Suffix()
}

// EdgesTable returns the name of the edges table of a view.
func EdgesTable(v tree.View) string {
	return "edges" + v.Suffix()
}

// LinkedImagesTable returns the name of the linked images table of
// a view.
func LinkedImagesTable(v tree.View) string {
	return "linked_imgs" + v.Suffix()
}
