// Package imgref describes images a node can display: none, an image of
// its own, an image linked from a descendant, or a pair of images for
// compound nodes.
package imgref

import (
	"encoding/json"
	"strings"
)

// Kind tells which variant an ImageRef holds.
type Kind int

const (
	None Kind = iota
	Single
	Pair
)

// ImageRef references external ids whose images represent a node.
// Empty ids in a pair mean the slot has no image.
type ImageRef struct {
	Kind   Kind
	First  string
	Second string
}

// NewSingle creates a reference to one image.
func NewSingle(id string) ImageRef {
	if id == "" {
		return ImageRef{}
	}
	return ImageRef{Kind: Single, First: id}
}

// NewPair creates a reference for a compound node. If both ids are
// empty the result is None.
func NewPair(a, b string) ImageRef {
	if a == "" && b == "" {
		return ImageRef{}
	}
	return ImageRef{Kind: Pair, First: a, Second: b}
}

// Parse converts a stored value ('id' or 'id1,id2') to ImageRef.
func Parse(s string) ImageRef {
	s = strings.TrimSpace(s)
	if s == "" {
		return ImageRef{}
	}
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return NewSingle(s)
	}
	return NewPair(strings.TrimSpace(a), strings.TrimSpace(b))
}

// IsNone returns true if there is no image.
func (r ImageRef) IsNone() bool {
	return r.Kind == None
}

// String returns the stored form of the reference.
func (r ImageRef) String() string {
	switch r.Kind {
	case Single:
		return r.First
	case Pair:
		return r.First + "," + r.Second
	default:
		return ""
	}
}

// FileName converts an external id to an image file name.
func FileName(id string) string {
	return id + ".jpg"
}

// MarshalJSON encodes None as null, Single as a file name and Pair as
// a two element array with null for an absent slot.
func (r ImageRef) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case Single:
		return json.Marshal(FileName(r.First))
	case Pair:
		return json.Marshal([2]*string{slot(r.First), slot(r.Second)})
	default:
		return []byte("null"), nil
	}
}

func slot(id string) *string {
	if id == "" {
		return nil
	}
	res := FileName(id)
	return &res
}
