package otol

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// readSupported streams an annotations document and returns ids of
// nodes that have supporting trees and no conflicting ones.
//
// The document is a JSON object with a 'nodes' member that maps node
// ids to objects with optional 'supported_by' and 'conflicts_with'
// members. Other members are skipped without being decoded.
func readSupported(r io.Reader) (map[string]struct{}, error) {
	res := make(map[string]struct{})
	iter := jsoniter.Parse(jsoniter.ConfigDefault, r, 1<<16)

	var found bool
	ok := iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		if field != "nodes" {
			it.Skip()
			return true
		}
		found = true
		if it.WhatIsNext() != jsoniter.ObjectValue {
			it.ReportError("readSupported", "'nodes' is not an object")
			return false
		}
		return it.ReadObjectCB(func(it *jsoniter.Iterator, id string) bool {
			if it.WhatIsNext() != jsoniter.ObjectValue {
				it.Skip()
				return true
			}
			var support, conflict int
			it.ReadObjectCB(func(it *jsoniter.Iterator, attr string) bool {
				switch attr {
				case "supported_by":
					support = countEntries(it)
				case "conflicts_with":
					conflict = countEntries(it)
				default:
					it.Skip()
				}
				return true
			})
			if support > 0 && conflict == 0 {
				res[id] = struct{}{}
			}
			return true
		})
	})

	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return nil, fmt.Errorf("cannot read annotations: %w", iter.Error)
	}
	if !ok {
		return nil, errors.New("annotations document is incomplete")
	}
	if !found {
		return nil, errors.New("annotations do not have 'nodes' member")
	}
	return res, nil
}

// countEntries returns the number of members of an object or elements
// of an array. Other values count as zero.
func countEntries(it *jsoniter.Iterator) int {
	var res int
	switch it.WhatIsNext() {
	case jsoniter.ObjectValue:
		it.ReadObjectCB(func(it *jsoniter.Iterator, _ string) bool {
			it.Skip()
			res++
			return true
		})
	case jsoniter.ArrayValue:
		it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			it.Skip()
			res++
			return true
		})
	default:
		it.Skip()
	}
	return res
}
