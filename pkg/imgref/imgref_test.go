package imgref_test

import (
	"encoding/json"
	"testing"

	"github.com/gnames/gntol/pkg/imgref"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		msg    string
		stored string
		res    imgref.ImageRef
	}{
		{"empty", "", imgref.ImageRef{}},
		{"single", "ott6", imgref.NewSingle("ott6")},
		{"pair", "ott12,ott13", imgref.NewPair("ott12", "ott13")},
		{"first only", "ott9,", imgref.ImageRef{Kind: imgref.Pair, First: "ott9"}},
		{"second only", ",ott2", imgref.ImageRef{Kind: imgref.Pair, Second: "ott2"}},
		{"both empty", ",", imgref.ImageRef{}},
	}
	for _, v := range tests {
		res := imgref.Parse(v.stored)
		assert.Equal(v.res, res, v.msg)
		if !res.IsNone() {
			assert.Equal(v.stored, res.String(), v.msg)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		msg string
		ref imgref.ImageRef
		res string
	}{
		{"none", imgref.ImageRef{}, `null`},
		{"single", imgref.NewSingle("ott6"), `"ott6.jpg"`},
		{"pair", imgref.NewPair("ott12", "ott13"), `["ott12.jpg","ott13.jpg"]`},
		{"half pair", imgref.NewPair("ott9", ""), `["ott9.jpg",null]`},
	}
	for _, v := range tests {
		res, err := json.Marshal(v.ref)
		assert.Nil(err)
		assert.Equal(v.res, string(res), v.msg)
	}
}
