package ioquery

import (
	"testing"

	"github.com/gnames/gntol/pkg/query"
	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		msg  string
		s    query.Search
		want string
	}{
		{"prefix", query.Search{Text: "Homo", Prefix: true}, "homo%"},
		{"substring", query.Search{Text: "sapiens"}, "%sapiens%"},
		{"percent", query.Search{Text: "10%", Prefix: true}, `10\%%`},
		{"underscore", query.Search{Text: "a_b"}, `%a\_b%`},
		{"backslash", query.Search{Text: `a\b`, Prefix: true}, `a\\b%`},
		{"empty", query.Search{Prefix: true}, "%"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, likePattern(tt.s))
		})
	}
}
