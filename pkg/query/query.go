// Package query answers read-only requests about tree views: node maps,
// chains of ancestors, search suggestions and node info. The engine
// keeps no state between requests, every request opens its own
// read-only handle and closes it before returning.
package query

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gnames/gntol/pkg/config"
	"github.com/gnames/gntol/pkg/tree"
)

// Engine serves queries.
type Engine struct {
	opener       Opener
	rootName     string
	defaultLimit int
	maxLimit     int
}

// New creates an Engine.
func New(cfg config.QueryConfig, opener Opener) *Engine {
	return &Engine{
		opener:       opener,
		rootName:     cfg.RootName,
		defaultLimit: cfg.DefaultLimit,
		maxLimit:     cfg.MaxLimit,
	}
}

// Params are request parameters as they come from a client.
type Params struct {
	// Name of a node or a search text. Empty means the root.
	Name string
	// Type is 'node', 'sugg' or 'info'.
	Type string
	// ToRoot switches 'node' requests to ancestor chains.
	ToRoot bool
	// Excl is a node whose ancestors are left out of a chain.
	Excl string
	// Limit is the number of suggestions, empty means default.
	Limit string
	// Tree is 'trimmed', 'images' or 'picked', empty means 'images'.
	Tree string
}

// Handle dispatches a request. Invalid parameters produce an empty
// Response, errors come only from storage.
func (e *Engine) Handle(ctx context.Context, p Params) (Response, error) {
	var res Response
	view, ok := requestView(p.Tree)
	if !ok {
		return res, nil
	}
	name := p.Name
	if name == "" {
		name = e.rootName
	}

	switch p.Type {
	case "node":
		var err error
		if p.ToRoot {
			res.Nodes, err = e.LookupAncestorChain(ctx, view, name, p.Excl)
		} else {
			res.Nodes, err = e.LookupChildrenOf(ctx, view, name)
		}
		return res, err
	case "sugg":
		limit, ok := e.parseLimit(p.Limit)
		if !ok {
			return res, nil
		}
		sugg, err := e.LookupSuggestions(ctx, view, name, limit)
		if err != nil {
			return res, err
		}
		res.Sugg = sugg
		return res, nil
	case "info":
		info, err := e.LookupInfo(ctx, view, name)
		if err != nil {
			return res, err
		}
		res.Info = info
		return res, nil
	default:
		return res, nil
	}
}

// requestView converts the tree parameter to one of the reduced views.
func requestView(s string) (tree.View, bool) {
	if s == "" {
		return tree.Images, true
	}
	switch s {
	case "trimmed":
		return tree.Trimmed, true
	case "images":
		return tree.Images, true
	case "picked":
		return tree.Picked, true
	default:
		return tree.Images, false
	}
}

func (e *Engine) parseLimit(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return e.defaultLimit, true
	}
	res, err := strconv.Atoi(s)
	if err != nil || !e.validLimit(res) {
		return 0, false
	}
	return res, true
}

func (e *Engine) validLimit(limit int) bool {
	return limit > 0 && limit <= e.maxLimit
}

// withReader opens a handle for a view, runs fn and closes the handle.
func (e *Engine) withReader(
	ctx context.Context,
	view tree.View,
	fn func(Reader) error,
) (err error) {
	r, err := e.opener.Open(ctx, view)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, r.Close(ctx))
	}()
	return fn(r)
}
