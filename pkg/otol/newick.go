package otol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
)

// progressStep is the number of bytes between progress reports.
const progressStep = 1 << 20

var (
	quotedNameRe = regexp.MustCompile(`^'([^\\"]+) (ott\d+)'$`)
	bareNameRe   = regexp.MustCompile(`^([^\\"]+)_(ott\d+)$`)
)

// ParseError describes a malformed tree file.
type ParseError struct {
	// Pos is the byte offset of the cursor when the error happened.
	Pos int64
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at byte %d", e.Msg, e.Pos)
}

// rawNode is a parsed node before names are finalized.
type rawNode struct {
	name     string
	id       string
	tips     int
	parent   int
	children []int
}

// cursor reads a tree file keeping track of the byte position.
type cursor struct {
	r        *bufio.Reader
	pos      int64
	progress func(int64)
}

func newCursor(r io.Reader, progress func(int64)) *cursor {
	return &cursor{r: bufio.NewReaderSize(r, 1<<16), progress: progress}
}

func (c *cursor) peek() (byte, bool, error) {
	bs, err := c.r.Peek(1)
	if errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return bs[0], true, nil
}

func (c *cursor) next() (byte, bool, error) {
	b, err := c.r.ReadByte()
	if errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	c.pos++
	if c.progress != nil && c.pos%progressStep == 0 {
		c.progress(c.pos)
	}
	return b, true, nil
}

func (c *cursor) skipSpace() error {
	for {
		b, ok, err := c.peek()
		if err != nil || !ok {
			return err
		}
		if !isSpace(b) {
			return nil
		}
		if _, _, err = c.next(); err != nil {
			return err
		}
	}
}

// peekNonEOF returns the next byte or an error on end of input.
func (c *cursor) peekNonEOF() (byte, error) {
	b, ok, err := c.peek()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, c.errorf("unexpected end of input")
	}
	return b, nil
}

func (c *cursor) errorf(format string, args ...any) error {
	return &ParseError{Pos: c.pos, Msg: fmt.Sprintf(format, args...)}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// frame is an inner node with its children parsed so far.
type frame struct {
	children []int
}

// parseNewick reads a tree in Newick format. Nodes are returned in
// post-order, so every child precedes its parent and the root is last.
func parseNewick(r io.Reader, progress func(int64)) ([]rawNode, error) {
	c := newCursor(r, progress)
	var nodes []rawNode
	var stack []frame

	for {
		if err := c.skipSpace(); err != nil {
			return nil, err
		}
		b, err := c.peekNonEOF()
		if err != nil {
			return nil, err
		}
		if b == '(' {
			if _, _, err = c.next(); err != nil {
				return nil, err
			}
			stack = append(stack, frame{})
			continue
		}

		name, id, err := c.readName()
		if err != nil {
			return nil, err
		}
		idx := len(nodes)
		nodes = append(nodes, rawNode{name: name, id: id, tips: 1, parent: -1})

		// close as many inner nodes as the input allows
		for {
			if len(stack) == 0 {
				if err = c.finish(); err != nil {
					return nil, err
				}
				return nodes, nil
			}
			top := &stack[len(stack)-1]
			top.children = append(top.children, idx)

			if err = c.skipSpace(); err != nil {
				return nil, err
			}
			b, err = c.peekNonEOF()
			if err != nil {
				return nil, err
			}
			if b == ',' {
				_, _, err = c.next()
				if err != nil {
					return nil, err
				}
				break
			}
			if b != ')' {
				return nil, c.errorf("expected ',' or ')', got '%c'", b)
			}
			if _, _, err = c.next(); err != nil {
				return nil, err
			}
			if err = c.skipSpace(); err != nil {
				return nil, err
			}
			name, id, err = c.readName()
			if err != nil {
				return nil, err
			}

			var tips int
			idx = len(nodes)
			for _, ch := range top.children {
				tips += nodes[ch].tips
				nodes[ch].parent = idx
			}
			nodes = append(nodes, rawNode{
				name:     name,
				id:       id,
				tips:     tips,
				parent:   -1,
				children: top.children,
			})
			stack = stack[:len(stack)-1]
		}
	}
}

// finish consumes trailing whitespace and an optional ';'.
func (c *cursor) finish() error {
	for {
		if err := c.skipSpace(); err != nil {
			return err
		}
		b, ok, err := c.peek()
		if err != nil || !ok {
			return err
		}
		if b != ';' {
			return c.errorf("unexpected '%c' after the root node", b)
		}
		if _, _, err = c.next(); err != nil {
			return err
		}
	}
}

// readName reads a node label and converts it to a display name and
// an external id.
func (c *cursor) readName() (string, string, error) {
	start := c.pos
	var sb strings.Builder
	b, err := c.peekNonEOF()
	if err != nil {
		return "", "", err
	}

	if b == '\'' {
		for {
			b, ok, err := c.next()
			if err != nil {
				return "", "", err
			}
			if !ok {
				return "", "", c.errorf("unexpected end of input in quoted name")
			}
			sb.WriteByte(b)
			if b != '\'' || sb.Len() == 1 {
				continue
			}
			nb, ok, err := c.peek()
			if err != nil {
				return "", "", err
			}
			if ok && nb == '\'' {
				c.next()
				sb.WriteByte(nb)
				continue
			}
			break
		}
	} else {
		for {
			b, ok, err := c.peek()
			if err != nil {
				return "", "", err
			}
			if !ok || b == '(' || b == ')' || b == ',' || b == ';' {
				break
			}
			c.next()
			sb.WriteByte(b)
		}
		if b, ok, _ := c.peek(); ok && b == ';' {
			c.next()
		}
	}

	label := strings.ToLower(strings.TrimRightFunc(sb.String(), unicode.IsSpace))
	name, id, ok := convertLabel(label)
	if !ok {
		return "", "", &ParseError{
			Pos: start,
			Msg: fmt.Sprintf("invalid node name '%s'", label),
		}
	}
	return name, id, nil
}

// convertLabel splits a lower-cased label into a display name and id.
// Labels of anonymous nodes are returned as both name and id.
func convertLabel(label string) (string, string, bool) {
	if isAnonymous(label) {
		return label, label, true
	}
	if strings.HasPrefix(label, "'") {
		m := quotedNameRe.FindStringSubmatch(label)
		if m == nil {
			return "", "", false
		}
		return strings.ReplaceAll(m[1], "''", "'"), m[2], true
	}
	m := bareNameRe.FindStringSubmatch(label)
	if m == nil {
		return "", "", false
	}
	return strings.ReplaceAll(m[1], "_", " "), m[2], true
}

func isAnonymous(s string) bool {
	return strings.HasPrefix(s, anonPrefix)
}
