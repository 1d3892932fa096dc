// Package sgf reads Smart Game Format (FF[4]) records.
package sgf

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is wrapped by every parse failure
var ErrSyntax = errors.New("sgf: syntax error")

// SyntaxError locates a parse failure in the input
type SyntaxError struct {
	Offset int // byte offset into the text
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sgf: %s at offset %d", e.Msg, e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Property is one identifier with its values, in file order
type Property struct {
	ID     string
	Values []string
}

// Node is one `;` of a game tree. Children[0] continues the main line, any
// further children are variations.
type Node struct {
	Props    []Property
	Children []*Node
	Parent   *Node
}

// Values returns every value of property id
func (n *Node) Values(id string) []string {
	for _, p := range n.Props {
		if p.ID == id {
			return p.Values
		}
	}
	return nil
}

// Get returns the first value of property id, or "" if absent
func (n *Node) Get(id string) string {
	if v := n.Values(id); len(v) > 0 {
		return v[0]
	}
	return ""
}

// Has reports whether the node carries property id
func (n *Node) Has(id string) bool {
	return n.Values(id) != nil
}

// Game is one top-level game tree
type Game struct {
	Root *Node
}

// MainLine returns the nodes along the first variation, root included
func (g *Game) MainLine() []*Node {
	var line []*Node
	for n := g.Root; n != nil; {
		line = append(line, n)
		if len(n.Children) == 0 {
			break
		}
		n = n.Children[0]
	}
	return line
}

// Collection is the content of one record file
type Collection struct {
	Games []*Game
}

// Parse reads every game tree in text
func Parse(text string) (*Collection, error) {
	p := &parser{src: text}
	c := &Collection{}
	p.skipSpace()
	for !p.eof() {
		if p.peek() != '(' {
			return nil, p.errorf("expected '(' but found %q", p.peek())
		}
		root := &Node{}
		if err := p.tree(root); err != nil {
			return nil, err
		}
		// The holder node is synthetic; its single child is the real root
		first := root.Children[0]
		first.Parent = nil
		c.Games = append(c.Games, &Game{Root: first})
		p.skipSpace()
	}
	if len(c.Games) == 0 {
		return nil, p.errorf("no game tree")
	}
	return c, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool  { return p.pos >= len(p.src) }
func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			p.pos++
		default:
			return
		}
	}
}

// tree parses "(" Sequence GameTree* ")" and hangs it below parent
func (p *parser) tree(parent *Node) error {
	open := p.pos
	p.pos++ // (
	p.skipSpace()
	if p.eof() || p.peek() != ';' {
		if p.eof() {
			return &SyntaxError{Offset: open, Msg: "unterminated game tree"}
		}
		return p.errorf("expected ';' but found %q", p.peek())
	}

	last := parent
	for !p.eof() && p.peek() == ';' {
		p.pos++
		n := &Node{Parent: last}
		if err := p.properties(n); err != nil {
			return err
		}
		last.Children = append(last.Children, n)
		last = n
		p.skipSpace()
	}

	for !p.eof() && p.peek() == '(' {
		if err := p.tree(last); err != nil {
			return err
		}
		p.skipSpace()
	}

	if p.eof() {
		return &SyntaxError{Offset: open, Msg: "unterminated game tree"}
	}
	if p.peek() != ')' {
		return p.errorf("unexpected %q", p.peek())
	}
	p.pos++
	return nil
}

func (p *parser) properties(n *Node) error {
	for {
		p.skipSpace()
		if p.eof() || !isLetter(p.peek()) {
			return nil
		}
		start := p.pos
		for !p.eof() && isLetter(p.peek()) {
			p.pos++
		}
		id := p.src[start:p.pos]

		p.skipSpace()
		if p.eof() || p.peek() != '[' {
			return p.errorf("property %s has no value", id)
		}
		var values []string
		for !p.eof() && p.peek() == '[' {
			v, err := p.value()
			if err != nil {
				return err
			}
			values = append(values, v)
			p.skipSpace()
		}
		n.Props = append(n.Props, Property{ID: id, Values: values})
	}
}

// value parses one bracketed value, resolving escapes
func (p *parser) value() (string, error) {
	open := p.pos
	p.pos++ // [
	var b strings.Builder
	for !p.eof() {
		c := p.peek()
		switch c {
		case ']':
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.eof() {
				break
			}
			// Escaped line break is a soft break and disappears
			switch p.peek() {
			case '\n':
				p.pos++
				if !p.eof() && p.peek() == '\r' {
					p.pos++
				}
				continue
			case '\r':
				p.pos++
				if !p.eof() && p.peek() == '\n' {
					p.pos++
				}
				continue
			}
			b.WriteByte(p.peek())
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", &SyntaxError{Offset: open, Msg: "unterminated property value"}
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
