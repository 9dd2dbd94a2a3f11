package parser

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

var (
	// Parser pools to avoid recreating parsers
	tsPool = sync.Pool{
		New: func() interface{} {
			p := sitter.NewParser()
			p.SetLanguage(typescript.GetLanguage())
			return p
		},
	}
	tsxPool = sync.Pool{
		New: func() interface{} {
			p := sitter.NewParser()
			p.SetLanguage(tsx.GetLanguage())
			return p
		},
	}
)

// Tree is a parsed TypeScript document that answers line-level questions
// about its classes and methods. Rows are 0-based line indices.
type Tree struct {
	root    *sitter.Node
	content []byte
}

// Parse parses content as TypeScript, or TSX when tsx is set
func Parse(ctx context.Context, content []byte, tsx bool) (*Tree, error) {
	pool := &tsPool
	if tsx {
		pool = &tsxPool
	}

	p := pool.Get().(*sitter.Parser)
	defer pool.Put(p)

	tree, err := p.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	return &Tree{root: tree.RootNode(), content: content}, nil
}

// HasErrors reports whether the parser had to recover from syntax errors
func (t *Tree) HasErrors() bool {
	return t.root.HasError()
}

// ClassOpenRows returns the rows on which classes called name are declared
func (t *Tree) ClassOpenRows(name string) []int {
	var rows []int
	t.eachClass(name, func(class, _ *sitter.Node) {
		rows = append(rows, int(class.StartPoint().Row))
	})
	return rows
}

// ClassCloseRows returns the rows holding the closing brace of the body of
// classes called name
func (t *Tree) ClassCloseRows(name string) []int {
	var rows []int
	t.eachClass(name, func(_, body *sitter.Node) {
		if body != nil {
			rows = append(rows, int(body.EndPoint().Row))
		}
	})
	return rows
}

// MethodRows returns the first row of every method definition called name,
// including async, static and accessor forms.
func (t *Tree) MethodRows(name string) []int {
	var rows []int
	t.walk(func(n *sitter.Node) {
		if n.Type() != "method_definition" {
			return
		}
		if nameNode := n.ChildByFieldName("name"); nameNode != nil && nameNode.Content(t.content) == name {
			rows = append(rows, int(n.StartPoint().Row))
		}
	})
	return rows
}

func (t *Tree) eachClass(name string, fn func(class, body *sitter.Node)) {
	t.walk(func(n *sitter.Node) {
		switch n.Type() {
		case "class_declaration", "abstract_class_declaration", "class":
		default:
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil || nameNode.Content(t.content) != name {
			return
		}
		fn(n, n.ChildByFieldName("body"))
	})
}

func (t *Tree) walk(visit func(*sitter.Node)) {
	var traverse func(*sitter.Node)
	traverse = func(n *sitter.Node) {
		visit(n)
		for i := 0; i < int(n.ChildCount()); i++ {
			traverse(n.Child(i))
		}
	}
	traverse(t.root)
}
