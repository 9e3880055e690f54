package printer

import (
	"strings"

	"github.com/matzehuels/prettify/pkg/doc"
)

// indentation is a persistent indentation prefix. Each value points at the
// indentation it extends, so children share their parent's value and a
// deeper level costs one string concatenation.
type indentation struct {
	value  string
	length int
	prev   *indentation // same prefix without the innermost frame
	root   *indentation // target of literal lines and DedentToRoot
}

func (ind *indentation) extend(s string) *indentation {
	if s == "" {
		return ind
	}
	return &indentation{
		value:  ind.value + s,
		length: ind.length + textWidth(s),
		prev:   ind,
		root:   ind.root,
	}
}

func (ind *indentation) indent(tabWidth int) *indentation {
	return ind.extend(strings.Repeat(" ", tabWidth))
}

func (ind *indentation) dedent() *indentation {
	if ind.prev == nil {
		return ind
	}
	if ind.prev.root == ind.root {
		return ind.prev
	}
	d := *ind.prev
	d.root = ind.root
	return &d
}

func (ind *indentation) markAsRoot() *indentation {
	d := *ind
	d.root = ind
	return &d
}

func (p *printer) align(ind *indentation, amount doc.AlignAmount) *indentation {
	switch amount.Kind {
	case doc.AlignSpaces:
		if amount.Spaces <= 0 {
			return ind
		}
		return ind.extend(strings.Repeat(" ", amount.Spaces))
	case doc.AlignLiteral:
		return ind.extend(amount.Literal)
	case doc.AlignDedent:
		return ind.dedent()
	case doc.AlignDedentToRoot:
		if ind.root != nil {
			return ind.root
		}
		return p.rootIndent
	case doc.AlignRoot:
		return ind.markAsRoot()
	}
	return ind
}
