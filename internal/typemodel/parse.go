package typemodel

import (
	"fmt"
	"strings"
	"unicode"
)

// Env resolves names while parsing a type expression.
type Env struct {
	// Vars maps type-variable names in scope to their identities.
	Vars map[string]TypeID
}

// Parse parses a type expression such as "Map<K, List<? extends V>>",
// "int[]" or "? super Integer".
//
// Names found in env.Vars become type variables, "void" is void, names
// registered through Primitive are primitives and every other name is a
// declared type.
func (a *Arena) Parse(expr string, env Env) (TypeID, error) {
	p := &typeParser{arena: a, env: env, src: expr}

	id, err := p.parseType()
	if err != nil {
		return NoTypeID, err
	}

	p.skipSpace()

	if !p.eof() {
		return NoTypeID, p.errorf("unexpected %q", p.src[p.pos:])
	}

	return id, nil
}

// SplitTypeParam splits a type-parameter declaration "T extends A & B<T>"
// into its name and the textual bounds.
func SplitTypeParam(decl string) (name string, bounds []string, err error) {
	decl = strings.TrimSpace(decl)

	head, rest, hasBounds := strings.Cut(decl, " extends ")
	name = strings.TrimSpace(head)

	if !isIdent(name) {
		return "", nil, fmt.Errorf("invalid type parameter %q", decl)
	}

	if !hasBounds {
		return name, nil, nil
	}

	depth, start := 0, 0

	for i, r := range rest {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case '&':
			if depth == 0 {
				bounds = append(bounds, strings.TrimSpace(rest[start:i]))
				start = i + 1
			}
		}
	}

	bounds = append(bounds, strings.TrimSpace(rest[start:]))

	for _, b := range bounds {
		if b == "" {
			return "", nil, fmt.Errorf("empty bound in type parameter %q", decl)
		}
	}

	return name, bounds, nil
}

type typeParser struct {
	arena *Arena
	env   Env
	src   string
	pos   int
}

func (p *typeParser) parseType() (TypeID, error) {
	p.skipSpace()

	if p.peek() == '?' {
		p.pos++
		return p.parseWildcard()
	}

	name := p.ident()
	if name == "" {
		return NoTypeID, p.errorf("expected type name")
	}

	var id TypeID

	switch {
	case p.lookupVar(name) != NoTypeID:
		id = p.lookupVar(name)

	case name == "void":
		id = p.arena.Void()

	case p.arena.IsPrimitiveName(name):
		id = p.arena.Primitive(name)

	default:
		var args []TypeID

		p.skipSpace()

		if p.peek() == '<' {
			p.pos++

			var err error

			args, err = p.parseArgs()
			if err != nil {
				return NoTypeID, err
			}
		}

		id = p.arena.Declared(name, args...)
	}

	for {
		p.skipSpace()

		if !strings.HasPrefix(p.src[p.pos:], "[]") {
			return id, nil
		}

		p.pos += 2
		id = p.arena.Array(id)
	}
}

func (p *typeParser) parseArgs() ([]TypeID, error) {
	var args []TypeID

	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		p.skipSpace()

		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return args, nil
		default:
			return nil, p.errorf("expected ',' or '>'")
		}
	}
}

func (p *typeParser) parseWildcard() (TypeID, error) {
	p.skipSpace()

	save := p.pos
	kw := p.ident()

	switch kw {
	case "extends":
		bound, err := p.parseType()
		if err != nil {
			return NoTypeID, err
		}

		return p.arena.WildcardExtends(bound), nil

	case "super":
		bound, err := p.parseType()
		if err != nil {
			return NoTypeID, err
		}

		return p.arena.WildcardSuper(bound), nil

	default:
		p.pos = save
		return p.arena.Wildcard(), nil
	}
}

func (p *typeParser) lookupVar(name string) TypeID {
	if p.env.Vars == nil {
		return NoTypeID
	}

	return p.env.Vars[name]
}

func (p *typeParser) ident() string {
	start := p.pos

	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if !isIdentRune(r, p.pos == start) {
			break
		}

		p.pos++
	}

	return p.src[start:p.pos]
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.src[p.pos]
}

func (p *typeParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("type %q at offset %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if !isIdentRune(r, i == 0) {
			return false
		}
	}

	return true
}

func isIdentRune(r rune, first bool) bool {
	if r == '_' || r == '$' || (r < unicode.MaxASCII && unicode.IsLetter(r)) {
		return true
	}

	if first {
		return false
	}

	return r == '.' || unicode.IsDigit(r)
}
