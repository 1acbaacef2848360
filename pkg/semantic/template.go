package semantic

import (
	"fmt"
	"strings"
)

const (
	cubePlaceholder = "CUBE"
	securityPrefix  = "SECURITY_CONTEXT."
)

type tokenKind int

const (
	tokenSQL tokenKind = iota
	tokenCube
	tokenRef
	tokenSecurity
)

// token is one piece of an unresolved sql template.
type token struct {
	kind tokenKind
	text string // sql text, or the security context key
	cube string // referenced cube, empty for the owning cube
	name string // referenced member
}

// tokenize splits a sql template into literal text and {...} placeholders:
// {CUBE}, {member}, {cube.member} and {SECURITY_CONTEXT.key}.
func tokenize(src string) ([]token, error) {
	var tokens []token
	rest := src
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if strings.IndexByte(rest, '}') >= 0 {
				return nil, fmt.Errorf("unmatched '}' in %q", src)
			}
			if rest != "" {
				tokens = append(tokens, token{kind: tokenSQL, text: rest})
			}
			return tokens, nil
		}
		if strings.IndexByte(rest[:open], '}') >= 0 {
			return nil, fmt.Errorf("unmatched '}' in %q", src)
		}
		if open > 0 {
			tokens = append(tokens, token{kind: tokenSQL, text: rest[:open]})
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return nil, fmt.Errorf("unterminated '{' in %q", src)
		}
		inner := strings.TrimSpace(rest[open+1 : open+end])
		tok, err := placeholder(inner)
		if err != nil {
			return nil, fmt.Errorf("%w in %q", err, src)
		}
		tokens = append(tokens, tok)
		rest = rest[open+end+1:]
	}
}

func placeholder(inner string) (token, error) {
	switch {
	case inner == cubePlaceholder:
		return token{kind: tokenCube}, nil
	case strings.HasPrefix(inner, securityPrefix):
		key := strings.TrimPrefix(inner, securityPrefix)
		if key == "" {
			return token{}, fmt.Errorf("empty security context key")
		}
		return token{kind: tokenSecurity, text: key}, nil
	}

	cube, name, qualified := strings.Cut(inner, ".")
	if !qualified {
		cube, name = "", inner
	}
	if (qualified && !isName(cube)) || !isName(name) {
		return token{}, fmt.Errorf("invalid reference {%s}", inner)
	}
	return token{kind: tokenRef, cube: cube, name: name}, nil
}
