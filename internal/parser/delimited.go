package parser

import (
	"github.com/lpp-lang/lpp/internal/lexer"
)

type delimitedConfig struct {
	Closing   lexer.TokenType
	Separator lexer.TokenType

	AllowEmpty bool

	MissingElementMsg   string
	MissingSeparatorMsg string
}

type delimitedResult[T any] struct {
	Items []T
}

// parseDelimited parses `item (sep item)* closing` starting with curTok on
// the first element (or on the closing token for an empty list). On success
// curTok is left on the closing token; on failure it is left on the token
// that broke the list. A separator directly before the closing token is
// always an error.
func parseDelimited[T any](p *Parser, cfg delimitedConfig, parseItem func(idx int) (T, bool)) (delimitedResult[T], bool) {
	result := delimitedResult[T]{Items: make([]T, 0)}

	if cfg.Separator == "" {
		cfg.Separator = lexer.COMMA
	}

	if cfg.Closing == "" {
		panic("parseDelimited requires a closing token")
	}

	missingElement := func() {
		msg := cfg.MissingElementMsg
		if msg == "" {
			msg = "expected element"
		}
		p.reportError(msg, p.curTok)
	}

	if p.curIs(cfg.Closing) {
		if cfg.AllowEmpty {
			return result, true
		}
		missingElement()
		return result, false
	}

	for {
		item, ok := parseItem(len(result.Items))
		if !ok {
			return result, false
		}
		result.Items = append(result.Items, item)

		switch p.peekTok.Type {
		case cfg.Separator:
			p.nextToken() // move to separator
			p.nextToken() // move to next potential element

			if p.curIs(cfg.Closing) {
				missingElement()
				return result, false
			}
			continue
		case cfg.Closing:
			p.nextToken()
			return result, true
		default:
			msg := cfg.MissingSeparatorMsg
			if msg == "" {
				msg = "expected '" + string(cfg.Separator) + "' or '" + string(cfg.Closing) + "'"
			}
			p.reportError(msg, p.peekTok)
			p.nextToken()
			return result, false
		}
	}
}

// skipToClosing advances until curTok is the closing token that matches the
// list curTok is in, or EOF. Nested open/closing pairs are skipped whole.
func (p *Parser) skipToClosing(open, closing lexer.TokenType) {
	depth := 0
	for !p.curIs(lexer.EOF) {
		switch p.curTok.Type {
		case open:
			depth++
		case closing:
			if depth == 0 {
				return
			}
			depth--
		}
		p.nextToken()
	}
}
