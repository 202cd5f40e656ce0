package lexer

import (
	"svfront/internal/diag"
	"svfront/internal/token"
)

// scanOperatorOrPunct scans punctuation and operators, matching greedily:
// 4-char forms first, then 3, then 2, then 1.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.cursor.Buf.Content[sp.Start:sp.End])}
	}

	switch {
	case lx.try4('<', '<', '<', '='):
		return emit(token.SShlAssign)
	case lx.try4('>', '>', '>', '='):
		return emit(token.SShrAssign)
	}

	switch {
	case lx.try3('=', '=', '='):
		return emit(token.EqEqEq)
	case lx.try3('!', '=', '='):
		return emit(token.BangEqEq)
	case lx.try3('=', '=', '?'):
		return emit(token.EqEqQuestion)
	case lx.try3('!', '=', '?'):
		return emit(token.BangEqQuestion)
	case lx.try3('<', '<', '='):
		return emit(token.ShlAssign)
	case lx.try3('>', '>', '='):
		return emit(token.ShrAssign)
	case lx.try3('<', '<', '<'):
		return emit(token.SShl)
	case lx.try3('>', '>', '>'):
		return emit(token.SShr)
	case lx.try3('-', '>', '>'):
		return emit(token.NonBlockTriggerArrow)
	}

	switch {
	case lx.try2(':', ':'):
		return emit(token.ColonColon)
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	case lx.try2('.', '*'):
		return emit(token.DotStar)
	case lx.try2('+', '='):
		return emit(token.PlusAssign)
	case lx.try2('-', '='):
		return emit(token.MinusAssign)
	case lx.try2('*', '='):
		return emit(token.StarAssign)
	case lx.try2('/', '='):
		return emit(token.SlashAssign)
	case lx.try2('%', '='):
		return emit(token.PercentAssign)
	case lx.try2('&', '='):
		return emit(token.AmpAssign)
	case lx.try2('|', '='):
		return emit(token.PipeAssign)
	case lx.try2('^', '='):
		return emit(token.CaretAssign)
	case lx.try2('*', '*'):
		return emit(token.StarStar)
	case lx.try2('~', '&'):
		return emit(token.TildeAmp)
	case lx.try2('~', '|'):
		return emit(token.TildePipe)
	case lx.try2('~', '^'):
		return emit(token.TildeCaret)
	case lx.try2('^', '~'):
		return emit(token.CaretTilde)
	case lx.try2('&', '&'):
		return emit(token.AmpAmp)
	case lx.try2('|', '|'):
		return emit(token.PipePipe)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('<', '<'):
		return emit(token.Shl)
	case lx.try2('>', '>'):
		return emit(token.Shr)
	case lx.try2('+', '+'):
		return emit(token.PlusPlus)
	case lx.try2('-', '-'):
		return emit(token.MinusMinus)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '=':
		return emit(token.Assign)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '^':
		return emit(token.Caret)
	case '~':
		return emit(token.Tilde)
	case '?':
		return emit(token.Question)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '@':
		return emit(token.At)
	case '#':
		return emit(token.Hash)
	case '`':
		return emit(token.Grave)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unrecognized character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.cursor.Buf.Content[sp.Start:sp.End])}
	}
}
