package parse

// jsTokenizer finds comments in JavaScript source. It understands enough of
// the lexical grammar to skip strings, template literals, and regular
// expression literals; it does not build a syntax tree.
type jsTokenizer struct{}

// NewJSTokenizer returns a Tokenizer for JavaScript.
func NewJSTokenizer() Tokenizer {
	return jsTokenizer{}
}

// Comments returns the comments in src in source order.
func (jsTokenizer) Comments(src string) ([]Comment, error) {
	s := &jsScanner{src: src, regexOK: true}
	if err := s.scan(); err != nil {
		return nil, err
	}
	return s.comments, nil
}

// Keywords after which a slash starts a regular expression.
var exprKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true,
	"of": true, "new": true, "delete": true, "void": true, "throw": true,
	"case": true, "do": true, "else": true, "yield": true, "await": true,
}

type jsScanner struct {
	src      string
	pos      int
	regexOK  bool
	depth    int
	subst    []int
	comments []Comment
}

func (s *jsScanner) peek(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

func (s *jsScanner) fail(offset int, reason string) error {
	return &TokenizeError{Offset: offset, Line: lineAt(s.src, offset), Reason: reason}
}

func (s *jsScanner) scan() error {
	if len(s.src) > 1 && s.src[0] == '#' && s.src[1] == '!' {
		s.skipLine()
	}
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '/' && s.peek(1) == '/':
			s.lineComment()
		case c == '/' && s.peek(1) == '*':
			if err := s.blockComment(); err != nil {
				return err
			}
		case c == '\'' || c == '"':
			if err := s.quoted(c); err != nil {
				return err
			}
			s.regexOK = false
		case c == '`':
			s.pos++
			if err := s.template(); err != nil {
				return err
			}
			s.regexOK = false
		case c == '/':
			if s.regexOK {
				if err := s.regex(); err != nil {
					return err
				}
				s.regexOK = false
			} else {
				s.pos++
				s.regexOK = true
			}
		case isIdentStart(c):
			start := s.pos
			for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
				s.pos++
			}
			s.regexOK = exprKeywords[s.src[start:s.pos]]
		case c >= '0' && c <= '9':
			for s.pos < len(s.src) && (isIdentPart(s.src[s.pos]) || s.src[s.pos] == '.') {
				s.pos++
			}
			s.regexOK = false
		case c == '{':
			s.depth++
			s.pos++
			s.regexOK = true
		case c == '}':
			s.pos++
			if n := len(s.subst); n > 0 && s.subst[n-1] == s.depth {
				s.subst = s.subst[:n-1]
				s.depth--
				if err := s.template(); err != nil {
					return err
				}
				s.regexOK = false
				continue
			}
			s.depth--
			s.regexOK = true
		case c == ')' || c == ']':
			s.pos++
			s.regexOK = false
		case (c == '+' || c == '-') && s.peek(1) == c:
			// Postfix when it follows an operand: a slash after it divides.
			s.pos += 2
		case c == '+' || c == '-':
			s.pos++
			s.regexOK = true
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			s.pos++
		default:
			s.pos++
			s.regexOK = true
		}
	}
	if len(s.subst) > 0 {
		return s.fail(len(s.src), "unterminated template literal")
	}
	return nil
}

func (s *jsScanner) skipLine() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' && s.src[s.pos] != '\r' {
		s.pos++
	}
}

func (s *jsScanner) lineComment() {
	start := s.pos
	s.skipLine()
	s.comments = append(s.comments, Comment{
		Kind:  LineComment,
		Text:  s.src[start+2 : s.pos],
		Start: start,
		End:   s.pos,
	})
}

func (s *jsScanner) blockComment() error {
	start := s.pos
	for i := start + 2; i+1 < len(s.src); i++ {
		if s.src[i] == '*' && s.src[i+1] == '/' {
			s.pos = i + 2
			s.comments = append(s.comments, Comment{
				Kind:  BlockComment,
				Text:  s.src[start+2 : i],
				Start: start,
				End:   s.pos,
			})
			return nil
		}
	}
	return s.fail(start, "unterminated comment")
}

func (s *jsScanner) quoted(q byte) error {
	start := s.pos
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			if s.pos-1 < len(s.src) && s.src[s.pos-1] == '\r' && s.pos < len(s.src) && s.src[s.pos] == '\n' {
				s.pos++
			}
		case q:
			s.pos++
			return nil
		case '\n', '\r':
			return s.fail(start, "unterminated string literal")
		default:
			s.pos++
		}
	}
	return s.fail(start, "unterminated string literal")
}

// template scans template text up to the closing backtick or the next
// substitution. The opening backtick or closing brace is already consumed.
func (s *jsScanner) template() error {
	start := s.pos
	for s.pos < len(s.src) {
		switch {
		case s.src[s.pos] == '\\':
			s.pos += 2
		case s.src[s.pos] == '`':
			s.pos++
			return nil
		case s.src[s.pos] == '$' && s.peek(1) == '{':
			s.pos += 2
			s.depth++
			s.subst = append(s.subst, s.depth)
			s.regexOK = true
			return nil
		default:
			s.pos++
		}
	}
	return s.fail(start, "unterminated template literal")
}

func (s *jsScanner) regex() error {
	start := s.pos
	s.pos++
	inClass := false
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				s.pos++
				for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
					s.pos++
				}
				return nil
			}
		case '\n', '\r':
			return s.fail(start, "unterminated regular expression")
		}
		s.pos++
	}
	return s.fail(start, "unterminated regular expression")
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
