package diagram

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrRender marks any failure to turn diagram source into a drawing.
// Callers fall back to showing the source text.
var ErrRender = errors.New("diagram render failed")

const ident = `[A-Za-z_][\w]*(?:~[^~\s]+~)?`

var (
	classDeclRe = regexp.MustCompile(`^class\s+(` + ident + `)(?:\s*\["([^"]*)"\])?\s*(?::::\w+)?\s*(\{.*)?$`)
	annotRe     = regexp.MustCompile(`^<<\s*([^>]+?)\s*>>\s*(` + ident + `)$`)
	memberRe    = regexp.MustCompile(`^(` + ident + `)\s*:\s*(.+)$`)
	noteForRe   = regexp.MustCompile(`^note\s+for\s+(` + ident + `)\s+"(.*)"$`)
	noteRe      = regexp.MustCompile(`^note\s+"(.*)"$`)
	relationRe  = regexp.MustCompile(`^(` + ident + `)\s+(?:"([^"]*)"\s+)?` +
		`(<\|--|--\|>|<\|\.\.|\.\.\|>|\*--|--\*|o--|--o|<--|-->|<\.\.|\.\.>|--|\.\.)` +
		`\s+(?:"([^"]*)"\s+)?(` + ident + `)(?:\s*:\s*(.*))?$`)
	genericRe = regexp.MustCompile(`~([^~\s]+)~`)
)

type relationOp struct {
	kind    RelationKind
	reverse bool
}

var relationOps = map[string]relationOp{
	"<|--": {Inheritance, false},
	"--|>": {Inheritance, true},
	"<|..": {Realization, false},
	"..|>": {Realization, true},
	"*--":  {Composition, false},
	"--*":  {Composition, true},
	"o--":  {Aggregation, false},
	"--o":  {Aggregation, true},
	"-->":  {Association, false},
	"<--":  {Association, true},
	"..>":  {Dependency, false},
	"<..":  {Dependency, true},
	"--":   {Link, false},
	"..":   {DashedLink, false},
}

// Parse reads a Mermaid classDiagram. Any line it does not understand is
// an error wrapping ErrRender.
func Parse(src string) (*Diagram, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	d := &Diagram{byID: make(map[string]*Class)}

	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		if line != "classDiagram" && !strings.HasPrefix(line, "classDiagram ") {
			return nil, fmt.Errorf("%w: unsupported diagram type %q", ErrRender, firstWord(line))
		}
		i++
		break
	}

	var open *Class // class whose block body is being read
	for ; i < len(lines); i++ {
		n := i + 1
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}

		if open != nil {
			if line == "}" {
				open = nil
				continue
			}
			addMemberLine(open, line)
			continue
		}

		switch {
		case strings.HasPrefix(line, "direction "):
			continue

		case classDeclRe.MatchString(line):
			m := classDeclRe.FindStringSubmatch(line)
			c := d.ensure(baseID(m[1]), false)
			c.Label = displayName(m[1])
			if m[2] != "" {
				c.Label = m[2]
			}
			body := strings.TrimSpace(m[3])
			if body == "" {
				continue
			}
			body = strings.TrimPrefix(body, "{")
			if strings.HasSuffix(body, "}") {
				parseInlineBody(c, strings.TrimSuffix(body, "}"))
				continue
			}
			if strings.TrimSpace(body) != "" {
				addMemberLine(c, body)
			}
			open = c

		case annotRe.MatchString(line):
			m := annotRe.FindStringSubmatch(line)
			d.ensure(baseID(m[2]), false).Stereotype = m[1]

		case noteForRe.MatchString(line):
			m := noteForRe.FindStringSubmatch(line)
			d.ensure(baseID(m[1]), true)
			d.Notes = append(d.Notes, Note{For: baseID(m[1]), Text: unescapeNote(m[2])})

		case noteRe.MatchString(line):
			m := noteRe.FindStringSubmatch(line)
			d.Notes = append(d.Notes, Note{Text: unescapeNote(m[1])})

		case relationRe.MatchString(line):
			m := relationRe.FindStringSubmatch(line)
			op := relationOps[m[3]]
			left, right := baseID(m[1]), baseID(m[5])
			d.ensure(left, true)
			d.ensure(right, true)
			rel := Relation{From: left, To: right, Kind: op.kind, Label: strings.TrimSpace(m[6]), FromCard: m[2], ToCard: m[4]}
			if op.reverse {
				rel.From, rel.To = rel.To, rel.From
				rel.FromCard, rel.ToCard = rel.ToCard, rel.FromCard
			}
			d.Relations = append(d.Relations, rel)

		case memberRe.MatchString(line):
			m := memberRe.FindStringSubmatch(line)
			c := d.ensure(baseID(m[1]), true)
			addMemberLine(c, m[2])

		default:
			return nil, fmt.Errorf("%w: line %d: unrecognized statement %q", ErrRender, n, line)
		}
	}

	if open != nil {
		return nil, fmt.Errorf("%w: class %s body is not closed", ErrRender, open.ID)
	}
	if len(d.Classes) == 0 {
		return nil, fmt.Errorf("%w: diagram has no classes", ErrRender)
	}
	return d, nil
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return s
}

func baseID(s string) string {
	if i := strings.IndexByte(s, '~'); i > 0 {
		return s[:i]
	}
	return s
}

func displayName(s string) string {
	return genericRe.ReplaceAllString(s, "<$1>")
}

func unescapeNote(s string) string {
	return strings.ReplaceAll(s, `\n`, " ")
}

// addMemberLine handles one line of a block body.
func addMemberLine(c *Class, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if strings.HasPrefix(line, "<<") && strings.HasSuffix(line, ">>") {
		c.Stereotype = strings.TrimSpace(line[2 : len(line)-2])
		return
	}
	c.Members = append(c.Members, cleanMember(line))
}

// parseInlineBody splits "{ <<interface>> +a() B +c() }" into members. A
// token starting with a visibility marker opens a new member; anything else
// continues the previous one.
func parseInlineBody(c *Class, body string) {
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			c.Members = append(c.Members, cleanMember(strings.Join(cur, " ")))
			cur = nil
		}
	}
	for _, tok := range tokenize(body) {
		switch {
		case strings.HasPrefix(tok, "<<") && strings.HasSuffix(tok, ">>"):
			flush()
			c.Stereotype = strings.TrimSpace(tok[2 : len(tok)-2])
		case startsMember(tok):
			flush()
			cur = append(cur, tok)
		default:
			cur = append(cur, tok)
		}
	}
	flush()
}

func startsMember(tok string) bool {
	switch tok[0] {
	case '+', '-', '#':
		return true
	case '~':
		// ~T~ on its own is a generic, not package visibility.
		return !genericRe.MatchString(tok) || genericRe.FindString(tok) != tok
	}
	return false
}

// tokenize splits on whitespace outside parentheses and << >>.
func tokenize(s string) []string {
	var (
		out   []string
		b     strings.Builder
		depth int
	)
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case r == '<' && i+1 < len(rs) && rs[i+1] == '<':
			depth++
			b.WriteString("<<")
			i++
			continue
		case r == '>' && i+1 < len(rs) && rs[i+1] == '>' && depth > 0:
			depth--
			b.WriteString(">>")
			i++
			continue
		}
		if (r == ' ' || r == '\t') && depth == 0 {
			if b.Len() > 0 {
				out = append(out, b.String())
				b.Reset()
			}
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

// cleanMember converts generics and drops the $ (static) and trailing *
// (abstract) classifiers.
func cleanMember(s string) string {
	s = genericRe.ReplaceAllString(s, "<$1>")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ")*", ")")
	return strings.Join(strings.Fields(s), " ")
}
