package bvh

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/mocapkit/bvhrig/geom"
)

// Parser for bvh file.
type Parser struct {
	name string
	r    io.Reader
	t    *tokenizer
	err  error

	peeked  bool
	peekTyp tokenType
	peekTok string
}

// NewParser returns new parser.
func NewParser(r io.Reader, path string) *Parser {
	return &Parser{name: path, r: r}
}

func (p *Parser) malformedf(f string, a ...interface{}) {
	if p.err == nil {
		line := 1
		if p.t != nil {
			line = p.t.line
		}
		p.err = &MalformedFileError{Path: p.name, Line: line, Msg: fmt.Sprintf(f, a...)}
	}
}

// prepare reads the whole content and sets up the tokenizer. Joint names
// from older motion capture tools are not always UTF-8; non-UTF8 content is
// decoded as Shift_JIS before tokenizing.
func (p *Parser) prepare() {
	data, err := io.ReadAll(p.r)
	if err != nil {
		if p.err == nil {
			p.err = &IOError{Path: p.name, Err: err}
		}
		return
	}
	if bytes.IndexByte(data, 0) >= 0 {
		p.malformedf("not a text file")
		return
	}
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err != nil {
			p.malformedf("undecodable text: %v", err)
			return
		}
		data = decoded
	}
	p.t = newTokenizer(bytes.NewReader(data))
}

func (p *Parser) next() (tokenType, string) {
	if p.peeked {
		p.peeked = false
		return p.peekTyp, p.peekTok
	}
	return p.t.next()
}

func (p *Parser) unread(typ tokenType, tok string) {
	p.peeked = true
	p.peekTyp = typ
	p.peekTok = tok
}

// nextValue skips line breaks.
func (p *Parser) nextValue() (tokenType, string) {
	for {
		typ, tok := p.next()
		if typ != tokEOL {
			return typ, tok
		}
	}
}

func (p *Parser) expectWord(w string) {
	if p.err != nil {
		return
	}
	typ, tok := p.nextValue()
	if typ != tokWord || tok != w {
		p.malformedf("expected %q, found %q", w, tok)
	}
}

func (p *Parser) readFloat() float64 {
	if p.err != nil {
		return 0
	}
	typ, tok := p.nextValue()
	if typ != tokNumber {
		p.malformedf("expected number, found %q", tok)
		return 0
	}
	n, _ := strconv.ParseFloat(tok, 64)
	return n
}

func (p *Parser) readInt() int {
	if p.err != nil {
		return 0
	}
	typ, tok := p.nextValue()
	if typ != tokNumber {
		p.malformedf("expected number, found %q", tok)
		return 0
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		p.malformedf("expected integer, found %q", tok)
	}
	return n
}

func (p *Parser) readVector3() geom.Vector3 {
	x := p.readFloat()
	y := p.readFloat()
	z := p.readFloat()
	return geom.Vector3{X: geom.Element(x), Y: geom.Element(y), Z: geom.Element(z)}
}

// readName collects the rest of the line as the joint name. Names from
// 3ds max and character studio may contain spaces.
func (p *Parser) readName() string {
	name := ""
	for p.err == nil {
		typ, tok := p.next()
		if typ == tokEOL || typ == tokEOF {
			break
		}
		if typ == tokBraceOpen {
			p.unread(typ, tok)
			break
		}
		if name != "" {
			name += " "
		}
		name += tok
	}
	if name == "" {
		p.malformedf("missing joint name")
	}
	return name
}

func (p *Parser) readJoint(parent *Joint) *Joint {
	j := &Joint{Name: p.readName(), Parent: parent}
	p.readJointBlock(j)
	return j
}

func (p *Parser) readJointBlock(j *Joint) {
	if typ, tok := p.nextValue(); typ != tokBraceOpen {
		p.malformedf("expected \"{\", found %q", tok)
		return
	}
	for p.err == nil {
		typ, tok := p.nextValue()
		switch {
		case typ == tokBraceClose:
			return
		case typ == tokWord && tok == "OFFSET":
			j.Offset = p.readVector3()
		case typ == tokWord && tok == "CHANNELS":
			n := p.readInt()
			for i := 0; i < n && p.err == nil; i++ {
				_, w := p.nextValue()
				ch, ok := channelByName[w]
				if !ok {
					p.malformedf("unknown channel %q", w)
					return
				}
				j.Channels = append(j.Channels, ch)
			}
		case typ == tokWord && tok == "JOINT":
			j.Children = append(j.Children, p.readJoint(j))
		case typ == tokWord && tok == "End":
			p.expectWord("Site")
			end := &Joint{Parent: j, End: true}
			p.readEndSiteBlock(end)
			j.Children = append(j.Children, end)
		case typ == tokEOF:
			p.malformedf("unexpected end of file: unbalanced braces")
			return
		default:
			p.malformedf("unexpected token %q in joint block", tok)
			return
		}
	}
}

func (p *Parser) readEndSiteBlock(end *Joint) {
	if typ, tok := p.nextValue(); typ != tokBraceOpen {
		p.malformedf("expected \"{\", found %q", tok)
		return
	}
	p.expectWord("OFFSET")
	end.Offset = p.readVector3()
	if typ, tok := p.nextValue(); typ != tokBraceClose {
		p.malformedf("expected \"}\" after End Site offset, found %q", tok)
	}
}

func (p *Parser) readMotion(skeleton *Skeleton) *Motion {
	p.expectWord("MOTION")
	p.expectWord("Frames:")
	frames := p.readInt()
	p.expectWord("Frame")
	p.expectWord("Time:")
	frameTime := p.readFloat()
	if p.err != nil {
		return nil
	}

	width := skeleton.TotalChannels()
	motion := &Motion{FrameTime: frameTime}
	for i := 0; i < frames; i++ {
		typ, tok := p.nextValue()
		if typ == tokEOF {
			p.err = &TruncatedMotionError{Expected: frames, Found: i}
			return nil
		}
		p.unread(typ, tok)

		row := make([]float64, width)
		for c := 0; c < width; c++ {
			typ, tok := p.next()
			if typ == tokEOL || typ == tokEOF {
				p.malformedf("frame row has %d columns, expected %d", c, width)
				return nil
			}
			if typ != tokNumber {
				p.malformedf("expected number, found %q", tok)
				return nil
			}
			v, _ := strconv.ParseFloat(tok, 64)
			row[c] = v
		}
		if typ, _ := p.next(); typ != tokEOL && typ != tokEOF {
			p.malformedf("frame row has more than %d columns", width)
			return nil
		}
		motion.Frames = append(motion.Frames, row)
	}
	// extra rows beyond the declared count are ignored
	return motion
}

// Parse reads the HIERARCHY and MOTION sections into a Document.
func (p *Parser) Parse() (*Document, error) {
	p.prepare()
	if p.err != nil {
		return nil, p.err
	}

	p.expectWord("HIERARCHY")
	p.expectWord("ROOT")
	root := p.readJoint(nil)
	if p.err != nil {
		return nil, p.err
	}
	skeleton := NewSkeleton(root)

	motion := p.readMotion(skeleton)
	if p.err != nil {
		return nil, p.err
	}
	return &Document{Skeleton: skeleton, Motion: motion}, nil
}
