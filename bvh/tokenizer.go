package bvh

import (
	"bufio"
	"io"
	"strconv"
)

type tokenType int

const (
	tokWord tokenType = iota
	tokNumber
	tokBraceOpen
	tokBraceClose
	tokEOL
	tokEOF
)

type tokenizer struct {
	r    *bufio.Reader
	line int
	err  error
}

func newTokenizer(r io.Reader) *tokenizer {
	return &tokenizer{r: bufio.NewReader(r), line: 1}
}

func (t *tokenizer) next() (tokenType, string) {
	for t.err == nil {
		c, err := t.r.ReadByte()
		if err != nil {
			t.err = err
			break
		}
		switch {
		case c == '\n':
			t.line++
			return tokEOL, ""
		case c == ' ' || c == '\t' || c == '\r':
			continue
		case c == '{':
			return tokBraceOpen, "{"
		case c == '}':
			return tokBraceClose, "}"
		default:
			buf := []byte{c}
			for {
				c, err = t.r.ReadByte()
				if err != nil {
					t.err = err
					break
				}
				if c == ' ' || c == '\t' || c == '\r' {
					break
				}
				if c == '\n' || c == '{' || c == '}' {
					t.r.UnreadByte()
					break
				}
				buf = append(buf, c)
			}
			s := string(buf)
			if _, e := strconv.ParseFloat(s, 64); e == nil {
				return tokNumber, s
			}
			return tokWord, s
		}
	}
	return tokEOF, ""
}
