package rdf

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	unicodeSurrogateHighStart = 0xD800
	unicodeSurrogateHighEnd   = 0xDBFF
	unicodeSurrogateLowStart  = 0xDC00
	unicodeSurrogateLowEnd    = 0xDFFF
	unicodeSurrogateBase      = 0x10000
)

func isValidUnicodeCodePoint(codePoint rune) bool {
	if codePoint > 0x10FFFF {
		return false
	}
	return codePoint < unicodeSurrogateHighStart || codePoint > unicodeSurrogateLowEnd
}

func parseHexDigit(hex byte) (int, bool) {
	switch {
	case hex >= '0' && hex <= '9':
		return int(hex - '0'), true
	case hex >= 'a' && hex <= 'f':
		return int(hex-'a') + 10, true
	case hex >= 'A' && hex <= 'F':
		return int(hex-'A') + 10, true
	default:
		return 0, false
	}
}

func decodeUChar(hexStr string) rune {
	if len(hexStr) != 4 && len(hexStr) != 8 {
		return -1
	}
	var codePoint rune
	for i := 0; i < len(hexStr); i++ {
		digit, ok := parseHexDigit(hexStr[i])
		if !ok {
			return -1
		}
		codePoint = codePoint*16 + rune(digit)
	}
	return codePoint
}

// isValidLangTag checks the BCP 47 shape accepted in N-Triples: a 1-8 letter
// primary subtag followed by alphanumeric subtags.
func isValidLangTag(tag string) bool {
	if tag == "" {
		return false
	}
	for i, part := range strings.Split(tag, "-") {
		if part == "" || (i == 0 && len(part) > 8) {
			return false
		}
		for j := 0; j < len(part); j++ {
			ch := part[j]
			if isASCIILetter(ch) || (i > 0 && ch >= '0' && ch <= '9') {
				continue
			}
			return false
		}
	}
	return true
}

func readLineWithLimit(reader *bufio.Reader, maxBytes int) (string, error) {
	if maxBytes <= 0 {
		line, err := reader.ReadString('\n')
		if err == io.EOF && len(line) > 0 {
			return line, nil
		}
		return line, err
	}

	var buffer []byte
	for {
		part, err := reader.ReadSlice('\n')
		buffer = append(buffer, part...)
		if len(buffer) > maxBytes {
			if err == bufio.ErrBufferFull {
				discardLine(reader)
			}
			return "", ErrLineTooLong
		}
		switch {
		case err == nil:
			return string(buffer), nil
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF && len(buffer) > 0:
			return string(buffer), nil
		default:
			return "", err
		}
	}
}

func discardLine(reader *bufio.Reader) {
	for {
		_, err := reader.ReadSlice('\n')
		if err != bufio.ErrBufferFull {
			return
		}
	}
}

func checkDecodeContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// UnescapeString decodes escape sequences in RDF string literals.
// It handles simple escapes (\n, \t, etc.), Unicode escapes (\uXXXX), and Unicode long escapes (\UXXXXXXXX).
// Surrogate pairs are supported for \uXXXX sequences.
func UnescapeString(s string) (string, error) {
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}
	var builder strings.Builder
	pos := 0
	for pos < len(s) {
		ch := s[pos]
		if ch != '\\' {
			builder.WriteByte(ch)
			pos++
			continue
		}
		if pos+1 >= len(s) {
			return "", fmt.Errorf("unterminated escape")
		}
		var (
			advance int
			err     error
		)
		switch next := s[pos+1]; next {
		case 'n':
			builder.WriteByte('\n')
			advance = 2
		case 't':
			builder.WriteByte('\t')
			advance = 2
		case 'r':
			builder.WriteByte('\r')
			advance = 2
		case 'b':
			builder.WriteByte('\b')
			advance = 2
		case 'f':
			builder.WriteByte('\f')
			advance = 2
		case '"', '\'', '\\':
			builder.WriteByte(next)
			advance = 2
		case 'u':
			advance, err = unescapeUnicode(&builder, s, pos, 4)
		case 'U':
			advance, err = unescapeUnicode(&builder, s, pos, 8)
		default:
			return "", fmt.Errorf("invalid escape sequence")
		}
		if err != nil {
			return "", err
		}
		pos += advance
	}
	return builder.String(), nil
}

// unescapeUnicode decodes \uXXXX (digits=4) or \UXXXXXXXX (digits=8) at pos,
// combining \uXXXX surrogate pairs.
func unescapeUnicode(builder *strings.Builder, s string, pos, digits int) (int, error) {
	end := pos + 2 + digits
	if end > len(s) {
		return 0, fmt.Errorf("invalid escape sequence")
	}
	codePoint := decodeUChar(s[pos+2 : end])
	if codePoint < 0 {
		return 0, fmt.Errorf("invalid escape sequence")
	}
	if digits == 4 && codePoint >= unicodeSurrogateHighStart && codePoint <= unicodeSurrogateHighEnd {
		if end+6 > len(s) || s[end] != '\\' || s[end+1] != 'u' {
			return 0, fmt.Errorf("invalid escape sequence")
		}
		low := decodeUChar(s[end+2 : end+6])
		if low < unicodeSurrogateLowStart || low > unicodeSurrogateLowEnd {
			return 0, fmt.Errorf("invalid escape sequence")
		}
		codePoint = unicodeSurrogateBase + ((codePoint - unicodeSurrogateHighStart) << 10) + (low - unicodeSurrogateLowStart)
		end += 6
	}
	if !isValidUnicodeCodePoint(codePoint) {
		return 0, fmt.Errorf("invalid escape sequence")
	}
	builder.WriteRune(codePoint)
	return end - pos, nil
}
