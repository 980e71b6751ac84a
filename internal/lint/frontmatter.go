package lint

import "bytes"

// StripFrontMatter removes a YAML front matter block from the beginning
// of source. The block opens with a "---" line and closes with the next
// line that is exactly "---" (CRLF line endings are accepted). It returns
// the block including delimiters and the remaining content. Without front
// matter prefix is nil and content equals source.
func StripFrontMatter(source []byte) (prefix, content []byte) {
	first, rest, ok := cutLine(source)
	if !ok || !isDelimiter(first) {
		return nil, source
	}
	offset := len(source) - len(rest)
	for len(rest) > 0 {
		line, next, _ := cutLine(rest)
		offset += len(rest) - len(next)
		if isDelimiter(line) {
			return source[:offset], source[offset:]
		}
		rest = next
	}
	return nil, source
}

// cutLine splits off the first line of b. The returned line excludes the
// newline; ok is false when b has no newline.
func cutLine(b []byte) (line, rest []byte, ok bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return b, nil, false
	}
	return b[:i], b[i+1:], true
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimSuffix(line, []byte("\r"))) == "---"
}
