package patch

// StripTrailingCommas removes every comma that precedes a closing brace or
// bracket, optionally separated by whitespace. Quoted strings are copied
// untouched. Comments are not understood: a document with comments still
// fails the strict parse that follows.
func StripTrailingCommas(data []byte) []byte {
	src := string(data)
	out := make([]byte, 0, len(data))
	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '"':
			end := skipString(src, i)
			if end < 0 {
				// Unterminated; leave the rest for the parser to reject.
				return append(out, src[i:]...)
			}
			out = append(out, src[i:end+1]...)
			i = end
		case ',':
			if !closesNext(src, i+1) {
				out = append(out, c)
			}
		default:
			out = append(out, c)
		}
	}
	return out
}

func closesNext(src string, i int) bool {
	for ; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case '}', ']':
			return true
		default:
			return false
		}
	}
	return false
}
