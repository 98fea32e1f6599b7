package util

func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsSymbolStart reports whether b may begin a Hack symbol. Digits may not,
// and neither may '$', which is reserved for generated scoped labels.
func IsSymbolStart(b byte) bool {
	return IsLetter(b) || b == '_' || b == '.' || b == ':'
}

// IsSymbolPart reports whether b may appear after the first byte of a Hack
// symbol.
func IsSymbolPart(b byte) bool {
	return IsSymbolStart(b) || IsDigit(b) || b == '$'
}

// IsSymbol reports whether s is a well-formed Hack symbol.
func IsSymbol(s string) bool {
	if len(s) == 0 || !IsSymbolStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !IsSymbolPart(s[i]) {
			return false
		}
	}
	return true
}
