package strength

// Built-in lexicons. The weak words approximate the most commonly
// breached passwords, the composite words are the fragments users glue
// into predictable phrases, and the keyboard patterns cover row,
// diagonal, and numpad runs.
var (
	defaultWeakWords = []string{
		"password", "123456", "qwerty", "admin", "qazwsx", "football", "summer",
		"spring", "welcome", "secure", "secret", "test", "shadow", "master",
		"default", "change", "dropbox", "america", "india", "ganesh", "shahan",
	}

	defaultCompositeWords = []string{
		"master", "shadow", "dragon", "ninja", "firewall", "dark", "light",
		"ocean", "fire", "secure", "strong", "magic", "power", "happy", "love",
	}

	defaultKeyboardPatterns = []string{
		"asdfg", "zxcvb", "qwert", "yuiop",
		"12345", "54321", "abcde", "edcba",
		"qaz", "wsx", "edc", "rfv",
		"789", "987", "456", "654", "258", "147",
	}

	defaultSimpleSequences = []string{"123", "abc", "xyz", "qwerty"}
)
