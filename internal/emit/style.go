package emit

// Style selects a rendering mode for Printer. The target grammar has no
// "compact" vs "multiline" distinction the way the teacher's formatter
// does for its own dialect, so StyleDetailed is the only style that is
// ever implemented; the type is kept for symmetry with that formatter.
type Style int

const (
	StyleDetailed Style = iota
)
