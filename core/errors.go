package core

import "fmt"

// UnsupportedLanguageError is the only error that crosses the BuildIndex
// boundary (spec §7 item 1). Everything else is absorbed into
// Index.Diagnostics.
type UnsupportedLanguageError struct {
	Language Language
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %q", string(e.Language))
}
