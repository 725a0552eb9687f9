package domain

// Page dimensions in inches for a US letter sheet.
const (
	LetterWidthInches  = 8.5
	LetterHeightInches = 11.0
)

// ViewKind tells a front-end how to present a loaded document.
type ViewKind string

// View kinds.
const (
	// ViewPage is a rendered page image.
	ViewPage ViewKind = "page"

	// ViewPlaceholder is a titled message shown instead of a page.
	ViewPlaceholder ViewKind = "placeholder"
)

// DocumentView describes what the viewer produced for a file.
type DocumentView struct {
	Kind     ViewKind
	Path     string
	FileName string
	FileType FileType

	// Page size in pixels at DPI. Set for ViewPage.
	Width  int
	Height int
	DPI    int

	// Title and Message are set for ViewPlaceholder.
	Title   string
	Message string
}

// LetterPageSize returns the pixel size of a letter page at dpi.
func LetterPageSize(dpi int) (width, height int) {
	return int(LetterWidthInches * float64(dpi)), int(LetterHeightInches * float64(dpi))
}
