package entity

// PositionedToken is one text fragment placed on a page by the external
// extractor. Coordinates are PDF user space: the origin is the bottom-left
// corner and Y grows toward the top of the page.
type PositionedToken struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
}

// Page is an ordered sequence of positioned tokens for one page.
type Page struct {
	Number int               `json:"number"`
	Tokens []PositionedToken `json:"tokens"`
}

// Line is a group of tokens sharing a vertical coordinate within rounding
// tolerance, ordered left to right. Every downstream parsing step consumes
// lines, never raw tokens.
type Line struct {
	Tokens []PositionedToken
	Text   string
	Y      int // rounded vertical bucket
	Page   int
}

// Document is one source bill after token extraction: its pages, plus the
// path it was loaded from for diagnostics.
type Document struct {
	Path  string
	Pages []Page
}
