package models

// Document is the extracted model of a whole VSDX file.
type Document struct {
	// Source is the file name (no path).
	Source string `json:"source"`
	// Pages holds the retained pages in container order.
	Pages []PageRecord `json:"pages"`
}
