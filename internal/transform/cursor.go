package transform

// CursorKind enumerates the resize cursors shown while hovering a handle.
type CursorKind int

const (
	CursorDefault CursorKind = iota
	CursorResizeNW
	CursorResizeN
	CursorResizeNE
	CursorResizeE
	CursorResizeSE
	CursorResizeS
	CursorResizeSW
	CursorResizeW
)

var anchorCursors = [AnchorCount]CursorKind{
	AnchorTopLeft:     CursorResizeNW,
	AnchorTop:         CursorResizeN,
	AnchorTopRight:    CursorResizeNE,
	AnchorRight:       CursorResizeE,
	AnchorBottomRight: CursorResizeSE,
	AnchorBottom:      CursorResizeS,
	AnchorBottomLeft:  CursorResizeSW,
	AnchorLeft:        CursorResizeW,
}

// CursorForAnchor returns the cursor kind for a resize handle, or
// CursorDefault for an out-of-range anchor.
func CursorForAnchor(anchor Anchor) CursorKind {
	if anchor < 0 || anchor >= AnchorCount {
		return CursorDefault
	}
	return anchorCursors[anchor]
}
