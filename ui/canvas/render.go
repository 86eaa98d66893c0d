package canvas

import (
	"image"
	"image/color"

	"sketchpad/internal/annotation"
	"sketchpad/internal/editor"
	"sketchpad/internal/transform"

	"github.com/fogleman/gg"
)

const (
	anchorSize         = 8.0
	controlPointRadius = 5.0
)

var (
	backgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	selectionColor  = color.RGBA{R: 38, G: 110, B: 210, A: 255}
	marqueeColor    = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	hoverColor      = color.RGBA{R: 170, G: 200, B: 240, A: 255}
)

// render paints the full engine state into a new image: annotations in
// draw order, then the in-progress preview, then selection chrome on top.
func render(e *editor.Editor, w, h int) image.Image {
	ctx := gg.NewContext(w, h)
	ctx.SetColor(backgroundColor)
	ctx.Clear()

	for _, a := range e.Annotations() {
		drawAnnotation(ctx, a)
	}
	if prev := e.Preview(); prev != nil {
		drawAnnotation(ctx, prev)
	}

	drawHover(ctx, e)
	drawSelection(ctx, e)

	if r, ok := e.Marquee(); ok {
		ctx.SetColor(marqueeColor)
		ctx.SetLineWidth(1)
		ctx.SetDash(4, 4)
		ctx.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		ctx.Stroke()
		ctx.SetDash()
	}

	return ctx.Image()
}

func drawAnnotation(ctx *gg.Context, a annotation.Annotation) {
	attrs := a.Common()
	ctx.SetColor(attrs.Color)
	ctx.SetLineWidth(attrs.StrokeWidth)
	ctx.SetLineCapRound()
	ctx.SetLineJoinRound()

	switch v := a.(type) {
	case *annotation.Stroke:
		if len(v.Points) == 1 {
			ctx.DrawCircle(v.Points[0].X, v.Points[0].Y, attrs.StrokeWidth/2)
			ctx.Fill()
			return
		}
		for i, p := range v.Points {
			if i == 0 {
				ctx.MoveTo(p.X, p.Y)
			} else {
				ctx.LineTo(p.X, p.Y)
			}
		}
		ctx.Stroke()
	case *annotation.Shape:
		drawShape(ctx, v)
	case *annotation.Text:
		ctx.DrawString(v.Text, v.X, v.Y+v.FontSize)
	case *annotation.Image:
		drawImage(ctx, v)
	}
}

func drawShape(ctx *gg.Context, s *annotation.Shape) {
	switch s.Kind {
	case annotation.ShapeRectangle:
		ctx.DrawRectangle(s.X, s.Y, s.Width, s.Height)
		ctx.Stroke()
	case annotation.ShapeEllipse:
		ctx.DrawEllipse(s.X+s.Width/2, s.Y+s.Height/2, s.Width/2, s.Height/2)
		ctx.Stroke()
	case annotation.ShapeBezier:
		if len(s.Points) == 3 {
			ctx.MoveTo(s.Points[0].X, s.Points[0].Y)
			ctx.QuadraticTo(s.Points[1].X, s.Points[1].Y, s.Points[2].X, s.Points[2].Y)
			ctx.Stroke()
			return
		}
		drawChain(ctx, s, false)
	case annotation.ShapePolygon:
		drawChain(ctx, s, true)
	default: // line, polyline
		drawChain(ctx, s, false)
	}
}

func drawChain(ctx *gg.Context, s *annotation.Shape, closed bool) {
	if len(s.Points) == 0 {
		return
	}
	if len(s.Points) == 1 {
		ctx.DrawCircle(s.Points[0].X, s.Points[0].Y, s.StrokeWidth/2)
		ctx.Fill()
		return
	}
	for i, p := range s.Points {
		if i == 0 {
			ctx.MoveTo(p.X, p.Y)
		} else {
			ctx.LineTo(p.X, p.Y)
		}
	}
	if closed {
		ctx.ClosePath()
	}
	ctx.Stroke()
}

func drawImage(ctx *gg.Context, img *annotation.Image) {
	if img.Pixels == nil {
		return
	}
	b := img.Pixels.Bounds()
	pw, ph := float64(b.Dx()), float64(b.Dy())
	if pw == 0 || ph == 0 {
		return
	}
	ctx.Push()
	ctx.Translate(img.X, img.Y)
	ctx.Scale(img.Width/pw, img.Height/ph)
	ctx.DrawImage(img.Pixels, 0, 0)
	ctx.Pop()
}

// drawHover outlines the annotation under an idle pointer so the user can
// see what a click would select.
func drawHover(ctx *gg.Context, e *editor.Editor) {
	id := e.HoveredID()
	if id == "" || e.Tool() != editor.ToolSelect {
		return
	}
	for _, a := range e.Annotations() {
		if a.Common().ID != id || a.Common().Selected {
			continue
		}
		b := annotation.Bounds(a)
		ctx.SetColor(hoverColor)
		ctx.SetLineWidth(1)
		ctx.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		ctx.Stroke()
		return
	}
}

// drawSelection paints the selected bounds, the resize handles when a
// single annotation is selected, and the vertex handles in point-edit mode.
func drawSelection(ctx *gg.Context, e *editor.Editor) {
	for _, a := range e.Annotations() {
		if !a.Common().Selected {
			continue
		}
		b := annotation.Bounds(a)
		ctx.SetColor(selectionColor)
		ctx.SetLineWidth(1)
		ctx.SetDash(4, 4)
		ctx.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		ctx.Stroke()
		ctx.SetDash()

		if a.Common().Editing {
			for _, p := range annotation.ControlPoints(a) {
				ctx.SetColor(backgroundColor)
				ctx.DrawCircle(p.X, p.Y, controlPointRadius)
				ctx.Fill()
				ctx.SetColor(selectionColor)
				ctx.DrawCircle(p.X, p.Y, controlPointRadius)
				ctx.Stroke()
			}
		}
	}

	if b, ok := e.SelectionBounds(); ok {
		for _, p := range transform.AnchorPositions(b) {
			ctx.SetColor(backgroundColor)
			ctx.DrawRectangle(p.X-anchorSize/2, p.Y-anchorSize/2, anchorSize, anchorSize)
			ctx.Fill()
			ctx.SetColor(selectionColor)
			ctx.DrawRectangle(p.X-anchorSize/2, p.Y-anchorSize/2, anchorSize, anchorSize)
			ctx.Stroke()
		}
	}
}
