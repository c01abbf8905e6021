package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// polygons returns the screen-space outline of every polygon shape on body.
func polygons(body *cp.Body, scale float64) [][]cp.Vector {
	if body == nil {
		return nil
	}
	var out [][]cp.Vector
	body.EachShape(func(s *cp.Shape) {
		poly, ok := s.Class.(*cp.PolyShape)
		if !ok {
			return
		}
		verts := make([]cp.Vector, poly.Count())
		for i := range verts {
			verts[i] = poly.TransformVert(i).Mult(scale)
		}
		out = append(out, verts)
	})
	return out
}

func (r *Renderer) fillPolygon(dst *ebiten.Image, verts []cp.Vector, clr color.Color) {
	if len(verts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(verts[0].X), float32(verts[0].Y))
	for _, v := range verts[1:] {
		path.LineTo(float32(v.X), float32(v.Y))
	}
	path.Close()

	r.vertices, r.indices = path.AppendVerticesAndIndicesForFilling(r.vertices[:0], r.indices[:0])
	cr, cg, cb, ca := clr.RGBA()
	for i := range r.vertices {
		r.vertices[i].SrcX = 1
		r.vertices[i].SrcY = 1
		r.vertices[i].ColorR = float32(cr) / 0xffff
		r.vertices[i].ColorG = float32(cg) / 0xffff
		r.vertices[i].ColorB = float32(cb) / 0xffff
		r.vertices[i].ColorA = float32(ca) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha}
	dst.DrawTriangles(r.vertices, r.indices, whiteSubImage, op)
}

func strokePolygon(dst *ebiten.Image, verts []cp.Vector, width float32, clr color.Color) {
	for i := range verts {
		a, b := verts[i], verts[(i+1)%len(verts)]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}

func dashPolygon(dst *ebiten.Image, verts []cp.Vector, width float32, clr color.Color) {
	for i := range verts {
		dashLine(dst, verts[i], verts[(i+1)%len(verts)], width, clr)
	}
}

func dashLine(dst *ebiten.Image, a, b cp.Vector, width float32, clr color.Color) {
	length := a.Distance(b)
	if length == 0 {
		return
	}
	dir := b.Sub(a).Mult(1 / length)
	for d := 0.0; d < length; d += dashLength + dashGap {
		end := math.Min(d+dashLength, length)
		p, q := a.Add(dir.Mult(d)), a.Add(dir.Mult(end))
		vector.StrokeLine(dst, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), width, clr, true)
	}
}

// inflate pushes each vertex away from the centroid by px pixels so a
// selection outline clears the shape's own stroke.
func inflate(verts []cp.Vector, px float64) []cp.Vector {
	var c cp.Vector
	for _, v := range verts {
		c = c.Add(v)
	}
	c = c.Mult(1 / float64(len(verts)))
	out := make([]cp.Vector, len(verts))
	for i, v := range verts {
		d := v.Sub(c)
		if l := d.Length(); l > 0 {
			d = d.Mult((l + px) / l)
		}
		out[i] = c.Add(d)
	}
	return out
}

func withAlpha(clr color.Color, alpha float64) color.Color {
	r, g, b, a := clr.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(float64(a) * alpha),
	}
}
