package engine

import (
	"math"

	"github.com/plus3/ambient/surface"
)

// Mat4 is a column-major 4x4 matrix, m[col*4+row].
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] =
				a[0*4+row]*b[col*4+0] +
					a[1*4+row]*b[col*4+1] +
					a[2*4+row]*b[col*4+2] +
					a[3*4+row]*b[col*4+3]
		}
	}
	return out
}

// Apply transforms the point (x, y, z, 1).
func (m Mat4) Apply(x, y, z float64) (cx, cy, cz, cw float64) {
	cx = m[0]*x + m[4]*y + m[8]*z + m[12]
	cy = m[1]*x + m[5]*y + m[9]*z + m[13]
	cz = m[2]*x + m[6]*y + m[10]*z + m[14]
	cw = m[3]*x + m[7]*y + m[11]*z + m[15]
	return
}

func Mat4Translate(x, y, z float64) Mat4 {
	m := Mat4Identity()
	m[12] = x
	m[13] = y
	m[14] = z
	return m
}

func Mat4RotateY(rad float64) Mat4 {
	c, s := math.Cos(rad), math.Sin(rad)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func Mat4Perspective(fovYRad, aspect, zNear, zFar float64) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	f := 1 / math.Tan(fovYRad/2)
	nf := 1 / (zNear - zFar)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (zFar + zNear) * nf, -1,
		0, 0, (2 * zFar * zNear) * nf, 0,
	}
}

// Camera is a perspective camera on the +Z axis looking at the origin.
type Camera struct {
	FOV      float64
	Near     float64
	Far      float64
	Distance float64

	Width, Height int
	Aspect        float64

	viewProjection Mat4
}

func NewCamera(cfg Config, w, h int) Camera {
	c := Camera{
		FOV:      cfg.FOV,
		Near:     cfg.Near,
		Far:      cfg.Far,
		Distance: cfg.CameraZ,
	}
	c.SetViewport(w, h)
	return c
}

// SetViewport updates the aspect ratio and projection. It returns false and
// changes nothing for a non-positive or unchanged size.
func (c *Camera) SetViewport(w, h int) bool {
	if w <= 0 || h <= 0 || (w == c.Width && h == c.Height) {
		return false
	}
	c.Width, c.Height = w, h
	c.Aspect = float64(w) / float64(h)

	projection := Mat4Perspective(c.FOV*math.Pi/180, c.Aspect, c.Near, c.Far)
	view := Mat4Translate(0, 0, -c.Distance)
	c.viewProjection = Mat4Mul(projection, view)
	return true
}

// ViewProjection returns the combined world to clip transform.
func (c *Camera) ViewProjection() Mat4 {
	return c.viewProjection
}

// toScreen maps clip coordinates to pixels, origin top left.
func (c *Camera) toScreen(cx, cy, cw float64) (sx, sy float32) {
	nx, ny := cx/cw, cy/cw
	sx = float32((nx + 1) / 2 * float64(c.Width))
	sy = float32((1 - ny) / 2 * float64(c.Height))
	return
}

// ProjectPoint projects a point through mvp. depth is the distance in front
// of the camera; ok is false outside the near and far planes.
func (c *Camera) ProjectPoint(mvp Mat4, x, y, z float32) (sx, sy, depth float32, ok bool) {
	cx, cy, _, cw := mvp.Apply(float64(x), float64(y), float64(z))
	if cw < c.Near || cw > c.Far {
		return 0, 0, 0, false
	}
	sx, sy = c.toScreen(cx, cy, cw)
	return sx, sy, float32(cw), true
}

// PointRadius is the on-screen radius of a point of the given size and
// scale at depth, shrinking with distance.
func (c *Camera) PointRadius(scale, size, depth float32) float32 {
	if depth <= 0 {
		return 0
	}
	return scale * size * (float32(c.Height) / 2) / depth / 2
}

// ProjectSegment projects the segment a-b through mvp, clipping it at the
// near plane. ok is false if the whole segment is behind the camera.
func (c *Camera) ProjectSegment(mvp Mat4, a, b [3]float32) (surface.Segment, bool) {
	ax, ay, _, aw := mvp.Apply(float64(a[0]), float64(a[1]), float64(a[2]))
	bx, by, _, bw := mvp.Apply(float64(b[0]), float64(b[1]), float64(b[2]))

	switch {
	case aw < c.Near && bw < c.Near:
		return surface.Segment{}, false
	case aw < c.Near:
		t := (c.Near - aw) / (bw - aw)
		ax, ay, aw = ax+(bx-ax)*t, ay+(by-ay)*t, c.Near
	case bw < c.Near:
		t := (c.Near - bw) / (aw - bw)
		bx, by, bw = bx+(ax-bx)*t, by+(ay-by)*t, c.Near
	}

	var s surface.Segment
	s.X0, s.Y0 = c.toScreen(ax, ay, aw)
	s.X1, s.Y1 = c.toScreen(bx, by, bw)
	return s, true
}
