package engine

import (
	"image/color"
	"log"

	"github.com/plus3/ambient/ecs"
	"github.com/plus3/ambient/surface"
)

// RenderSystem projects the scene through the camera and hands the display
// list to the output surface. It runs on its own scheduler after the update
// commands have been flushed, so it always sees the current line object.
type RenderSystem struct {
	Camera ecs.Singleton[Camera]
	Output ecs.Singleton[Output]

	Clouds ecs.Query[struct {
		Cloud     *PointCloud
		Transform *Transform
	}]
	Lines ecs.Query[struct {
		Lines     *LineSegments
		Transform *Transform
	}]

	Logger *log.Logger
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	cam := s.Camera.Get()
	out := s.Output.Get()
	if cam == nil || out == nil || out.Surface == nil {
		return
	}

	f := &out.Frame
	f.Reset(cam.Width, cam.Height)
	f.Opacity = out.Opacity

	vp := cam.ViewProjection()
	for item := range s.Clouds.Values() {
		appendDots(f, cam, Mat4Mul(vp, item.Transform.Model()), item.Cloud)
	}
	for item := range s.Lines.Values() {
		m := item.Lines.Material
		f.LineColor = color.NRGBA{R: m.Color.R, G: m.Color.G, B: m.Color.B, A: surface.ScaleAlpha(m.Color.A, m.Opacity)}
		appendSegments(f, cam, Mat4Mul(vp, item.Transform.Model()), item.Lines)
	}

	if err := out.Surface.Render(f); err != nil {
		out.Failures++
		if msg := err.Error(); msg != out.lastErr {
			out.lastErr = msg
			if s.Logger != nil {
				s.Logger.Printf("render: %v", err)
			}
		}
		return
	}
	out.lastErr = ""
	out.Rendered++
}

func appendDots(f *surface.Frame, cam *Camera, mvp Mat4, cloud *PointCloud) {
	set, m := cloud.Set, cloud.Material
	alpha := surface.ScaleAlpha(255, m.Opacity)

	for i := 0; i < set.Len(); i++ {
		x, y, z := set.Position(i)
		sx, sy, depth, ok := cam.ProjectPoint(mvp, x, y, z)
		if !ok {
			continue
		}

		c := m.Color
		if m.VertexColors {
			c = color.NRGBA{
				R: unit8(set.Colors[i*3]),
				G: unit8(set.Colors[i*3+1]),
				B: unit8(set.Colors[i*3+2]),
			}
		}
		c.A = alpha

		f.Dots = append(f.Dots, surface.Dot{
			X:      sx,
			Y:      sy,
			Radius: cam.PointRadius(m.Size, set.Sizes[i], depth),
			Color:  c,
		})
	}
}

func appendSegments(f *surface.Frame, cam *Camera, mvp Mat4, lines *LineSegments) {
	if lines.Graph == nil {
		return
	}
	seg := lines.Graph.Segments
	for k := 0; k+6 <= len(seg); k += 6 {
		a := [3]float32{seg[k], seg[k+1], seg[k+2]}
		b := [3]float32{seg[k+3], seg[k+4], seg[k+5]}
		if s, ok := cam.ProjectSegment(mvp, a, b); ok {
			f.Segments = append(f.Segments, s)
		}
	}
}

// unit8 maps [0, 1] to a color channel.
func unit8(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
