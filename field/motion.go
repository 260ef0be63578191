package field

import "math"

// DefaultAmplitude is how far a point strays from its origin on each axis.
const DefaultAmplitude = 0.3

// Animate places every point on its closed orbit for time t:
//
//	x = ox + a*sin(t*(i%5) + i)
//	y = oy + a*cos(t*(i%3) + i)
//	z = oz + a*sin(t*(i%7) + i)
//
// Positions are recomputed from the origins, so error never accumulates and
// each coordinate stays within amplitude of its origin.
func (s *PointSet) Animate(t float64, amplitude float32) {
	a := float64(amplitude)
	for i := 0; i < s.Len(); i++ {
		fi := float64(i)
		j := i * 3
		s.Positions[j] = s.Origins[j] + float32(a*math.Sin(t*float64(i%5)+fi))
		s.Positions[j+1] = s.Origins[j+1] + float32(a*math.Cos(t*float64(i%3)+fi))
		s.Positions[j+2] = s.Origins[j+2] + float32(a*math.Sin(t*float64(i%7)+fi))
	}
}
