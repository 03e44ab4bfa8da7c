package layout

import "math"

// body is the simulated state of one node
type body struct {
	x, y   float64
	vx, vy float64
	radius float64
	pinned bool
	fx, fy float64
}

// spring is a resolved link between two bodies
type spring struct {
	source, target int
	strength       float64
	bias           float64
}

// newSprings resolves links to body indices and derives d3-style strength
// and bias from node degrees.
func newSprings(pairs [][2]int, n int) []spring {
	degree := make([]int, n)
	for _, p := range pairs {
		degree[p[0]]++
		degree[p[1]]++
	}

	springs := make([]spring, len(pairs))
	for i, p := range pairs {
		s, t := degree[p[0]], degree[p[1]]
		springs[i] = spring{
			source:   p[0],
			target:   p[1],
			strength: 1 / float64(min(s, t)),
			bias:     float64(s) / float64(s+t),
		}
	}
	return springs
}

// applyLinks pulls linked bodies toward distance apart
func applyLinks(bodies []body, springs []spring, distance, alpha float64, jiggle func() float64) {
	for _, sp := range springs {
		src, dst := &bodies[sp.source], &bodies[sp.target]

		x := dst.x + dst.vx - src.x - src.vx
		if x == 0 {
			x = jiggle()
		}
		y := dst.y + dst.vy - src.y - src.vy
		if y == 0 {
			y = jiggle()
		}

		l := math.Sqrt(x*x + y*y)
		l = (l - distance) / l * alpha * sp.strength
		x *= l
		y *= l

		dst.vx -= x * sp.bias
		dst.vy -= y * sp.bias
		src.vx += x * (1 - sp.bias)
		src.vy += y * (1 - sp.bias)
	}
}

// applyCharge applies pairwise many-body repulsion (strength < 0)
func applyCharge(bodies []body, strength, distanceMin2, alpha float64, jiggle func() float64) {
	for i := range bodies {
		b := &bodies[i]
		for j := range bodies {
			if i == j {
				continue
			}
			x := bodies[j].x - b.x
			y := bodies[j].y - b.y
			l := x*x + y*y
			if x == 0 {
				x = jiggle()
				l += x * x
			}
			if y == 0 {
				y = jiggle()
				l += y * y
			}
			if l < distanceMin2 {
				l = math.Sqrt(distanceMin2 * l)
			}
			w := strength * alpha / l
			b.vx += x * w
			b.vy += y * w
		}
	}
}

// applyCenter translates all bodies so their mean sits on (cx, cy)
func applyCenter(bodies []body, cx, cy float64) {
	if len(bodies) == 0 {
		return
	}
	var sx, sy float64
	for _, b := range bodies {
		sx += b.x
		sy += b.y
	}
	sx = sx/float64(len(bodies)) - cx
	sy = sy/float64(len(bodies)) - cy
	for i := range bodies {
		bodies[i].x -= sx
		bodies[i].y -= sy
	}
}

// applyAxis springs every body toward the midlines x = cx and y = cy
func applyAxis(bodies []body, cx, cy, strength, alpha float64) {
	k := strength * alpha
	for i := range bodies {
		b := &bodies[i]
		b.vx += (cx - b.x) * k
		b.vy += (cy - b.y) * k
	}
}

// integrate applies velocity decay and moves the bodies.
// Pinned bodies sit on their pin with zero velocity.
func integrate(bodies []body, velocityDecay float64) {
	keep := 1 - velocityDecay
	for i := range bodies {
		b := &bodies[i]
		if b.pinned {
			b.x, b.y = b.fx, b.fy
			b.vx, b.vy = 0, 0
			continue
		}
		b.vx *= keep
		b.vy *= keep
		b.x += b.vx
		b.y += b.vy
	}
}

// phyllotaxis returns the index-derived starting point of body i around (cx, cy)
func phyllotaxis(i int, cx, cy float64) (float64, float64) {
	const initialRadius = 10
	angle := float64(i) * math.Pi * (3 - math.Sqrt(5))
	r := initialRadius * math.Sqrt(0.5+float64(i))
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}
