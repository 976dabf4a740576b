package noise

import (
	"math"
	"math/rand"
)

// perlin is classic gradient noise over a seeded permutation table.
type perlin struct {
	p [512]int
}

func newPerlin(seed int64) *perlin {
	rng := rand.New(rand.NewSource(seed))
	n := &perlin{}
	for i := 0; i < 256; i++ {
		n.p[i] = i
	}
	rng.Shuffle(256, func(i, j int) {
		n.p[i], n.p[j] = n.p[j], n.p[i]
	})
	// doubled so corner hashes never index past the table
	copy(n.p[256:], n.p[:256])
	return n
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad evaluates the gradient selected by hash at z = 0.
func grad(hash int, x, y float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// at returns noise in roughly [-1, 1].
func (n *perlin) at(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	xi := int(fx) & 255
	yi := int(fy) & 255
	x -= fx
	y -= fy

	u := fade(x)
	v := fade(y)

	a := n.p[xi] + yi
	aa := n.p[a]
	ab := n.p[a+1]
	b := n.p[xi+1] + yi
	ba := n.p[b]
	bb := n.p[b+1]

	return lerp(v,
		lerp(u, grad(n.p[aa], x, y), grad(n.p[ba], x-1, y)),
		lerp(u, grad(n.p[ab], x, y-1), grad(n.p[bb], x-1, y-1)),
	)
}
