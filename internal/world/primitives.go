package world

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// walkLine visits a 4-connected line from one point to another, so that
// consecutive cells always share an edge.
func walkLine(from, to Point, visit func(Point)) {
	dx := abs(to.X - from.X)
	dy := abs(to.Y - from.Y)
	sx := 1
	if from.X > to.X {
		sx = -1
	}
	sy := 1
	if from.Y > to.Y {
		sy = -1
	}
	err := dx - dy

	x, y := from.X, from.Y
	for n := 1 + dx + dy; n > 0; n-- {
		visit(Point{x, y})
		if err > 0 {
			x += sx
			err -= 2 * dy
		} else {
			y += sy
			err += 2 * dx
		}
	}
}
