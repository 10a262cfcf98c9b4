package path

// Bounds returns the bounding box of the contours as min and max corners.
// ok is false when there are no points.
func Bounds(contours []Contour) (minPt, maxPt Point, ok bool) {
	for _, c := range contours {
		for _, p := range c {
			if !ok {
				minPt, maxPt, ok = p, p, true
				continue
			}
			minPt.X = min(minPt.X, p.X)
			minPt.Y = min(minPt.Y, p.Y)
			maxPt.X = max(maxPt.X, p.X)
			maxPt.Y = max(maxPt.Y, p.Y)
		}
	}
	return minPt, maxPt, ok
}
