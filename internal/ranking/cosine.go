package ranking

import "math"

// Cosine computes the cosine similarity of two equal-length vectors:
// dot(a,b) / (||a|| * ||b||). The result lies in [-1, 1]; a zero vector on
// either side yields 0. Accumulation happens in float64 to keep the score
// stable regardless of the service's native precision.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Guard against float drift pushing the score out of range.
	if score > 1.0 {
		score = 1.0
	}
	if score < -1.0 {
		score = -1.0
	}

	return score
}
