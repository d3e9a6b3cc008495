package analysis

// Peak is a local maximum of a sampled signal.
type Peak struct {
	Index int
	Time  float64
	Value float64
}

// FindPeaks returns the strict interior local maxima of values. A plateau counts
// once, at its first sample.
func FindPeaks(times, values []float64) []Peak {
	n := min(len(times), len(values))
	var peaks []Peak
	for i := 1; i < n-1; i++ {
		if values[i] <= values[i-1] {
			continue
		}
		j := i
		for j+1 < n && values[j+1] == values[i] {
			j++
		}
		if j+1 < n && values[j+1] < values[i] {
			peaks = append(peaks, Peak{Index: i, Time: times[i], Value: values[i]})
		}
	}
	return peaks
}

// EstimatePeriod is the mean spacing of successive peaks, or 0 with fewer than two.
func EstimatePeriod(peaks []Peak) float64 {
	if len(peaks) < 2 {
		return 0
	}
	return (peaks[len(peaks)-1].Time - peaks[0].Time) / float64(len(peaks)-1)
}

// Decaying reports whether no peak exceeds the one before it by more than tol.
func Decaying(peaks []Peak, tol float64) bool {
	for i := 1; i < len(peaks); i++ {
		if peaks[i].Value > peaks[i-1].Value+tol {
			return false
		}
	}
	return true
}
