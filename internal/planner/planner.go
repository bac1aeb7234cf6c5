package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SplitRange is one contiguous time interval of the source video, in
// seconds from the start of the file. Start is inclusive, End exclusive.
type SplitRange struct {
	Start float64
	End   float64
}

// Duration returns the length of the range in seconds.
func (r SplitRange) Duration() float64 {
	return r.End - r.Start
}

// InvalidTimestampError reports a split boundary that could not be used:
// unparseable, out of bounds, or not strictly increasing.
type InvalidTimestampError struct {
	Value  string
	Reason string
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid split timestamp %q: %s", e.Value, e.Reason)
}

// PlanEqualCount divides [start, end] into exactly count equal ranges.
func PlanEqualCount(start, end float64, count int) ([]SplitRange, error) {
	if err := checkWindow(start, end); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, fmt.Errorf("chunk count must be at least 1, got %d", count)
	}

	part := (end - start) / float64(count)
	ranges := make([]SplitRange, 0, count)
	for i := 0; i < count; i++ {
		r := SplitRange{
			Start: start + float64(i)*part,
			End:   start + float64(i+1)*part,
		}
		ranges = append(ranges, r)
	}
	// Pin the last boundary so float accumulation never leaves a gap.
	ranges[count-1].End = end
	return ranges, nil
}

// PlanFixedLength divides [start, end] into ranges of the given length in
// seconds; the last range may be shorter. A trailing range shorter than
// minRemainder is merged into the previous one instead of emitted.
func PlanFixedLength(start, end, length, minRemainder float64) ([]SplitRange, error) {
	if err := checkWindow(start, end); err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, fmt.Errorf("chunk duration must be positive, got %v", length)
	}

	var ranges []SplitRange
	for cur := start; cur < end; cur += length {
		ranges = append(ranges, SplitRange{
			Start: cur,
			End:   math.Min(cur+length, end),
		})
	}

	if n := len(ranges); n >= 2 && ranges[n-1].Duration() < minRemainder {
		ranges[n-2].End = ranges[n-1].End
		ranges = ranges[:n-1]
	}
	return ranges, nil
}

// PlanExplicit builds ranges from user-supplied interior boundaries.
// Each boundary must parse (seconds, MM:SS or HH:MM:SS), lie strictly
// inside (start, end), and the list must be strictly increasing;
// otherwise an InvalidTimestampError is returned and no ranges are
// produced.
func PlanExplicit(start, end float64, boundaries []string) ([]SplitRange, error) {
	if err := checkWindow(start, end); err != nil {
		return nil, err
	}
	if len(boundaries) == 0 {
		return nil, &InvalidTimestampError{Value: "", Reason: "no split timestamps given"}
	}

	points := make([]float64, 0, len(boundaries))
	for _, raw := range boundaries {
		t, err := ParseTimestamp(raw)
		if err != nil {
			return nil, err
		}
		if t <= start || t >= end {
			return nil, &InvalidTimestampError{
				Value:  raw,
				Reason: fmt.Sprintf("outside the splittable window (%.3f, %.3f)", start, end),
			}
		}
		if n := len(points); n > 0 && t <= points[n-1] {
			return nil, &InvalidTimestampError{
				Value:  raw,
				Reason: "timestamps must be strictly increasing",
			}
		}
		points = append(points, t)
	}

	edges := append(append([]float64{start}, points...), end)
	ranges := make([]SplitRange, 0, len(edges)-1)
	for i := 0; i < len(edges)-1; i++ {
		ranges = append(ranges, SplitRange{Start: edges[i], End: edges[i+1]})
	}
	return ranges, nil
}

// ParseTimestamp converts a timestamp string to seconds. Plain decimal
// seconds, MM:SS and HH:MM:SS forms are accepted.
func ParseTimestamp(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, &InvalidTimestampError{Value: s, Reason: "empty timestamp"}
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) > 3 {
		return 0, &InvalidTimestampError{Value: s, Reason: "expected seconds, MM:SS or HH:MM:SS"}
	}

	total := 0.0
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0, &InvalidTimestampError{Value: s, Reason: "expected seconds, MM:SS or HH:MM:SS"}
		}
		total = total*60 + v
	}
	return total, nil
}

func checkWindow(start, end float64) error {
	if start < 0 {
		return fmt.Errorf("window start must not be negative, got %v", start)
	}
	if end <= start {
		return fmt.Errorf("window end %v must be after start %v", end, start)
	}
	return nil
}
