package entity

// Segment is a price tier assigned relative to the current product set's
// price distribution, not by absolute price bands.
type Segment string

const (
	SegmentLow       Segment = "low"
	SegmentMedium    Segment = "medium"
	SegmentHigh      Segment = "high"
	SegmentUndefined Segment = "undefined"
)

func (s Segment) String() string {
	switch s {
	case SegmentLow, SegmentMedium, SegmentHigh:
		return string(s)
	default:
		return string(SegmentUndefined)
	}
}

// SegmentOrder is the fixed display order for rollups. Undefined is not
// part of it: rollup consumers always render exactly these three slices.
var SegmentOrder = []Segment{SegmentLow, SegmentMedium, SegmentHigh}

func IsValidSegment(s Segment) bool {
	_, ok := validSegments[s]
	return ok
}

var validSegments = map[Segment]bool{
	SegmentLow:       true,
	SegmentMedium:    true,
	SegmentHigh:      true,
	SegmentUndefined: true,
}
