package tstime

// Specification describes the grid a Result's series are aligned to: start,
// end, interval, and time zone (spec.md §3, TimeSpecification). It is
// optional per Result; when absent, contained series carry no implicit
// alignment. A NumericArray carries its own start and interval, so array
// series do not depend on a Specification being present.
type Specification struct {
	Start    TimeStamp
	End      TimeStamp
	Interval Duration
	Zone     *Location
}

// Location is a minimal IANA time-zone reference. It is kept separate from
// the standard library's *time.Location so TimeParser implementations can
// stay decoupled from how a zone was resolved.
type Location struct {
	Name string
}

// TimestampAt returns the timestamp of the i'th element of a NumericArray
// series governed by this specification (spec.md §3: "a NumericArray's
// length and interval together fully determine the timestamps of its
// elements").
func (s Specification) TimestampAt(i int) TimeStamp {
	return TimeStamp{Millis: s.Start.Millis + int64(i)*s.Interval.Millis()}
}
