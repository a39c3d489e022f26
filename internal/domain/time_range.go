package domain

import "time"

// TimeRange полуоткрытый интервал [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps пересекаются ли [a,b) и [c,d), то есть a<d && c<b
// Интервалы, касающиеся только границей, не пересекаются
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Duration длина интервала
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Label интервал в виде "HH:MM-HH:MM" в часовом поясе самого интервала
func (r TimeRange) Label() string {
	return r.Start.Format(TimeFormat) + "-" + r.End.Format(TimeFormat)
}
