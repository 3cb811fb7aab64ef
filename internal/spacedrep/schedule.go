package spacedrep

// SM-2 easiness factor bounds and default.
const (
	DefaultEasinessFactor = 2.50
	MinEasinessFactor     = 1.3
	MaxEasinessFactor     = 4.0
)

// Fixed intervals for the first two successful reviews. Later intervals grow
// by the easiness factor.
const (
	FirstIntervalDays  = 1
	SecondIntervalDays = 6
)

// MaxIntervalDays caps interval growth so review dates stay representable.
const MaxIntervalDays = 36500

// Response time thresholds used to derive a grade.
const (
	FastResponseMs = 2000
	SlowResponseMs = 3000
)
