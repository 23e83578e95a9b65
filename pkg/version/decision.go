package version

type Kind string

const (
	KindUpToDate        Kind = "up-to-date"       // installed patch is the advertised one
	KindUpdateAvailable Kind = "update-available" // a newer patch is advertised
	KindAnomaly         Kind = "anomaly"          // installed patch is newer than the advertised one
)

// Outcome is the result of comparing the installed patch with the advertised one.
type Outcome struct {
	Kind    Kind
	Current Version
	Latest  Version
}

// Decide compares current and latest by decimal value.
func Decide(current, latest Version) Outcome {
	outcome := Outcome{Current: current, Latest: latest}
	switch current.Cmp(latest) {
	case -1:
		outcome.Kind = KindUpdateAvailable
	case 0:
		outcome.Kind = KindUpToDate
	default:
		outcome.Kind = KindAnomaly
	}
	return outcome
}
