package patch_checker

type VersionInfo struct {
	Version   string `json:"Version"`
	GitCommit string `json:"GitCommit"`
	BuildDate string `json:"BuildDate"`
}

// set at build time with -ldflags "-X"
var (
	buildVersion = "0.1.0"
	gitCommit    = ""
	buildDate    = ""
)

func Version() VersionInfo {
	return VersionInfo{
		Version:   buildVersion,
		GitCommit: gitCommit,
		BuildDate: buildDate,
	}
}
