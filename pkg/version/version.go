package version

// Version is stamped at build time:
// go build -ldflags "-X github.com/shishobooks/circulation/pkg/version.Version=1.0.0".
var Version = "dev"
