package version

// Version is the logdoctor release version. Overridden at build time via
// -ldflags "-X github.com/ftcdoctor/logdoctor/internal/version.Version=v1.2.3".
var Version = "dev"
