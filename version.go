package paramspec

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/aretw0/paramspec.Version=...".
var Version = "0.3.0"
