package version

// EmptyValue is the value we use when running a binary that wasn't built by
// the release process. This is helpful for telling when we're running in a
// unit test.
const EmptyValue = "0.0.0-dev"

// Version is the release tag the binary was built from. It's stamped by the
// linker at build time.
var Version = EmptyValue
