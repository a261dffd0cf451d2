package huckleberry

// Version is the interpreter version reported by the CLI and the REPL banner.
const Version = "0.3.0"

// BuildDate can be overridden at link time with -ldflags.
var BuildDate = "unknown"
