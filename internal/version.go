package internal

// Version is the current yiwen release, overridden via -ldflags at build time.
var Version = "0.3.0"
