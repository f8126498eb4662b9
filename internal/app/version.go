package app

// Version is set at build time with -ldflags "-X .../internal/app.Version=...".
var Version = "dev"
