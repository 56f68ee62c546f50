package version

// Version is the current procwatch version.
const Version = "0.3.1"
