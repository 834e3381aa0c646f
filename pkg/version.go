package solace

// Version is the current solace release.
const Version = "0.3.0"
