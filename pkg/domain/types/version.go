package types

// Version is the coresync build version, overridden with -ldflags at release time
var Version = "dev"

// AppName is used for the User-Agent header and log attributes
const AppName = "coresync"
