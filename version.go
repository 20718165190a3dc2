package gatehouse

// Version is the gatehouse release version. Release builds override it with
// -ldflags "-X github.com/aretw0/gatehouse.Version=v1.2.3".
var Version = "0.3.0-dev"
