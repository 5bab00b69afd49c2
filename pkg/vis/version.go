package vis

// Version is the pcaeviz release version.
const Version = "0.1.0"
