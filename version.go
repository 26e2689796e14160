package flowserve

// Version is the release of the flowserve module.
const Version = "0.4.0"
