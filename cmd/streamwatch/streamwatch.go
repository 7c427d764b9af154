package streamwatch

const Version = "v0.1.0"
