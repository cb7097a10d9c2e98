package outpack

// Version of outpack-query, filled in from main
var Version = "unknown"
