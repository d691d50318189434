package version

// Stage is bumped when the toolchain grows a new pipeline phase.
const Stage = "0.3"

// String returns the human-readable toolchain version.
func String() string { return "astralc " + Stage }
