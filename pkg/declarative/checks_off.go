//go:build declarative_release

package declarative

const defaultBranchChecks = false
