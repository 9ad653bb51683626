package check

// Checker is implemented by all check types.
// Each check validates one aspect of an installed host
// and returns a Result indicating success or failure.
//
// Implementations:
//   - cmdcheck.Check: runs a command and asserts its exit code and output
//   - filecheck.Check: checks file/directory presence and properties
//   - limitcheck.Check: matches a resource limit of a running process
//   - servicecheck.Check: verifies a service is running
//   - usercheck.Check: verifies a service account and its attributes
type Checker interface {
	Run() Result
}
