package supervisor

import "fmt"

// SpawnError reports that the supervised process could not be created. The
// dashboard keeps serving in degraded mode when it sees one.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn kms server: %v", e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
