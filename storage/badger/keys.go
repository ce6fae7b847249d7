package badger

import "fmt"

// Key prefixes for different data types
const (
	scholarshipPrefix = "schrec"
	statusPrefix      = "schsta"
	vectorPrefix      = "schvec"
)

// makeScholarshipKey generates a key for a scholarship by id.
func makeScholarshipKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", scholarshipPrefix, id))
}

// makeStatusKey generates a composite key for the status index.
// Format: prefix:status:id
func makeStatusKey(status, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", statusPrefix, status, id))
}

// makePartialStatusKey generates a partial key for status scans.
func makePartialStatusKey(status string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", statusPrefix, status))
}

// makeVectorKey generates a key for a cached embedding vector by id.
func makeVectorKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", vectorPrefix, id))
}
