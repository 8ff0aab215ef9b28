package momentchain

import "fmt"

// These constants follow the semantic versioning 2.0.0 spec (http://semver.org/).
const (
	major uint8 = 0
	minor uint8 = 1
	patch uint8 = 0
)

func StringVersion() string {
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}
