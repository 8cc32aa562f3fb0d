package call

import "fmt"

// FormatElapsed renders seconds as M:SS. Minutes are unbounded, there is no
// hour field. Negative input is treated as zero.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
