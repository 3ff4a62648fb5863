package export

import (
	"fmt"
	"time"
)

// Report kinds used in export filenames
const (
	KindAttendance = "attendance"
	KindLeave      = "leave"
)

// Filename builds the download filename for a report export. With a date
// range filter the range is embedded; otherwise the export date is used.
//
//	attendance-report-2024-06-14.csv
//	leave-report-2024-06-01-to-2024-06-30.csv
func Filename(kind, ext string, exportedAt time.Time, from, to string) string {
	if from != "" && to != "" {
		return fmt.Sprintf("%s-report-%s-to-%s.%s", kind, from, to, ext)
	}
	return fmt.Sprintf("%s-report-%s.%s", kind, exportedAt.Format("2006-01-02"), ext)
}
