package export

import (
	"strings"
	"testing"
	"time"

	"github.com/hrmstack/leavectl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV_EmptyRowsYieldsHeaderOnly(t *testing.T) {
	got := CSV(nil, AttendanceSchema())
	assert.Equal(t, "Employee,Team,Date,Check-In,Check-Out,Status", got)
	assert.Len(t, strings.Split(got, "\n"), 1)
}

func TestCSV_AttendanceRoundTrip(t *testing.T) {
	rows := []models.Attendance{
		{
			EmpName:  "Alice",
			Team:     "Eng",
			Date:     "2024-01-02",
			CheckIn:  "09:00",
			CheckOut: "18:00",
			Status:   "Login",
		},
	}

	got := CSV(rows, AttendanceSchema())
	assert.Equal(t, "Employee,Team,Date,Check-In,Check-Out,Status\nAlice,Eng,2024-01-02,09:00,18:00,Login", got)
}

func TestCSV_LineCountMatchesRows(t *testing.T) {
	rows := []models.Attendance{
		{EmpName: "Alice", Team: "Eng", Date: "2024-01-02", Status: "Login"},
		{EmpName: "Bob", Team: "Ops", Date: "2024-01-02", Status: "Completed"},
	}

	got := CSV(rows, AttendanceSchema())
	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 3, "header plus one line per row")
	assert.True(t, strings.HasPrefix(lines[1], "Alice,"))
	assert.True(t, strings.HasPrefix(lines[2], "Bob,"))
}

func TestCSV_PreservesInputOrder(t *testing.T) {
	rows := []models.LeaveRequest{
		{EmpName: "Zed", Team: "Ops", LeaveType: "Sick", StartDate: "2024-02-01", EndDate: "2024-02-01", Duration: "1 day(s)", Status: "approved"},
		{EmpName: "Amy", Team: "Eng", LeaveType: "Annual", StartDate: "2024-02-05", EndDate: "2024-02-07", Duration: "3 day(s)", Status: "pending"},
	}

	got := CSV(rows, LeaveSchema())
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "Zed,"))
	assert.True(t, strings.HasPrefix(lines[2], "Amy,"))
}

func TestCSV_EmptyFieldsStayEmpty(t *testing.T) {
	rows := []models.Attendance{{EmpName: "Alice", Team: "Eng", Date: "2024-01-02", Status: "Not Logged"}}

	got := CSV(rows, AttendanceSchema())
	assert.Equal(t, "Employee,Team,Date,Check-In,Check-Out,Status\nAlice,Eng,2024-01-02,,,Not Logged", got)
}

func TestLeaveSchemaHeaders(t *testing.T) {
	assert.Equal(t,
		[]string{"Employee", "Team", "Leave Type", "Start Date", "End Date", "Duration", "Status", "Reason"},
		LeaveSchema().Headers())
}

func TestFilename(t *testing.T) {
	exportedAt := time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "attendance-report-2024-06-14.csv",
		Filename(KindAttendance, "csv", exportedAt, "", ""))

	assert.Equal(t, "leave-report-2024-06-01-to-2024-06-30.csv",
		Filename(KindLeave, "csv", exportedAt, "2024-06-01", "2024-06-30"))

	// A half-specified range falls back to the export date.
	assert.Equal(t, "leave-report-2024-06-14.xlsx",
		Filename(KindLeave, "xlsx", exportedAt, "2024-06-01", ""))
}

func TestXLSX_MirrorsSchema(t *testing.T) {
	rows := []models.Attendance{
		{EmpName: "Alice", Team: "Eng", Date: "2024-01-02", CheckIn: "09:00", CheckOut: "18:00", Status: "Login"},
	}

	f, err := XLSX(rows, AttendanceSchema())
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Employee", "Team", "Date", "Check-In", "Check-Out", "Status"}, got[0])
	assert.Equal(t, []string{"Alice", "Eng", "2024-01-02", "09:00", "18:00", "Login"}, got[1])
}

func TestXLSX_EmptyRows(t *testing.T) {
	f, err := XLSX(nil, LeaveSchema())
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, got, 1, "header row only")
}
