package storage

// TimeRow is one (project, employee, date, hour-slot) entry with its minute
// duration. The same shape is read from both the planned and the actual table.
type TimeRow struct {
	ProjectID  int64  `json:"project_id"`
	EmployeeID int64  `json:"employee_id"`
	Date       string `json:"d"`
	Hour       int    `json:"hour"`
	Minutes    int    `json:"minutes"`
}
