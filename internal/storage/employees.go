package storage

type Employee struct {
	ID          int64   `json:"id"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	DisplayName *string `json:"display_name"`
	Team        string  `json:"team"`
}

// Assignment links an employee to a project in the planning grid.
type Assignment struct {
	ProjectID  int64 `json:"project_id"`
	EmployeeID int64 `json:"employee_id"`
}
