package dto

type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (r CreateTeamRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Team name is required"
	}

	return errors
}

type UpdateTeamRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type AssignmentRequest struct {
	EmployeeID string `json:"employeeId"`
}

func (r AssignmentRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.EmployeeID == "" {
		errors["employeeId"] = "Employee ID is required"
	}

	return errors
}
