package dto

type CreateEmployeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

func (r CreateEmployeeRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.FirstName == "" {
		errors["first_name"] = "First name is required"
	}
	if r.LastName == "" {
		errors["last_name"] = "Last name is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	}

	return errors
}

// UpdateEmployeeRequest is a partial update. Empty required fields keep
// their previous values; phone distinguishes "absent" from "cleared".
type UpdateEmployeeRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
}
