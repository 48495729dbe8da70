package contextkeys

type contextKey string

const (
	EmployeeIDKey contextKey = "EmployeeID"
	EmployeeKey   contextKey = "Employee"
	RoleKey       contextKey = "Role"
	EmailKey      contextKey = "Email"
)
