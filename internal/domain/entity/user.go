package entity

// Roles conocidos para User. El campo viene del ERP origen y no se valida
// contra esta lista; se expone tal cual en el token.
const (
	RoleAdmin = "admin"
	RoleSync  = "sync"
)

// User representa una fila de acc_users: la tabla de credenciales que el ERP
// origen replica hacia este servicio. ID es el nombre de usuario.
type User struct {
	ID       string
	Password string // bcrypt hash, o texto plano legado si la fila vino del sync
	Role     string
}
