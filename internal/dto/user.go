package dto

type CreateUserRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=100"`
	SystemRole string `json:"system_role" binding:"omitempty,oneof=global_admin standard"`
	Avatar     string `json:"avatar"`
}

type UpdateSystemRoleRequest struct {
	SystemRole string `json:"system_role" binding:"required,oneof=global_admin standard"`
}

type UpsertClientRoleRequest struct {
	ClientID    uint   `json:"client_id" binding:"required"`
	CompanyRole string `json:"company_role" binding:"required,min=1,max=50"`
}
