package dto

// Permission 角色权限响应
type Permission struct {
	ID        int32
	Role      string
	Resource  string
	CanRead   bool
	CanCreate bool
	CanUpdate bool
	CanDelete bool
	UpdatedAt string
}

// PermissionInput 权限写入请求，未提供的动作视为 false
type PermissionInput struct {
	Role      string
	Resource  string
	CanRead   *bool
	CanCreate *bool
	CanUpdate *bool
	CanDelete *bool
}

// Flags 返回四个动作开关
func (in *PermissionInput) Flags() (read, create, update, del bool) {
	return boolean(in.CanRead), boolean(in.CanCreate), boolean(in.CanUpdate), boolean(in.CanDelete)
}
