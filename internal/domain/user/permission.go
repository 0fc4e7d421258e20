package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Service provisions
	PermissionProvisionCreate   Permission = "provision.create"
	PermissionProvisionViewOwn  Permission = "provision.view_own"
	PermissionProvisionViewAll  Permission = "provision.view_all"
	PermissionProvisionValidate Permission = "provision.validate"
	PermissionProvisionEdit     Permission = "provision.edit"

	// Time clock
	PermissionPunchCreate  Permission = "punch.create"
	PermissionPunchViewAll Permission = "punch.view_all"

	// Registry
	PermissionEmployeeManage Permission = "employee.manage"
	PermissionCompanyManage  Permission = "company.manage"
	PermissionMasterManage   Permission = "master.manage"

	// Reports
	PermissionReportsView Permission = "reports.view"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionProvisionCreate,
		PermissionProvisionViewOwn,
		PermissionProvisionViewAll,
		PermissionProvisionValidate,
		PermissionProvisionEdit,
		PermissionPunchCreate,
		PermissionPunchViewAll,
		PermissionEmployeeManage,
		PermissionCompanyManage,
		PermissionMasterManage,
		PermissionReportsView,
		PermissionUserManage,
	},
	RoleManager: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionProvisionCreate,
		PermissionProvisionViewOwn,
		PermissionProvisionViewAll,
		PermissionProvisionValidate,
		PermissionProvisionEdit,
		PermissionPunchViewAll,
		PermissionEmployeeManage,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionProvisionCreate,
		PermissionProvisionViewOwn,
		PermissionPunchCreate,
	},
	RoleUser: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
