package domain

// Permission is a data-lake permission the grant service can give.
type Permission string

const (
	PermissionSelect    Permission = "SELECT"
	PermissionDescribe  Permission = "DESCRIBE"
	PermissionAssociate Permission = "ASSOCIATE"
)

// ReadPermissions are granted on shared resources.
var ReadPermissions = []Permission{PermissionSelect, PermissionDescribe}

// GrantRequest asks the grant service to give Principal the Permissions on
// exactly one target: a table (or database wildcard), a single tag, or every
// resource matching a tag expression.
type GrantRequest struct {
	Principal     string
	Resource      *ResourceSelector
	Tag           *Tag
	TagExpression []Tag
	Permissions   []Permission
}
