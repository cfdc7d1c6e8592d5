package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"activity:view",
		"participant:join",
		"submission:create",
		"submission:view-own",
	},
	"teacher": {
		"activity:create",
		"activity:view",
		"activity:list",
		"submission:view-all",
		"leaderboard:view",
	},
	"admin": {
		"*", // everything
	},
}
