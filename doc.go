// Package tablerepo exposes table repositories as services bound to the
// global database configured through the database package.
//
//	record.Register("users", record.NewEntityType("name", "email", "createdAt", "updatedAt"))
//	users, err := tablerepo.NewService[*record.Entity]("users")
//	page, err := users.ForPage(ctx, 1, 20, types.NewFilters().OrderedBy(types.OrderAsc("name")))
package tablerepo
