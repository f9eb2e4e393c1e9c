package domain

import "context"

// Kinds of catalog change announced after a mutation
const (
	ChangeUpsert   = "upsert"
	ChangeDelete   = "delete"
	ChangeReplace  = "replace"
	ChangePurchase = "purchase"
)

// ChangeNotifier announces committed catalog mutations to other instances
type ChangeNotifier interface {
	CatalogChanged(ctx context.Context, kind string, productIDs []string) error
}
