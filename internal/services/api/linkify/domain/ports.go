package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Linkify(ctx context.Context, in LinkifyInput) (LinkifyOutput, error)
	Categories(ctx context.Context) (CategoriesOutput, error)
	RewriteTable(ctx context.Context, table string) (RewriteTableOutput, error)
	PutRewriteTable(ctx context.Context, table string, in RewriteTableInput) (RewriteTableOutput, error)
	RecordClick(ctx context.Context, in ClickInput) (ClickOutput, error)
	TopClicks(ctx context.Context, in TopClicksInput) ([]TopClicksRow, error)
}
