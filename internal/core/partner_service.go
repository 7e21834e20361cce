package core

import (
	"context"
	"strings"

	"odoo-agent/internal/odoo"
)

// PartnerService resolves customers in the remote partner directory.
type PartnerService struct {
	exec odoo.Executor
}

func NewPartnerService(exec odoo.Executor) *PartnerService {
	return &PartnerService{exec: exec}
}

// ResolveByName finds the first partner whose name contains the given
// text, case-insensitively. Returns false when the name is blank, when
// nothing matches, or when the underlying call fails.
func (s *PartnerService) ResolveByName(ctx context.Context, name string) (int64, bool) {
	if strings.TrimSpace(name) == "" {
		return 0, false
	}

	res := odoo.Call(ctx, s.exec, "res.partner", "search_read",
		[]any{[]any{[]any{"name", "ilike", name}}},
		&odoo.CallOptions{
			Fields: []string{"id", "name"},
			Limit:  1,
		})

	rec, ok := res.First()
	if !ok {
		return 0, false
	}
	return fieldInt64(rec, "id"), true
}
