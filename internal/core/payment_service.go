package core

import (
	"context"

	"odoo-agent/internal/odoo"
)

// PaymentService selects the route incoming payments are registered
// through.
type PaymentService struct {
	exec odoo.Executor
}

func NewPaymentService(exec odoo.Executor) *PaymentService {
	return &PaymentService{exec: exec}
}

// DefaultRoute walks the journals in remote order and picks the first one
// named exactly "Bank" or exactly "Cash" that has at least one inbound
// payment method line. Both names are checked in the same pass, so
// whichever qualifying journal the remote returns first wins regardless
// of which of the two names it carries.
func (s *PaymentService) DefaultRoute(ctx context.Context) (PaymentRoute, bool) {
	res := odoo.Call(ctx, s.exec, "account.journal", "search_read",
		[]any{
			[]any{},
			[]any{"id", "name", "type", "inbound_payment_method_line_ids", "outbound_payment_method_line_ids"},
		}, nil)

	for _, rec := range res.Records() {
		journal := journalFromRecord(rec)
		if journal.Name != "Bank" && journal.Name != "Cash" {
			continue
		}
		if len(journal.InboundLineIDs) == 0 {
			continue
		}
		return PaymentRoute{
			JournalID:    journal.ID,
			MethodLineID: journal.InboundLineIDs[0],
		}, true
	}
	return PaymentRoute{}, false
}
