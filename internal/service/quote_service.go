package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gstcore/internal/domain"
	"gstcore/internal/metrics"
	"gstcore/internal/money"
	"gstcore/internal/tax"
	"gstcore/internal/words"
)

// MaxLineItems bounds a single draft.
const MaxLineItems = 1000

// QuoteItem is one line of a draft as submitted. Numeric fields accept
// numbers or numeric strings; anything unparseable counts as zero.
type QuoteItem struct {
	Description string        `json:"description"`
	HSN         string        `json:"hsn"`
	Quantity    money.Lenient `json:"quantity"`
	Rate        money.Lenient `json:"rate"`
	TaxPercent  money.Lenient `json:"tax_percent"`
}

// QuoteParty locates a buyer or seller. Any one field is enough.
type QuoteParty struct {
	Name      string `json:"name,omitempty"`
	State     string `json:"state,omitempty"`
	StateCode string `json:"state_code,omitempty"`
	GSTIN     string `json:"gstin,omitempty"`
}

// QuoteInput is the DTO for pricing an invoice draft. The buyer may arrive
// as "buyer", as "customer", or flattened into "buyer_state".
type QuoteInput struct {
	Items       []QuoteItem   `json:"items"`
	Buyer       *QuoteParty   `json:"buyer,omitempty"`
	Customer    *QuoteParty   `json:"customer,omitempty"`
	BuyerState  string        `json:"buyer_state,omitempty"`
	Seller      *QuoteParty   `json:"seller,omitempty"`
	SellerState string        `json:"seller_state,omitempty"`
	TaxEnabled  *bool         `json:"tax_enabled,omitempty"`
	Discount    money.Lenient `json:"discount"`
	AmountPaid  money.Lenient `json:"amount_paid"`
}

// Draft is a QuoteInput resolved into calculator inputs.
type Draft struct {
	Items    []tax.LineItem
	Buyer    tax.Jurisdiction
	Seller   tax.Jurisdiction
	Discount money.Paise
	Paid     money.Paise
}

// FormattedTotals carries display strings such as "₹1,180.00".
type FormattedTotals struct {
	Taxable     string `json:"taxable"`
	CGST        string `json:"cgst"`
	SGST        string `json:"sgst"`
	IGST        string `json:"igst"`
	TotalTax    string `json:"total_tax"`
	RoundOff    string `json:"round_off"`
	Discount    string `json:"discount"`
	GrandTotal  string `json:"grand_total"`
	Outstanding string `json:"outstanding"`
}

// Quote is the priced draft.
type Quote struct {
	tax.Result
	Buyer         tax.Jurisdiction `json:"buyer"`
	Seller        tax.Jurisdiction `json:"seller"`
	Settlement    tax.Settlement   `json:"settlement"`
	AmountInWords string           `json:"amount_in_words"`
	Formatted     FormattedTotals  `json:"formatted"`
	FailedChecks  []tax.Check      `json:"failed_checks,omitempty"`
}

// QuoteService prices invoice drafts.
type QuoteService interface {
	Quote(ctx context.Context, input QuoteInput) (*Quote, error)
}

type quoteService struct {
	seller  tax.Jurisdiction
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewQuoteService creates a new QuoteService. seller is used for drafts that
// do not name one.
func NewQuoteService(seller tax.Jurisdiction, m *metrics.Metrics, log *zap.Logger) QuoteService {
	if log == nil {
		log = zap.NewNop()
	}
	return &quoteService{seller: seller, metrics: m, log: log.Named("quote")}
}

func (s *quoteService) Quote(ctx context.Context, input QuoteInput) (*Quote, error) {
	if len(input.Items) > MaxLineItems {
		return nil, fmt.Errorf("%w: at most %d line items allowed", domain.ErrInvalidInput, MaxLineItems)
	}

	draft := NormalizeDraft(input, s.seller)
	res := tax.ComputeTotals(draft.Items, draft.Buyer, draft.Seller)
	res.Totals = tax.ApplyDiscount(res.Totals, draft.Discount)
	settlement := tax.Settle(res.Totals, draft.Paid)

	q := &Quote{
		Result:        res,
		Buyer:         draft.Buyer,
		Seller:        draft.Seller,
		Settlement:    settlement,
		AmountInWords: words.Rupees(res.Totals.GrandTotal.Decimal()),
		Formatted:     formatTotals(res.Totals, settlement),
	}

	s.metrics.ObserveComputation(string(res.SupplyType), len(res.Rows))
	for _, c := range tax.Failed(tax.Reconcile(res)) {
		s.metrics.IncReconcileFailure(c.Key)
		s.log.Error("quoteService.Quote: reconciliation failed",
			zap.String("rule", c.Key),
			zap.String("message", c.Message))
		q.FailedChecks = append(q.FailedChecks, c)
	}
	return q, nil
}

// NormalizeDraft resolves the alternative buyer shapes, fills the seller
// from fallback and converts amounts to paise. Disabling tax zeroes every
// tax percent.
func NormalizeDraft(input QuoteInput, fallback tax.Jurisdiction) Draft {
	d := Draft{
		Items:    make([]tax.LineItem, 0, len(input.Items)),
		Buyer:    firstJurisdiction(input.Buyer, input.Customer, &QuoteParty{State: input.BuyerState}),
		Seller:   firstJurisdiction(input.Seller, &QuoteParty{State: input.SellerState}),
		Discount: money.FromDecimal(input.Discount.Decimal),
		Paid:     money.FromDecimal(input.AmountPaid.Decimal),
	}
	if d.Seller.IsZero() {
		d.Seller = fallback
	}

	taxed := input.TaxEnabled == nil || *input.TaxEnabled
	for i := range input.Items {
		it := &input.Items[i]
		li := tax.LineItem{
			Description: strings.TrimSpace(it.Description),
			HSN:         it.HSN,
			Quantity:    it.Quantity.Decimal,
			Rate:        it.Rate.Decimal,
			TaxPercent:  it.TaxPercent.Decimal,
		}
		if !taxed {
			li.TaxPercent = decimal.Zero
		}
		d.Items = append(d.Items, li)
	}
	return d
}

func firstJurisdiction(parties ...*QuoteParty) tax.Jurisdiction {
	for _, p := range parties {
		if p == nil {
			continue
		}
		if j := p.jurisdiction(); !j.IsZero() {
			return j
		}
	}
	return tax.Jurisdiction{}
}

// jurisdiction prefers the explicit code, then the state name, then the
// GSTIN prefix.
func (p *QuoteParty) jurisdiction() tax.Jurisdiction {
	code := tax.ParseJurisdiction(p.StateCode)
	name := tax.ParseJurisdiction(p.State)
	switch {
	case code.Code != "":
		if code.Name == "" {
			code.Name = name.Name
		}
		return code
	case !name.IsZero():
		return name
	default:
		return tax.ParseJurisdiction(p.GSTIN)
	}
}

func formatTotals(t tax.Totals, s tax.Settlement) FormattedTotals {
	return FormattedTotals{
		Taxable:     money.FormatINR(t.Taxable),
		CGST:        money.FormatINR(t.CGST),
		SGST:        money.FormatINR(t.SGST),
		IGST:        money.FormatINR(t.IGST),
		TotalTax:    money.FormatINR(t.TotalTax),
		RoundOff:    money.FormatINR(t.RoundOff),
		Discount:    money.FormatINR(t.Discount),
		GrandTotal:  money.FormatINR(t.GrandTotal),
		Outstanding: money.FormatINR(s.Outstanding),
	}
}
