package enum

// ── CHECK constrained in DB ──

const (
	SalesChannelMobile = "mobile"
	SalesChannelWeb    = "web"
)

const (
	ProductTypePhysicalGood = "physical_good"
	ProductTypeService      = "service"
)

// ── Ledger event labels (no DB constraint) ──

const (
	LedgerActionCreated = "created"
	LedgerActionUpdated = "updated"
	LedgerActionDeleted = "deleted"
)

const (
	LedgerEntitySale     = "sale"
	LedgerEntitySaleItem = "sale_item"
)
