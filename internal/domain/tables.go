package domain

var Tables = []interface{}{
	// Parties
	&Vendor{},
	&Customer{},
	// Catalog
	&Product{},
	// Ledgers
	&Order{},
	&Payment{},
	// Feedback
	&Review{},
	&VendorReputation{},
	// System
	&AuditLog{},
}
