package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// Catalog
	&Category{},
	&Product{},
	// Cart
	&CartItem{},
	// Bargain
	&BargainOffer{},
}
