package domain

var Tables = []interface{}{
	// Accounts
	&User{},
	// Catalog
	&Category{},
	&MenuItem{},
	// Floor
	&DiningTable{},
	&Reservation{},
	// Ordering
	&Cart{},
	&CartItem{},
	&Order{},
	&OrderItem{},
	&OrderSequence{},
}
