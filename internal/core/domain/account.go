package domain

// BankAccount is the protected resource exposed to account holders and auditors.
type BankAccount struct {
	ID       string  `json:"Id" bson:"_id"`
	UserID   string  `json:"UserId" bson:"user_id"`
	UserName string  `json:"UserName" bson:"user_name"`
	SSN      string  `json:"SSN" bson:"ssn"`
	Balance  float64 `json:"Balance" bson:"balance"`
}
