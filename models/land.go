package models

// LandRecord holds the structure for the lands collection in mongo, keyed by UPI
type LandRecord struct {
	UPI      string `json:"upi" bson:"upi"`
	District string `json:"district" bson:"district"`
	Sector   string `json:"sector" bson:"sector"`
	Cell     string `json:"cell" bson:"cell"`
	Village  string `json:"village" bson:"village"`
	OwnerID  string `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
}
