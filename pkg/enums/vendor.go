package enums

// PharmacyVendor identifies one of the two catalog/fulfilment sources the
// portal aggregates. The two vendors use disjoint product identifier schemes,
// so an item is only unique as a (vendor, local id) pair.
type PharmacyVendor string

const (
	VendorA PharmacyVendor = "vendora"
	VendorB PharmacyVendor = "vendorb"
)

func (v PharmacyVendor) IsValid() bool {
	switch v {
	case VendorA, VendorB:
		return true
	}
	return false
}
