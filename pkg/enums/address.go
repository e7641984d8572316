package enums

// AddressType labels a saved address for delivery selection.
type AddressType string

const (
	AddressTypeHome   AddressType = "home"
	AddressTypeOffice AddressType = "office"
	AddressTypeOther  AddressType = "other"
)

func (a AddressType) IsValid() bool {
	switch a {
	case AddressTypeHome, AddressTypeOffice, AddressTypeOther:
		return true
	}
	return false
}
